package graph

import (
	"fmt"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var teamColumns = []string{
	colTeamID,
	"name",
	"gender",
	"country_code",
	"country",
	"discipline",
	"discipline_code",
	"events",
	"num_athletes",
	"num_coaches",
}

// buildTeams projects the teams extract into team nodes with a filtered
// REPRESENTS edge, and expands the multi-valued member-code columns into
// one MEMBER_OF edge per athlete and one COACHES edge per coach.
func (p *Pipeline) buildTeams(countries map[string]domain.Country) error {
	var records []tabular.Row
	var teamCountry []tabular.Row
	var athleteTeam []tabular.Row
	var coachTeam []tabular.Row

	err := tabular.ForEachRow(p.importPath("teams.csv"), func(row tabular.Row) error {
		code := row.Get("code")
		records = append(records, tabular.Row{
			colTeamID:         code,
			"name":            row.Get("team"),
			"gender":          row.Get("team_gender"),
			"country_code":    row.Get("country_code"),
			"country":         row.Get("country"),
			"discipline":      row.Get("discipline"),
			"discipline_code": row.Get("disciplines_code"),
			"events":          row.Get("events"),
			"num_athletes":    row.Get("num_athletes"),
			"num_coaches":     row.Get("num_coaches"),
		})
		if edge := representsEdge(countries, startID("Team"), code, row.Get("country_code")); edge != nil {
			teamCountry = append(teamCountry, edge)
		}
		for _, athleteCode := range tabular.ParseList(row.Raw("athletes_codes")) {
			athleteTeam = append(athleteTeam, edgeRow(startID("Athlete"), athleteCode, endID("Team"), code, relMemberOf))
		}
		for _, coachCode := range tabular.ParseList(row.Raw("coaches_codes")) {
			coachTeam = append(coachTeam, edgeRow(startID("Coach"), coachCode, endID("Team"), code, relCoaches))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load teams extract: %w", err)
	}

	sortRows(records, colTeamID)
	if err := p.writeTable("nodes_teams.csv", teamColumns, records); err != nil {
		return err
	}
	sortRows(teamCountry, startID("Team"), endID("Country"))
	if err := p.writeTable("rels_team_country.csv", []string{startID("Team"), endID("Country"), colType}, teamCountry); err != nil {
		return err
	}
	sortRows(athleteTeam, startID("Athlete"), endID("Team"))
	if err := p.writeTable("rels_athlete_team.csv", []string{startID("Athlete"), endID("Team"), colType}, athleteTeam); err != nil {
		return err
	}
	sortRows(coachTeam, startID("Coach"), endID("Team"))
	return p.writeTable("rels_coach_team.csv", []string{startID("Coach"), endID("Team"), colType}, coachTeam)
}
