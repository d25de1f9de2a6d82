package graph

import (
	"fmt"
	"strings"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var (
	athleteColumns = []string{
		colAthleteID,
		"name",
		"name_short",
		"gender",
		"function",
		"country_code",
		"nationality_code",
		"height",
		"weight",
		"disciplines",
		"events",
		"birth_date",
		"birth_place",
	}

	coachColumns = []string{colCoachID, "name", "gender", "function", "category", "country_code", "country"}

	officialColumns = []string{
		colOfficialID,
		"name",
		"gender",
		"function",
		"category",
		"organisation_code",
		"organisation",
		"disciplines",
	}
)

// joinList re-serializes a multi-valued source cell as a semicolon-joined
// sequence, preserving source order. Duplicates pass through as-is.
func joinList(raw string) string {
	return strings.Join(tabular.ParseList(raw), ";")
}

// buildPeople projects the athlete, coach and technical-official extracts
// into node tables, each with a REPRESENTS edge to its country. Edges are
// filtered through the country registry so placeholder organisation codes
// never produce dangling references.
func (p *Pipeline) buildPeople(countries map[string]domain.Country) error {
	if err := p.buildAthletes(countries); err != nil {
		return err
	}
	if err := p.buildCoaches(countries); err != nil {
		return err
	}
	return p.buildOfficials(countries)
}

// representsEdge returns a REPRESENTS edge row, or nil when the country
// code is empty or not in the registry.
func representsEdge(countries map[string]domain.Country, startCol, code, country string) tabular.Row {
	if country == "" {
		return nil
	}
	if _, ok := countries[country]; !ok {
		return nil
	}
	return edgeRow(startCol, code, endID("Country"), country, relRepresents)
}

func (p *Pipeline) buildAthletes(countries map[string]domain.Country) error {
	var records []tabular.Row
	var edges []tabular.Row

	err := tabular.ForEachRow(p.importPath("athletes.csv"), func(row tabular.Row) error {
		code := row.Get("code")
		records = append(records, tabular.Row{
			colAthleteID:       code,
			"name":             row.Get("name"),
			"name_short":       row.Get("name_short"),
			"gender":           row.Get("gender"),
			"function":         row.Get("function"),
			"country_code":     row.Get("country_code"),
			"nationality_code": row.Get("nationality_code"),
			"height":           row.Get("height"),
			"weight":           row.Get("weight"),
			"disciplines":      joinList(row.Raw("disciplines")),
			"events":           joinList(row.Raw("events")),
			"birth_date":       row.Get("birth_date"),
			"birth_place":      row.Get("birth_place"),
		})
		if edge := representsEdge(countries, startID("Athlete"), code, row.Get("country_code")); edge != nil {
			edges = append(edges, edge)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load athletes extract: %w", err)
	}

	sortRows(records, colAthleteID)
	if err := p.writeTable("nodes_athletes.csv", athleteColumns, records); err != nil {
		return err
	}
	sortRows(edges, startID("Athlete"), endID("Country"))
	return p.writeTable("rels_athlete_country.csv", []string{startID("Athlete"), endID("Country"), colType}, edges)
}

func (p *Pipeline) buildCoaches(countries map[string]domain.Country) error {
	var records []tabular.Row
	var edges []tabular.Row

	err := tabular.ForEachRow(p.importPath("coaches.csv"), func(row tabular.Row) error {
		code := row.Get("code")
		records = append(records, tabular.Row{
			colCoachID:     code,
			"name":         row.Get("name"),
			"gender":       row.Get("gender"),
			"function":     row.Get("function"),
			"category":     row.Get("category"),
			"country_code": row.Get("country_code"),
			"country":      row.Get("country"),
		})
		if edge := representsEdge(countries, startID("Coach"), code, row.Get("country_code")); edge != nil {
			edges = append(edges, edge)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load coaches extract: %w", err)
	}

	sortRows(records, colCoachID)
	if err := p.writeTable("nodes_coaches.csv", coachColumns, records); err != nil {
		return err
	}
	sortRows(edges, startID("Coach"), endID("Country"))
	return p.writeTable("rels_coach_country.csv", []string{startID("Coach"), endID("Country"), colType}, edges)
}

func (p *Pipeline) buildOfficials(countries map[string]domain.Country) error {
	var records []tabular.Row
	var edges []tabular.Row

	err := tabular.ForEachRow(p.importPath("technical_officials.csv"), func(row tabular.Row) error {
		code := row.Get("code")
		records = append(records, tabular.Row{
			colOfficialID:       code,
			"name":              row.Get("name"),
			"gender":            row.Get("gender"),
			"function":          row.Get("function"),
			"category":          row.Get("category"),
			"organisation_code": row.Get("organisation_code"),
			"organisation":      row.Get("organisation"),
			"disciplines":       joinList(row.Raw("disciplines")),
		})
		if edge := representsEdge(countries, startID("Official"), code, row.Get("organisation_code")); edge != nil {
			edges = append(edges, edge)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load technical officials extract: %w", err)
	}

	sortRows(records, colOfficialID)
	if err := p.writeTable("nodes_officials.csv", officialColumns, records); err != nil {
		return err
	}
	sortRows(edges, startID("Official"), endID("Country"))
	return p.writeTable("rels_official_country.csv", []string{startID("Official"), endID("Country"), colType}, edges)
}
