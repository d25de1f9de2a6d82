package graph

import (
	"fmt"
	"strings"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var medalColumns = []string{"medal_type", "medal_date"}

// buildMedalRelationships resolves every medallist row to an event via
// the lowercase (discipline, event) index. On a miss it synthesizes a
// fallback event code from the nationality code (or GEN) plus the
// slugified event name and injects a minimal medal-bearing event entry,
// so every medal row links to some event node. This is a best-effort
// join: a name that differs from the results extract beyond casing lands
// on the fallback node rather than the real one.
//
// Must run before the event accumulator is flattened, since it both sets
// medal flags and injects new entries.
func (p *Pipeline) buildMedalRelationships(events map[string]*domain.Event, lookup map[domain.EventKey]string) error {
	var athleteMedals []tabular.Row
	var teamMedals []tabular.Row

	err := tabular.ForEachRow(p.importPath("medallists.csv"), func(row tabular.Row) error {
		key := domain.EventKey{
			Discipline: strings.ToLower(row.Get("discipline")),
			Event:      strings.ToLower(row.Get("event")),
		}
		eventCode, ok := lookup[key]
		if !ok {
			fallback := row.Get("nationality_code")
			if fallback == "" {
				fallback = "GEN"
			}
			eventCode = strings.ToUpper(fallback + "_" + Slugify(row.Get("event")))
			if _, exists := events[eventCode]; !exists {
				event := domain.NewEvent(eventCode)
				event.Name = row.Get("event")
				event.SportName = row.Get("discipline")
				event.Gender = row.Get("gender")
				event.HasMedal = true
				events[eventCode] = event
			}
		}
		events[eventCode].HasMedal = true

		medal := tabular.Row{
			"medal_type": row.Get("medal_type"),
			"medal_date": row.Get("medal_date"),
			colType:      relWonMedal,
		}
		if athleteCode := row.Get("code_athlete"); athleteCode != "" {
			medal[startID("Athlete")] = athleteCode
			medal[endID("Event")] = eventCode
			athleteMedals = append(athleteMedals, medal)
		} else if teamCode := row.Get("code_team"); teamCode != "" {
			medal[startID("Team")] = teamCode
			medal[endID("Event")] = eventCode
			teamMedals = append(teamMedals, medal)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load medallists extract: %w", err)
	}

	sortRows(athleteMedals, startID("Athlete"), endID("Event"))
	athleteCols := append([]string{startID("Athlete"), endID("Event")}, append(medalColumns, colType)...)
	if err := p.writeTable("rels_athlete_medals.csv", athleteCols, athleteMedals); err != nil {
		return err
	}

	sortRows(teamMedals, startID("Team"), endID("Event"))
	teamCols := append([]string{startID("Team"), endID("Event")}, append(medalColumns, colType)...)
	return p.writeTable("rels_team_medals.csv", teamCols, teamMedals)
}
