package graph

import (
	"sort"
	"strings"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var eventColumns = []string{
	colEventID,
	"name",
	"gender",
	"sport_name",
	"sport_code",
	"stages",
	"has_medalists",
}

// buildEventNodes flattens the finalized event accumulator into sorted
// node rows plus PART_OF and HOSTED_AT edges. Events with no known sport
// code get no PART_OF edge; each accumulated venue yields one HOSTED_AT
// edge.
func (p *Pipeline) buildEventNodes(events map[string]*domain.Event) error {
	codes := make([]string, 0, len(events))
	for code := range events {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	records := make([]tabular.Row, 0, len(events))
	var eventSport []tabular.Row
	var eventVenue []tabular.Row
	for _, code := range codes {
		event := events[code]
		hasMedalists := "False"
		if event.HasMedal {
			hasMedalists = "True"
		}
		records = append(records, tabular.Row{
			colEventID:      code,
			"name":          event.Name,
			"gender":        event.Gender,
			"sport_name":    event.SportName,
			"sport_code":    event.SportCode,
			"stages":        strings.Join(sortedKeys(event.Stages), ";"),
			"has_medalists": hasMedalists,
		})
		if event.SportCode != "" {
			eventSport = append(eventSport, edgeRow(startID("Event"), code, endID("Sport"), event.SportCode, relPartOf))
		}
		for _, venueCode := range sortedKeys(event.Venues) {
			eventVenue = append(eventVenue, edgeRow(startID("Event"), code, endID("Venue"), venueCode, relHostedAt))
		}
	}

	if err := p.writeTable("nodes_events.csv", eventColumns, records); err != nil {
		return err
	}
	sortRows(eventSport, startID("Event"), endID("Sport"))
	if err := p.writeTable("rels_event_sport.csv", []string{startID("Event"), endID("Sport"), colType}, eventSport); err != nil {
		return err
	}
	sortRows(eventVenue, startID("Event"), endID("Venue"))
	return p.writeTable("rels_event_venue.csv", []string{startID("Event"), endID("Venue"), colType}, eventVenue)
}
