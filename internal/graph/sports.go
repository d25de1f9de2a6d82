package graph

import (
	"fmt"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var sportColumns = []string{colSportID, "name", "tag", "url"}

// buildSports merges sport identity from the events and schedules
// extracts. Either file may carry only a subset of {name, tag, url} for
// a code; the first non-empty value wins per field. A code seen only in
// the schedules still yields a node with empty optional fields.
func (p *Pipeline) buildSports() error {
	sports := make(map[string]*domain.Sport)

	ensure := func(code, name, tag, url string) {
		if code == "" {
			return
		}
		sport, ok := sports[code]
		if !ok {
			sport = &domain.Sport{Code: code}
			sports[code] = sport
		}
		sport.FillName(name)
		sport.FillTag(tag)
		sport.FillURL(url)
	}

	err := tabular.ForEachRow(p.importPath("events.csv"), func(row tabular.Row) error {
		ensure(row.Get("sport_code"), row.Get("sport"), row.Get("tag"), row.Get("sport_url"))
		return nil
	})
	if err != nil {
		return fmt.Errorf("load events extract: %w", err)
	}

	err = tabular.ForEachRow(p.importPath("schedules.csv"), func(row tabular.Row) error {
		ensure(row.Get("discipline_code"), row.Get("discipline"), "", "")
		return nil
	})
	if err != nil {
		return fmt.Errorf("load schedules extract: %w", err)
	}

	records := make([]tabular.Row, 0, len(sports))
	for _, sport := range sports {
		records = append(records, tabular.Row{
			colSportID: sport.Code,
			"name":     sport.Name,
			"tag":      sport.Tag,
			"url":      sport.URL,
		})
	}
	sortRows(records, colSportID)
	return p.writeTable("nodes_sports.csv", sportColumns, records)
}
