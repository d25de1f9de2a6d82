package graph

import (
	"fmt"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var countryColumns = []string{colCountryID, "name", "name_long", "tag", "note"}

// buildCountries loads the authoritative NOC reference table, writes the
// country node table, and returns the code-keyed registry every later
// stage uses as a membership filter for REPRESENTS edges. A missing or
// unreadable reference table aborts the run.
func (p *Pipeline) buildCountries() (map[string]domain.Country, error) {
	countries := make(map[string]domain.Country)
	var records []tabular.Row

	err := tabular.ForEachRow(p.importPath("nocs.csv"), func(row tabular.Row) error {
		code := row.Get("code")
		countries[code] = domain.Country{
			Code:     code,
			Name:     row.Get("country"),
			NameLong: row.Get("country_long"),
			Tag:      row.Get("tag"),
			Note:     row.Get("note"),
		}
		records = append(records, tabular.Row{
			colCountryID: code,
			"name":       row.Get("country"),
			"name_long":  row.Get("country_long"),
			"tag":        row.Get("tag"),
			"note":       row.Get("note"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load country reference: %w", err)
	}

	sortRows(records, colCountryID)
	if err := p.writeTable("nodes_countries.csv", countryColumns, records); err != nil {
		return nil, err
	}
	return countries, nil
}
