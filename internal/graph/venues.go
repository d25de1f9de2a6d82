package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var (
	venueColumns = []string{colVenueID, "name", "location", "tag", "url", "sport_codes"}

	sessionColumns = []string{
		colSessionID,
		"start_datetime",
		"end_datetime",
		"day",
		"status",
		"sport",
		"sport_code",
		"event_phase",
		"event_name",
		"gender",
		"event_type",
		"medal_session",
		"venue_code",
	}
)

// buildVenuesAndSessions walks the schedules extract once, deriving a
// stable venue code per row, accumulating each venue's hosted-sport set,
// and emitting one session node per row. It returns the venue-name to
// venue-code lookup the results stage needs, because the result extracts
// reference venues by free-text name only.
//
// Venue code preference per row: explicit code column, slug of the venue
// or location text, then a synthetic anon-N counter for rows where both
// are empty. Rows whose session identifier stays empty after the
// discipline+event+date fallback are dropped.
func (p *Pipeline) buildVenuesAndSessions() (map[string]string, error) {
	venueDetails := make(map[string]tabular.Row)
	err := tabular.ForEachRow(p.importPath("venues.csv"), func(row tabular.Row) error {
		venueDetails[row.Get("venue")] = row
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load venue details: %w", err)
	}

	venues := make(map[string]*domain.Venue)
	var venueOrder []string
	var sessions []tabular.Row
	sportVenuePairs := make(map[[2]string]struct{})
	var sessionSport []tabular.Row
	var sessionVenue []tabular.Row

	anonCounter := 0
	err = tabular.ForEachRow(p.importPath("schedules.csv"), func(row tabular.Row) error {
		venueName := row.Get("venue")
		venueCode := row.Get("venue_code")
		if venueCode == "" {
			venueCode = row.Get("location_code")
		}
		if venueCode == "" {
			text := venueName
			if text == "" {
				text = row.Get("location_description")
			}
			venueCode = Slugify(text)
		}
		if venueCode == "" {
			venueCode = fmt.Sprintf("anon-%d", anonCounter)
			anonCounter++
		}

		disciplineCode := row.Get("discipline_code")
		sportVenuePairs[[2]string{disciplineCode, venueCode}] = struct{}{}

		venue, ok := venues[venueCode]
		if !ok {
			venue = domain.NewVenue(venueCode, venueName, row.Get("location_description"))
			venues[venueCode] = venue
			venueOrder = append(venueOrder, venueCode)
		}
		venue.AddSport(disciplineCode)
		if details, ok := venueDetails[venueName]; ok {
			if venue.Tag == "" {
				venue.Tag = details.Get("tag")
			}
			if venue.URL == "" {
				venue.URL = details.Get("url")
			}
		}

		sessionID := row.Get("url")
		if sessionID == "" {
			sessionID = disciplineCode + "_" + Slugify(row.Get("event")) + "_" + row.Get("start_date")
		}
		sessionID = Slugify(sessionID)
		if sessionID == "" {
			return nil
		}

		sessions = append(sessions, tabular.Row{
			colSessionID:     sessionID,
			"start_datetime": row.Get("start_date"),
			"end_datetime":   row.Get("end_date"),
			"day":            row.Get("day"),
			"status":         row.Get("status"),
			"sport":          row.Get("discipline"),
			"sport_code":     disciplineCode,
			"event_phase":    row.Get("phase"),
			"event_name":     row.Get("event"),
			"gender":         row.Get("gender"),
			"event_type":     row.Get("event_type"),
			"medal_session":  row.Get("event_medal"),
			"venue_code":     venueCode,
		})
		if disciplineCode != "" {
			sessionSport = append(sessionSport, edgeRow(startID("Session"), sessionID, endID("Sport"), disciplineCode, relSessionFor))
		}
		sessionVenue = append(sessionVenue, edgeRow(startID("Session"), sessionID, endID("Venue"), venueCode, relHeldAt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load schedules extract: %w", err)
	}

	venueRecords := make([]tabular.Row, 0, len(venues))
	for _, venue := range venues {
		venueRecords = append(venueRecords, tabular.Row{
			colVenueID:    venue.Code,
			"name":        venue.Name,
			"location":    venue.Location,
			"tag":         venue.Tag,
			"url":         venue.URL,
			"sport_codes": strings.Join(sortedKeys(venue.Sports), ";"),
		})
	}
	sortRows(venueRecords, colVenueID)
	if err := p.writeTable("nodes_venues.csv", venueColumns, venueRecords); err != nil {
		return nil, err
	}

	sortRows(sessions, colSessionID)
	if err := p.writeTable("nodes_sessions.csv", sessionColumns, sessions); err != nil {
		return nil, err
	}

	sortRows(sessionSport, startID("Session"), endID("Sport"))
	if err := p.writeTable("rels_session_sport.csv", []string{startID("Session"), endID("Sport"), colType}, sessionSport); err != nil {
		return nil, err
	}
	sortRows(sessionVenue, startID("Session"), endID("Venue"))
	if err := p.writeTable("rels_session_venue.csv", []string{startID("Session"), endID("Venue"), colType}, sessionVenue); err != nil {
		return nil, err
	}

	// USE_VENUE is derived from the deduplicated (sport, venue) pairs;
	// pairs missing either side are dropped.
	pairs := make([][2]string, 0, len(sportVenuePairs))
	for pair := range sportVenuePairs {
		if pair[0] != "" && pair[1] != "" {
			pairs = append(pairs, pair)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	sportVenue := make([]tabular.Row, 0, len(pairs))
	for _, pair := range pairs {
		sportVenue = append(sportVenue, edgeRow(startID("Sport"), pair[0], endID("Venue"), pair[1], relUseVenue))
	}
	if err := p.writeTable("rels_sport_venue.csv", []string{startID("Sport"), endID("Venue"), colType}, sportVenue); err != nil {
		return nil, err
	}

	// Free-text name lookup for the results extracts. Venue insertion
	// order decides collisions: a later venue with the same name wins,
	// matching the fixed scan order of the schedules file.
	lookup := make(map[string]string)
	for _, code := range venueOrder {
		if name := venues[code].Name; name != "" {
			lookup[name] = code
		}
	}
	return lookup, nil
}
