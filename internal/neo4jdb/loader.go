package neo4jdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matijakljajic/nosqluns/internal/tabular"
)

// nodeTable maps one normalized node file onto a label and key property.
type nodeTable struct {
	file  string
	label string
	key   string
}

// relTable maps one normalized relationship file onto its endpoints.
// mergeKeys name properties that identify a relationship between the
// same two nodes, so re-loading never duplicates multi-stage edges.
type relTable struct {
	file       string
	relType    string
	startLabel string
	startKey   string
	endLabel   string
	endKey     string
	mergeKeys  []string
}

var nodeTables = []nodeTable{
	{"nodes_countries.csv", "Country", "country_code"},
	{"nodes_sports.csv", "Sport", "sport_code"},
	{"nodes_venues.csv", "Venue", "venue_code"},
	{"nodes_sessions.csv", "Session", "session_id"},
	{"nodes_athletes.csv", "Athlete", "athlete_code"},
	{"nodes_coaches.csv", "Coach", "coach_code"},
	{"nodes_officials.csv", "Official", "official_code"},
	{"nodes_teams.csv", "Team", "team_code"},
	{"nodes_events.csv", "Event", "event_code"},
}

var relTables = []relTable{
	{"rels_session_sport.csv", "SESSION_FOR", "Session", "session_id", "Sport", "sport_code", nil},
	{"rels_session_venue.csv", "HELD_AT", "Session", "session_id", "Venue", "venue_code", nil},
	{"rels_sport_venue.csv", "USE_VENUE", "Sport", "sport_code", "Venue", "venue_code", nil},
	{"rels_athlete_country.csv", "REPRESENTS", "Athlete", "athlete_code", "Country", "country_code", nil},
	{"rels_coach_country.csv", "REPRESENTS", "Coach", "coach_code", "Country", "country_code", nil},
	{"rels_official_country.csv", "REPRESENTS", "Official", "official_code", "Country", "country_code", nil},
	{"rels_team_country.csv", "REPRESENTS", "Team", "team_code", "Country", "country_code", nil},
	{"rels_athlete_team.csv", "MEMBER_OF", "Athlete", "athlete_code", "Team", "team_code", nil},
	{"rels_coach_team.csv", "COACHES", "Coach", "coach_code", "Team", "team_code", nil},
	{"rels_event_sport.csv", "PART_OF", "Event", "event_code", "Sport", "sport_code", nil},
	{"rels_event_venue.csv", "HOSTED_AT", "Event", "event_code", "Venue", "venue_code", nil},
	{"rels_athlete_event_results.csv", "COMPETED_IN", "Athlete", "athlete_code", "Event", "event_code", []string{"stage_code"}},
	{"rels_team_event_results.csv", "COMPETED_IN", "Team", "team_code", "Event", "event_code", []string{"stage_code"}},
	{"rels_athlete_medals.csv", "WON_MEDAL", "Athlete", "athlete_code", "Event", "event_code", nil},
	{"rels_team_medals.csv", "WON_MEDAL", "Team", "team_code", "Event", "event_code", nil},
}

// Load bulk-loads the normalized dataset into Neo4j: every node table
// first, then every relationship table, in UNWIND batches of batchSize.
// Referential integrity of the dataset guarantees each relationship
// matches two already-loaded nodes. Missing tables are an error; the
// loader expects a complete run's output.
func Load(ctx context.Context, client *Client, dir string, batchSize int) error {
	if client == nil || client.Driver == nil {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 1000
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer func() { _ = session.Close(ctx) }()

	for _, table := range nodeTables {
		rows, err := nodeRows(filepath.Join(dir, table.file), table)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(
			"UNWIND $rows AS row MERGE (n:%s {%s: row.key}) SET n += row.props",
			table.label, table.key,
		)
		if err := runBatches(ctx, session, query, rows, batchSize); err != nil {
			return fmt.Errorf("load %s: %w", table.file, err)
		}
		client.log.Info("nodes loaded", "label", table.label, "rows", len(rows))
	}

	for _, table := range relTables {
		rows, err := relRows(filepath.Join(dir, table.file), table)
		if err != nil {
			return err
		}
		query := relQuery(table)
		if err := runBatches(ctx, session, query, rows, batchSize); err != nil {
			return fmt.Errorf("load %s: %w", table.file, err)
		}
		client.log.Info("relationships loaded", "type", table.relType, "file", table.file, "rows", len(rows))
	}
	return nil
}

func relQuery(table relTable) string {
	pattern := ""
	for i, key := range table.mergeKeys {
		if i > 0 {
			pattern += ", "
		}
		pattern += fmt.Sprintf("%s: row.props.%s", key, key)
	}
	if pattern != "" {
		pattern = " {" + pattern + "}"
	}
	return fmt.Sprintf(
		"UNWIND $rows AS row MATCH (a:%s {%s: row.start}) MATCH (b:%s {%s: row.end}) MERGE (a)-[r:%s%s]->(b) SET r += row.props",
		table.startLabel, table.startKey, table.endLabel, table.endKey, table.relType, pattern,
	)
}

func nodeRows(path string, table nodeTable) ([]map[string]any, error) {
	keyColumn := fmt.Sprintf("%s:ID(%s-ID)", table.key, table.label)
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props := make(map[string]any, len(record))
		for column, value := range record {
			if column == keyColumn {
				continue
			}
			props[column] = value
		}
		rows = append(rows, map[string]any{
			"key":   record[keyColumn],
			"props": props,
		})
	}
	return rows, nil
}

func relRows(path string, table relTable) ([]map[string]any, error) {
	startColumn := fmt.Sprintf(":START_ID(%s-ID)", table.startLabel)
	endColumn := fmt.Sprintf(":END_ID(%s-ID)", table.endLabel)
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props := make(map[string]any, len(record))
		for column, value := range record {
			if column == startColumn || column == endColumn || strings.HasPrefix(column, ":") {
				continue
			}
			props[column] = value
		}
		rows = append(rows, map[string]any{
			"start": record[startColumn],
			"end":   record[endColumn],
			"props": props,
		})
	}
	return rows, nil
}

func readTable(path string) ([]tabular.Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("normalized table missing: %w", err)
	}
	rows, err := tabular.ReadRows(path)
	if err != nil {
		return nil, fmt.Errorf("read normalized table: %w", err)
	}
	return rows, nil
}

func runBatches(ctx context.Context, session neo4j.SessionWithContext, query string, rows []map[string]any, batchSize int) error {
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			result, err := tx.Run(ctx, query, map[string]any{"rows": batch})
			if err != nil {
				return nil, err
			}
			return nil, result.Err()
		})
		if err != nil {
			return err
		}
	}
	return nil
}
