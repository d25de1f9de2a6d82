package neo4jdb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelQueryShapes(t *testing.T) {
	plain := relQuery(relTable{
		relType:    "REPRESENTS",
		startLabel: "Athlete", startKey: "athlete_code",
		endLabel: "Country", endKey: "country_code",
	})
	want := "UNWIND $rows AS row MATCH (a:Athlete {athlete_code: row.start}) MATCH (b:Country {country_code: row.end}) MERGE (a)-[r:REPRESENTS]->(b) SET r += row.props"
	if plain != want {
		t.Fatalf("query = %q, want %q", plain, want)
	}

	keyed := relQuery(relTable{
		relType:    "COMPETED_IN",
		startLabel: "Athlete", startKey: "athlete_code",
		endLabel: "Event", endKey: "event_code",
		mergeKeys: []string{"stage_code"},
	})
	if keyed != "UNWIND $rows AS row MATCH (a:Athlete {athlete_code: row.start}) MATCH (b:Event {event_code: row.end}) MERGE (a)-[r:COMPETED_IN {stage_code: row.props.stage_code}]->(b) SET r += row.props" {
		t.Fatalf("unexpected keyed query: %q", keyed)
	}
}

func TestNodeRowsSplitKeyFromProps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nodes_countries.csv")
	content := "country_code:ID(Country-ID),name,tag\nFRA,France,fr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rows, err := nodeRows(path, nodeTable{file: "nodes_countries.csv", label: "Country", key: "country_code"})
	if err != nil {
		t.Fatalf("nodeRows returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["key"] != "FRA" {
		t.Fatalf("key = %v, want FRA", rows[0]["key"])
	}
	props := rows[0]["props"].(map[string]any)
	if props["name"] != "France" || props["tag"] != "fr" {
		t.Fatalf("props = %v", props)
	}
	if _, ok := props["country_code:ID(Country-ID)"]; ok {
		t.Fatalf("key column must not leak into props")
	}
}

func TestRelRowsStripDirectives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rels_athlete_medals.csv")
	content := ":START_ID(Athlete-ID),:END_ID(Event-ID),medal_type,medal_date,:TYPE\nATH123,JUD001,Gold Medal,2024-08-01,WON_MEDAL\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rows, err := relRows(path, relTable{
		relType:    "WON_MEDAL",
		startLabel: "Athlete", startKey: "athlete_code",
		endLabel: "Event", endKey: "event_code",
	})
	if err != nil {
		t.Fatalf("relRows returned error: %v", err)
	}
	row := rows[0]
	if row["start"] != "ATH123" || row["end"] != "JUD001" {
		t.Fatalf("endpoints = %v / %v", row["start"], row["end"])
	}
	props := row["props"].(map[string]any)
	if props["medal_type"] != "Gold Medal" {
		t.Fatalf("props = %v", props)
	}
	if _, ok := props[":TYPE"]; ok {
		t.Fatalf("directive columns must not leak into props")
	}
}

func TestLoadSkipsNilClient(t *testing.T) {
	if err := Load(nil, nil, "", 0); err != nil {
		t.Fatalf("nil client must be a no-op, got %v", err)
	}
}
