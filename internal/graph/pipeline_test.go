package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matijakljajic/nosqluns/internal/config"
	"github.com/matijakljajic/nosqluns/internal/logger"
)

func writeFullFixtures(t *testing.T, p *Pipeline) {
	t.Helper()
	writeFixture(t, p.importDir, "nocs.csv",
		"code,country,country_long,tag,note\n"+
			"FRA,France,French Republic,fr,\n"+
			"GER,Germany,Federal Republic of Germany,de,\n")
	writeFixture(t, p.importDir, "events.csv",
		"sport_code,sport,tag,sport_url\nJUD,Judo,judo,https://example.org/judo\n")
	writeFixture(t, p.importDir, "venues.csv",
		"venue,tag,url\nArena Champ-de-Mars,acm,https://example.org/acm\n")
	writeFixture(t, p.importDir, "schedules.csv", scheduleHeader+
		"Arena Champ-de-Mars,ACM,,,Judo,JUD,,Heavyweight,2024-08-01,2024-08-01,1,Finished,Final,M,Individual,True\n"+
		"Arena Champ-de-Mars,ACM,,,Wrestling,WRE,,Freestyle,2024-08-02,2024-08-02,2,Scheduled,Qualification,M,Individual,False\n")
	writeFixture(t, p.importDir, "athletes.csv",
		"code,name,name_short,gender,function,country_code,nationality_code,height,weight,disciplines,events,birth_date,birth_place\n"+
			`ATH123,Teddy R,TEDDY R,Male,Athlete,FRA,FRA,203,140,"['Judo']","['Heavyweight']",1989-12-15,Paris`+"\n"+
			"ATH999,No Land,NO L,Male,Athlete,XYZ,XYZ,,,[],[],1990-01-01,\n")
	writeFixture(t, p.importDir, "coaches.csv",
		"code,name,gender,function,category,country_code,country\nC1,Coach One,Male,Coach,Judo,GER,Germany\n")
	writeFixture(t, p.importDir, "technical_officials.csv",
		"code,name,gender,function,category,organisation_code,organisation,disciplines\n"+
			"O1,Ref One,Female,Referee,International,FRA,France,\"['Judo']\"\n")
	writeFixture(t, p.importDir, "teams.csv",
		"code,team,team_gender,country_code,country,discipline,disciplines_code,events,num_athletes,num_coaches,athletes_codes,coaches_codes\n"+
			`TEAM42,France Judo,X,FRA,France,Judo,JUD,Mixed Team,6,1,"['ATH123']","['C1']"`+"\n")
	writeFixture(t, p.resultsDir, "judo.csv", resultHeader+
		"JUD001,Heavyweight,Final,M,Judo,JUD,Arena Champ-de-Mars,ATH123,Person,FRA,FNL,Gold Medal Contest,2024-08-01,10,points,,W,,7,,1\n"+
			"JUD002,Mixed Team,Final,X,Judo,JUD,Arena Champ-de-Mars,TEAM42,Team,FRA,FNL,Gold Medal Contest,2024-08-03,4,points,,W,,,,1\n")
	writeFixture(t, p.importDir, "medallists.csv", medallistHeader+
		"Judo,Heavyweight,M,FRA,Gold Medal,2024-08-01,ATH123,\n"+
			"Fencing,Men's Foil,M,GER,Gold Medal,2024-08-04,,TEAM42\n")
}

func TestPipelineRunProducesConsistentDataset(t *testing.T) {
	p := newTestPipeline(t)
	writeFullFixtures(t, p)

	manifest, err := p.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if manifest.RunID == "" {
		t.Fatalf("manifest missing run id")
	}
	if manifest.Tables["nodes_countries.csv"] != 2 {
		t.Fatalf("manifest counts wrong: %v", manifest.Tables)
	}

	// Referential integrity: every edge endpoint exists in its node table.
	countrySet := keySet(t, p, "nodes_countries.csv", colCountryID)
	venueSet := keySet(t, p, "nodes_venues.csv", colVenueID)
	eventSet := keySet(t, p, "nodes_events.csv", colEventID)

	for _, row := range readOutput(t, p, "rels_athlete_country.csv") {
		if _, ok := countrySet[row.Get(endID("Country"))]; !ok {
			t.Fatalf("REPRESENTS edge to unknown country: %v", row)
		}
	}
	for _, row := range readOutput(t, p, "rels_event_venue.csv") {
		if _, ok := venueSet[row.Get(endID("Venue"))]; !ok {
			t.Fatalf("HOSTED_AT edge to unknown venue: %v", row)
		}
	}
	for _, row := range readOutput(t, p, "rels_athlete_medals.csv") {
		if _, ok := eventSet[row.Get(endID("Event"))]; !ok {
			t.Fatalf("WON_MEDAL edge to unknown event: %v", row)
		}
	}

	// The unmatched medallist row injected a fallback event.
	if _, ok := eventSet["GER_MEN-S-FOIL"]; !ok {
		t.Fatalf("fallback event missing from node table: %v", eventSet)
	}

	// The athlete with an unregistered country keeps its node but no edge.
	athleteSet := keySet(t, p, "nodes_athletes.csv", colAthleteID)
	if _, ok := athleteSet["ATH999"]; !ok {
		t.Fatalf("nodes must not be dropped for unknown countries")
	}
	if got := len(readOutput(t, p, "rels_athlete_country.csv")); got != 1 {
		t.Fatalf("expected 1 athlete REPRESENTS edge, got %d", got)
	}

	// Event aggregation picked up the medal flag on the resolved event.
	for _, row := range readOutput(t, p, "nodes_events.csv") {
		if row.Get(colEventID) == "JUD001" && row.Get("has_medalists") != "True" {
			t.Fatalf("JUD001 should be medal-bearing: %v", row)
		}
	}

	var manifestOnDisk Manifest
	raw, err := os.ReadFile(filepath.Join(p.outDir, "manifest.json"))
	if err != nil {
		t.Fatalf("manifest.json not written: %v", err)
	}
	if err := json.Unmarshal(raw, &manifestOnDisk); err != nil {
		t.Fatalf("manifest.json not valid json: %v", err)
	}
	if manifestOnDisk.RunID != manifest.RunID {
		t.Fatalf("manifest on disk diverges from returned manifest")
	}
}

func TestPipelineRunIsDeterministic(t *testing.T) {
	first := newTestPipeline(t)
	writeFullFixtures(t, first)
	if _, err := first.Run(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	second := NewPipeline(config.Config{
		ImportDir:  first.importDir,
		ResultsDir: first.resultsDir,
		OutputDir:  filepath.Join(t.TempDir(), "normalized"),
	}, logger.Nop())
	if _, err := second.Run(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	entries, err := os.ReadDir(first.outDir)
	if err != nil {
		t.Fatalf("list first output: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == "manifest.json" {
			continue // carries the per-run id and timing
		}
		a, err := os.ReadFile(filepath.Join(first.outDir, entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		b, err := os.ReadFile(filepath.Join(second.outDir, entry.Name()))
		if err != nil {
			t.Fatalf("read second %s: %v", entry.Name(), err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("table %s differs between identical runs", entry.Name())
		}
	}
}

func TestPipelineRunFailsWithoutCountryReference(t *testing.T) {
	p := newTestPipeline(t)
	// everything except nocs.csv
	writeFullFixtures(t, p)
	if err := os.Remove(filepath.Join(p.importDir, "nocs.csv")); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}

	if _, err := p.Run(); err == nil {
		t.Fatalf("missing country reference must abort the run")
	}
}

func keySet(t *testing.T, p *Pipeline, table, column string) map[string]struct{} {
	t.Helper()
	set := make(map[string]struct{})
	for _, row := range readOutput(t, p, table) {
		set[row.Get(column)] = struct{}{}
	}
	return set
}
