package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

// resultSet carries everything the results pass produced: the per-event
// accumulator, the (discipline, event) name index used for medal
// resolution, and the raw per-participant result payloads.
type resultSet struct {
	events         map[string]*domain.Event
	lookup         map[domain.EventKey]string
	athleteResults []domain.Result
	teamResults    []domain.Result
}

// parseResults streams every per-discipline result extract in lexical
// file order and aggregates event identity incrementally: name-like
// fields first-non-empty-wins, stage and venue sets unioned across all
// rows sharing an event code. Venues are resolved from the row's
// free-text venue name; unresolvable names contribute no venue.
//
// Rows without an event code are skipped entirely. Rows with an event
// code but no participant code still feed the event accumulator.
func (p *Pipeline) parseResults(venueLookup map[string]string) (*resultSet, error) {
	res := &resultSet{
		events: make(map[string]*domain.Event),
		lookup: make(map[domain.EventKey]string),
	}

	files, err := p.resultFiles()
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		err := tabular.ForEachRow(file, func(row tabular.Row) error {
			res.absorb(row, venueLookup)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load result extract %s: %w", filepath.Base(file), err)
		}
	}
	p.log.Info("results parsed",
		"files", len(files),
		"events", len(res.events),
		"athlete_results", len(res.athleteResults),
		"team_results", len(res.teamResults),
	)
	return res, nil
}

// resultFiles discovers the result extracts in fixed lexical order so
// repeated runs scan files identically. A missing results directory is
// treated as an empty set, not an error.
func (p *Pipeline) resultFiles() ([]string, error) {
	entries, err := os.ReadDir(p.resultsDir)
	if os.IsNotExist(err) {
		p.log.Warn("results directory missing", "dir", p.resultsDir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list results directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(p.resultsDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *resultSet) absorb(row tabular.Row, venueLookup map[string]string) {
	eventCode := row.Get("event_code")
	if eventCode == "" {
		return
	}

	disciplineName := row.Get("discipline_name")
	eventName := row.Get("event_name")
	eventStage := row.Get("event_stage")

	event, ok := r.events[eventCode]
	if !ok {
		event = domain.NewEvent(eventCode)
		r.events[eventCode] = event
	}
	event.Absorb(
		eventName,
		row.Get("gender"),
		disciplineName,
		row.Get("discipline_code"),
		eventStage,
		venueLookup[row.Get("venue")],
	)

	// Last write wins on name collisions; file scan order is fixed.
	key := domain.EventKey{
		Discipline: strings.ToLower(disciplineName),
		Event:      strings.ToLower(eventName),
	}
	r.lookup[key] = eventCode

	participantCode := row.Get("participant_code")
	if participantCode == "" {
		return
	}

	status := row.Get("result_IRM")
	if status == "" {
		status = row.Get("result_WLT")
	}
	bib := row.Get("bib")
	if bib == "" {
		bib = row.Get("start_order")
	}
	payload := domain.Result{
		ParticipantCode: participantCode,
		EventCode:       eventCode,
		StageCode:       row.Get("stage_code"),
		EventStage:      eventStage,
		Stage:           row.Get("stage"),
		Date:            row.Get("date"),
		Result:          row.Get("result"),
		ResultType:      row.Get("result_type"),
		ResultStatus:    status,
		ResultDiff:      row.Get("result_diff"),
		Bib:             bib,
		Rank:            row.Get("rank"),
		CountryCode:     row.Get("participant_country_code"),
	}

	switch strings.ToLower(row.Get("participant_type")) {
	case "person":
		r.athleteResults = append(r.athleteResults, payload)
	case "team":
		r.teamResults = append(r.teamResults, payload)
	}
}
