package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matijakljajic/nosqluns/internal/config"
	"github.com/matijakljajic/nosqluns/internal/logger"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

// Pipeline normalizes the raw extracts into a node/edge graph dataset.
// Stages run strictly in order; each stage either reads a map finalized
// by an earlier stage or owns the map it is building.
type Pipeline struct {
	importDir  string
	resultsDir string
	outDir     string
	log        *logger.Logger
	manifest   *Manifest
}

// Manifest summarizes one run: per-table row counts plus timing.
type Manifest struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMS int64          `json:"duration_ms"`
	Tables     map[string]int `json:"tables"`
}

// NewPipeline wires a pipeline over the configured directory layout.
func NewPipeline(cfg config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		importDir:  cfg.ImportDir,
		resultsDir: cfg.ResultsDir,
		outDir:     cfg.OutputDir,
		log:        log,
		manifest:   &Manifest{Tables: make(map[string]int)},
	}
}

// Run rebuilds the whole dataset from scratch. The output directory is
// recreated first; a failed run never leaves a partial dataset behind a
// stale complete one.
func (p *Pipeline) Run() (*Manifest, error) {
	start := time.Now()
	p.manifest = &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: start.UTC(),
		Tables:    make(map[string]int),
	}

	if err := os.RemoveAll(p.outDir); err != nil {
		return nil, fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	countries, err := p.buildCountries()
	if err != nil {
		return nil, err
	}
	if err := p.buildSports(); err != nil {
		return nil, err
	}
	venueLookup, err := p.buildVenuesAndSessions()
	if err != nil {
		return nil, err
	}
	if err := p.buildPeople(countries); err != nil {
		return nil, err
	}
	if err := p.buildTeams(countries); err != nil {
		return nil, err
	}
	res, err := p.parseResults(venueLookup)
	if err != nil {
		return nil, err
	}
	// Medal resolution mutates and injects event entries, so it must
	// run before the event accumulator is flattened.
	if err := p.buildMedalRelationships(res.events, res.lookup); err != nil {
		return nil, err
	}
	if err := p.buildEventNodes(res.events); err != nil {
		return nil, err
	}
	if err := p.buildParticipation(res.athleteResults, res.teamResults); err != nil {
		return nil, err
	}

	p.manifest.DurationMS = time.Since(start).Milliseconds()
	if err := p.writeManifest(); err != nil {
		return nil, err
	}
	p.log.Info("normalization finished",
		"run_id", p.manifest.RunID,
		"tables", len(p.manifest.Tables),
		"duration_ms", p.manifest.DurationMS,
	)
	return p.manifest, nil
}

func (p *Pipeline) importPath(name string) string {
	return filepath.Join(p.importDir, name)
}

// writeTable persists one output table and records it in the manifest.
func (p *Pipeline) writeTable(name string, columns []string, rows []tabular.Row) error {
	if err := tabular.WriteTable(filepath.Join(p.outDir, name), columns, rows); err != nil {
		return err
	}
	p.manifest.Tables[name] = len(rows)
	p.log.Info("table written", "table", name, "rows", len(rows))
	return nil
}

func (p *Pipeline) writeManifest() error {
	payload, err := json.MarshalIndent(p.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(p.outDir, "manifest.json")
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
