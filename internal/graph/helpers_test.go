package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matijakljajic/nosqluns/internal/config"
	"github.com/matijakljajic/nosqluns/internal/logger"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	base := t.TempDir()
	importDir := filepath.Join(base, "import")
	resultsDir := filepath.Join(importDir, "results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		t.Fatalf("create fixture dirs: %v", err)
	}
	cfg := config.Config{
		ImportDir:  importDir,
		ResultsDir: resultsDir,
		OutputDir:  filepath.Join(base, "normalized"),
	}
	return NewPipeline(cfg, logger.Nop())
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func readOutput(t *testing.T, p *Pipeline, name string) []tabular.Row {
	t.Helper()
	rows, err := tabular.ReadRows(filepath.Join(p.outDir, name))
	if err != nil {
		t.Fatalf("read output %s: %v", name, err)
	}
	return rows
}

func outputColumn(t *testing.T, p *Pipeline, name, column string) []string {
	t.Helper()
	var values []string
	for _, row := range readOutput(t, p, name) {
		values = append(values, row.Get(column))
	}
	return values
}
