package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ImportDir != "import" {
		t.Fatalf("ImportDir = %q, want default", cfg.ImportDir)
	}
	if cfg.OutputDir != filepath.Join("import", "normalized") {
		t.Fatalf("OutputDir = %q, want default", cfg.OutputDir)
	}
	if cfg.Neo4j.URI != "" {
		t.Fatalf("graph load must be disabled by default")
	}
	if cfg.Neo4j.BatchSize != 1000 {
		t.Fatalf("BatchSize = %d, want 1000", cfg.Neo4j.BatchSize)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "import:\n  dir: data\noutput:\n  dir: out\nneo4j:\n  uri: bolt://localhost:7687\n  batch_size: 250\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ImportDir != "data" {
		t.Fatalf("ImportDir = %q, want data", cfg.ImportDir)
	}
	if cfg.ResultsDir != filepath.Join("data", "results") {
		t.Fatalf("ResultsDir = %q, want derived from import dir", cfg.ResultsDir)
	}
	if cfg.OutputDir != "out" {
		t.Fatalf("OutputDir = %q, want explicit override", cfg.OutputDir)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" || cfg.Neo4j.BatchSize != 250 {
		t.Fatalf("neo4j config not loaded: %+v", cfg.Neo4j)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("NOSQLUNS_OUTPUT_DIR", "/tmp/normalized")
	t.Setenv("NOSQLUNS_NEO4J_URI", "bolt://db:7687")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OutputDir != "/tmp/normalized" {
		t.Fatalf("OutputDir = %q, want env override", cfg.OutputDir)
	}
	if cfg.Neo4j.URI != "bolt://db:7687" {
		t.Fatalf("Neo4j URI = %q, want env override", cfg.Neo4j.URI)
	}
}
