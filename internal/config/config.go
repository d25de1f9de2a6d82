package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Neo4j holds the optional bulk-load target. An empty URI disables the load.
type Neo4j struct {
	URI       string
	User      string
	Password  string
	Database  string
	BatchSize int
}

// Config holds the fixed input/output layout of one normalization run.
type Config struct {
	ImportDir  string
	ResultsDir string
	OutputDir  string
	LogMode    string
	Neo4j      Neo4j
}

// Default returns the conventional directory layout relative to the
// working directory.
func Default() Config {
	return Config{
		ImportDir:  "import",
		ResultsDir: filepath.Join("import", "results"),
		OutputDir:  filepath.Join("import", "normalized"),
		LogMode:    "dev",
		Neo4j: Neo4j{
			User:      "neo4j",
			BatchSize: 1000,
		},
	}
}

// Load reads config.yaml from configPath, if present, and applies
// environment overrides with the NOSQLUNS prefix (e.g. NOSQLUNS_OUTPUT_DIR,
// NOSQLUNS_NEO4J_URI). Missing files are not an error; defaults apply.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("NOSQLUNS")

	v.BindEnv("import.dir", "NOSQLUNS_IMPORT_DIR")
	v.BindEnv("import.results_dir", "NOSQLUNS_RESULTS_DIR")
	v.BindEnv("output.dir", "NOSQLUNS_OUTPUT_DIR")
	v.BindEnv("log.mode", "NOSQLUNS_LOG_MODE")
	v.BindEnv("neo4j.uri", "NOSQLUNS_NEO4J_URI")
	v.BindEnv("neo4j.user", "NOSQLUNS_NEO4J_USER")
	v.BindEnv("neo4j.password", "NOSQLUNS_NEO4J_PASSWORD")
	v.BindEnv("neo4j.database", "NOSQLUNS_NEO4J_DATABASE")
	v.BindEnv("neo4j.batch_size", "NOSQLUNS_NEO4J_BATCH_SIZE")

	// Config file is optional; env vars and defaults cover a bare checkout.
	_ = v.ReadInConfig()

	if v.IsSet("import.dir") {
		cfg.ImportDir = v.GetString("import.dir")
		cfg.ResultsDir = filepath.Join(cfg.ImportDir, "results")
		cfg.OutputDir = filepath.Join(cfg.ImportDir, "normalized")
	}
	if v.IsSet("import.results_dir") {
		cfg.ResultsDir = v.GetString("import.results_dir")
	}
	if v.IsSet("output.dir") {
		cfg.OutputDir = v.GetString("output.dir")
	}
	if v.IsSet("log.mode") {
		cfg.LogMode = v.GetString("log.mode")
	}
	if v.IsSet("neo4j.uri") {
		cfg.Neo4j.URI = v.GetString("neo4j.uri")
	}
	if v.IsSet("neo4j.user") {
		cfg.Neo4j.User = v.GetString("neo4j.user")
	}
	if v.IsSet("neo4j.password") {
		cfg.Neo4j.Password = v.GetString("neo4j.password")
	}
	if v.IsSet("neo4j.database") {
		cfg.Neo4j.Database = v.GetString("neo4j.database")
	}
	if v.IsSet("neo4j.batch_size") {
		if size := v.GetInt("neo4j.batch_size"); size > 0 {
			cfg.Neo4j.BatchSize = size
		}
	}

	return cfg, nil
}
