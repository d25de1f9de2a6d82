package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/matijakljajic/nosqluns/internal/config"
	"github.com/matijakljajic/nosqluns/internal/graph"
	"github.com/matijakljajic/nosqluns/internal/logger"
	"github.com/matijakljajic/nosqluns/internal/neo4jdb"
)

func main() {
	// .env is optional; absence is the normal case outside dev.
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	pipeline := graph.NewPipeline(cfg, logg)
	manifest, err := pipeline.Run()
	if err != nil {
		logg.Fatal("normalization failed", "error", err)
	}

	if cfg.Neo4j.URI != "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := neo4jdb.New(ctx, cfg.Neo4j, logg)
		if err != nil {
			logg.Fatal("connect to neo4j", "error", err)
		}
		defer client.Close(ctx)

		if err := neo4jdb.Load(ctx, client, cfg.OutputDir, cfg.Neo4j.BatchSize); err != nil {
			logg.Fatal("graph load failed", "error", err)
		}
	}

	logg.Info("run complete", "run_id", manifest.RunID, "output", cfg.OutputDir)
}
