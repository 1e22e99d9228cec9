package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hunju/ledgersort/internal/classify"
	"github.com/hunju/ledgersort/internal/config"
	"github.com/hunju/ledgersort/internal/logger"
	"github.com/hunju/ledgersort/internal/normalize"
	"github.com/hunju/ledgersort/internal/pipeline"
	"github.com/hunju/ledgersort/internal/taxonomy"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory with per-source TSV exports (overrides DATA_DIR)")
	logDir := flag.String("log-dir", "", "directory for output files (overrides LOG_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("loading configuration failed")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading category taxonomy failed")
	}

	client, err := classify.NewClient(ctx, cfg, tax)
	if err != nil {
		log.Fatal().Err(err).Msg("creating classification client failed")
	}
	if !client.Enabled() {
		log.Warn().Msg("no API key configured: output will be unclassified")
	}

	log.Info().Str("data_dir", cfg.DataDir).Str("model", cfg.Model).Msg("starting classification run")

	p := pipeline.New(cfg, normalize.NewEngine(cfg.DataDir), client, tax)
	path, err := p.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline run failed")
	}

	fmt.Printf("Classified output written to %s\n", path)
}
