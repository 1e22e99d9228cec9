package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hunju/ledgersort/internal/config"
	"github.com/hunju/ledgersort/internal/logger"
	"github.com/hunju/ledgersort/internal/normalize"
	"github.com/hunju/ledgersort/internal/pipeline"
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	txs, err := normalize.NewEngine(cfg.DataDir).Normalize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("normalization failed")
	}

	path := filepath.Join(cfg.LogDir, pipeline.OutputFilename("integrated_transactions", time.Now()))
	if err := pipeline.WriteIntegrated(path, txs); err != nil {
		log.Fatal().Err(err).Msg("writing integrated file failed")
	}

	fmt.Printf("Integrated %d transactions into %s\n", len(txs), path)
}
