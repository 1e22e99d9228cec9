package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/hunju/ledgersort/internal/logger"
	"github.com/hunju/ledgersort/internal/report"
)

func main() {
	log := logger.New()

	input := flag.String("input", "", "classified TSV produced by the classify command")
	outDir := flag.String("out-dir", ".", "directory for the summary files")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("Error: --input is required")
	}

	summary, err := report.Read(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("reading classified file failed")
	}

	tsvPath := filepath.Join(*outDir, "category_summary_sorted.tsv")
	if err := summary.WriteTSV(tsvPath); err != nil {
		log.Fatal().Err(err).Msg("writing summary TSV failed")
	}

	jsonPath := filepath.Join(*outDir, "category_summary.json")
	if err := summary.WriteJSON(jsonPath); err != nil {
		log.Fatal().Err(err).Msg("writing summary JSON failed")
	}

	fmt.Printf("Summarized %d category groups into %s and %s\n", len(summary.Groups), tsvPath, jsonPath)
}
