// Package pipeline sequences normalization, batch classification, positional
// merging and file output into one best-effort run.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hunju/ledgersort/internal/classify"
	"github.com/hunju/ledgersort/internal/config"
	"github.com/hunju/ledgersort/internal/logger"
	"github.com/hunju/ledgersort/internal/normalize"
	"github.com/hunju/ledgersort/internal/taxonomy"
)

// Classifier sends one batch to the classification service and returns the
// raw response text, degrading terminally failed batches to an empty array.
type Classifier interface {
	Classify(ctx context.Context, batch []string) (string, error)
}

// Pipeline runs the full integration-and-classification flow. Execution is
// strictly sequential: one batch at a time, every sleep blocking the run.
type Pipeline struct {
	cfg    config.Config
	engine *normalize.Engine
	client Classifier
	tax    *taxonomy.Taxonomy

	now func() time.Time
}

// New builds a pipeline from its collaborators.
func New(cfg config.Config, engine *normalize.Engine, client Classifier, tax *taxonomy.Taxonomy) *Pipeline {
	return &Pipeline{cfg: cfg, engine: engine, client: client, tax: tax, now: time.Now}
}

// Run executes the pipeline and returns the path of the written output file.
// ErrNoData before classification is the only fatal condition; every batch
// failure afterward only reduces classification coverage.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx, log)

	// 1. Normalize every source into the canonical, sorted sequence.
	txs, err := p.engine.Normalize(ctx)
	if err != nil {
		return "", fmt.Errorf("pipeline.Run: %w", err)
	}
	log.Info().Int("transactions", len(txs)).Msg("normalization complete")

	// 2. Serialize and slice into fixed-size batches. The sort order from
	// step 1 is final: batch positions are the merge join keys.
	lines := classify.Lines(txs)
	batches := classify.Batches(lines, p.cfg.BatchSize)

	// 3. Classify batch by batch; a failed batch contributes zero results.
	perBatch := make([][]classify.Result, 0, len(batches))
	for i, batch := range batches {
		blog := log.With().Int("batch", i+1).Int("batches", len(batches)).Int("size", len(batch)).Logger()
		blog.Info().Msg("classifying batch")

		raw, err := p.client.Classify(logger.WithContext(ctx, blog), batch)
		if err != nil {
			return "", fmt.Errorf("pipeline.Run: batch %d: %w", i+1, err)
		}

		results, err := classify.ParseResults(raw)
		if err != nil {
			blog.Warn().Err(err).Msg("unparseable batch response, keeping zero results")
			perBatch = append(perBatch, nil)
			continue
		}

		blog.Info().Int("results", len(results)).Msg("batch classified")
		perBatch = append(perBatch, results)
	}

	// 4. Merge positionally and report coverage.
	merged, mismatch := Merge(txs, perBatch)
	if mismatch != nil {
		log.Warn().
			Int("transactions", mismatch.Transactions).
			Int("results", mismatch.Results).
			Msg("classification count mismatch, merged over the shorter length")
	}
	p.auditCategories(log, merged)

	// 5. Write the best-effort output file.
	path := filepath.Join(p.cfg.LogDir, OutputFilename("final_integrated_classified", p.now()))
	if err := WriteClassified(path, merged); err != nil {
		return "", fmt.Errorf("pipeline.Run: %w", err)
	}
	log.Info().Str("path", path).Int("rows", len(merged)).Msg("output written")
	return path, nil
}

// auditCategories counts results whose category pair is outside the
// taxonomy. The response schema constrains structure, not taxonomy
// membership, so this is logged rather than enforced.
func (p *Pipeline) auditCategories(log zerolog.Logger, merged []Merged) {
	if p.tax == nil {
		return
	}
	invalid := 0
	for _, m := range merged {
		if m.Result == nil {
			continue
		}
		if err := p.tax.Validate(m.Result.PrimaryCategory, m.Result.SecondaryCategory); err != nil {
			invalid++
			log.Debug().Err(err).Int("seq", m.Tx.Seq).Msg("category outside taxonomy")
		}
	}
	if invalid > 0 {
		log.Warn().Int("invalid", invalid).Msg("results with categories outside the taxonomy")
	}
}
