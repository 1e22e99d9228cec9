package normalize

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/hunju/ledgersort/internal/logger"
)

// ErrNoData is returned when every source failed or yielded no transactions.
// It is the one condition that stops the run before classification.
var ErrNoData = errors.New("normalize: no transactions from any source")

// Engine runs every registered source adapter against the data directory and
// produces the canonical, sorted, sequence-numbered transaction set.
type Engine struct {
	dataDir  string
	adapters []SourceAdapter
}

// NewEngine creates an engine over the default adapter registry.
func NewEngine(dataDir string) *Engine {
	return &Engine{dataDir: dataDir, adapters: Registry()}
}

// Normalize collects transactions from every source in registry order.
// A source whose file is missing or whose header does not match its mapping
// contributes nothing; the run continues with the remaining sources. The
// collected set is sorted by timestamp descending (stable with respect to
// registry order for ties) and numbered from 1.
func (e *Engine) Normalize(ctx context.Context) ([]Transaction, error) {
	log := logger.FromContext(ctx)

	var all []Transaction
	for _, adapter := range e.adapters {
		path := filepath.Join(e.dataDir, adapter.FileName())

		table, err := ReadTableFile(path)
		if err != nil {
			log.Warn().Err(err).Str("source", string(adapter.Source())).Msg("skipping source: unreadable file")
			continue
		}

		txs, err := adapter.Parse(table)
		if err != nil {
			log.Warn().Err(err).Str("source", string(adapter.Source())).Msg("skipping source: parse failed")
			continue
		}

		dropped := table.Len() - len(txs)
		log.Info().
			Str("source", string(adapter.Source())).
			Int("rows", len(txs)).
			Int("dropped", dropped).
			Msg("source normalized")

		all = append(all, txs...)
	}

	if len(all) == 0 {
		return nil, ErrNoData
	}

	SortAndNumber(all)
	return all, nil
}

// SortAndNumber orders transactions by timestamp descending, keeping the
// existing order for equal timestamps, then assigns 1-based sequence numbers.
func SortAndNumber(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	for i := range txs {
		txs[i].Seq = i + 1
	}
}
