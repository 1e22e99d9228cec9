package pipeline

import (
	"github.com/hunju/ledgersort/internal/classify"
	"github.com/hunju/ledgersort/internal/normalize"
)

// Merged pairs one canonical transaction with its classification result.
// Result is nil for rows the service did not cover.
type Merged struct {
	Tx     normalize.Transaction
	Result *classify.Result
}

// CountMismatch reports a merge-time length disagreement between the
// transaction sequence and the flattened classification results. It is a
// warning condition: the merge truncates to the shorter side and continues.
type CountMismatch struct {
	Transactions int
	Results      int
}

// Merge concatenates the per-batch results in batch order and pairs them
// positionally with the transaction sequence. Both sequences must be in the
// single sort order established before batching; nothing is re-sorted or
// matched by content here. Every transaction appears in the output; rows
// beyond the result count are unclassified.
func Merge(txs []normalize.Transaction, perBatch [][]classify.Result) ([]Merged, *CountMismatch) {
	var flat []classify.Result
	for _, batch := range perBatch {
		flat = append(flat, batch...)
	}

	merged := make([]Merged, len(txs))
	for i := range txs {
		merged[i] = Merged{Tx: txs[i]}
		if i < len(flat) {
			r := flat[i]
			merged[i].Result = &r
		}
	}

	if len(flat) != len(txs) {
		return merged, &CountMismatch{Transactions: len(txs), Results: len(flat)}
	}
	return merged, nil
}
