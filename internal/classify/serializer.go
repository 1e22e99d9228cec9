package classify

import (
	"strconv"
	"strings"
	"time"

	"github.com/hunju/ledgersort/internal/normalize"
)

// CanonicalColumns is the canonical field order, identical for every source.
// Serialized lines, the system instruction's header description and the
// output file all use this order.
var CanonicalColumns = []string{
	"거래일시", "사용구분", "사용내역", "거래상대방", "입금액", "출금액", "잔액", "메모", "출처",
}

// DisplayNames maps a source identifier to the original source name written
// to the 출처 column.
var DisplayNames = map[normalize.Source]string{}

func init() {
	for _, a := range normalize.Registry() {
		DisplayNames[a.Source()] = a.DisplayName()
	}
}

const timestampLayout = "2006.01.02 15:04:05"

// FormatTimestamp renders a timestamp in the canonical column format.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// FormatAmount renders an amount in its shortest round-trip form, so the
// line sent for classification matches the value written to the output file.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatBalance renders a balance; nil renders empty.
func FormatBalance(b *float64) string {
	if b == nil {
		return ""
	}
	return FormatAmount(*b)
}

// Fields renders one transaction's canonical fields in canonical order.
func Fields(tx normalize.Transaction) []string {
	return []string{
		FormatTimestamp(tx.Timestamp),
		tx.Direction,
		tx.Description,
		tx.Counterparty,
		FormatAmount(tx.CreditAmount),
		FormatAmount(tx.DebitAmount),
		FormatBalance(tx.Balance),
		tx.Memo,
		DisplayNames[tx.Source],
	}
}

// Serialize renders one transaction as the tab-joined line the
// classification service receives.
func Serialize(tx normalize.Transaction) string {
	return strings.Join(Fields(tx), "\t")
}

// Lines serializes every transaction in sequence order.
func Lines(txs []normalize.Transaction) []string {
	lines := make([]string, len(txs))
	for i, tx := range txs {
		lines[i] = Serialize(tx)
	}
	return lines
}

// Batches slices lines into fixed-size batches in sequence order. The last
// batch may be shorter. No reordering happens here or anywhere after the
// final sort: batch-relative positions are the merge join keys.
func Batches(lines []string, size int) [][]string {
	if size < 1 || len(lines) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		batches = append(batches, lines[start:end])
	}
	return batches
}
