package normalize

import (
	"fmt"
	"time"
)

// SourceAdapter maps one raw source export onto canonical Transactions.
// Parse fails with *ParseError when a column the mapping requires is absent
// from the header; rows whose timestamp does not parse are dropped silently.
type SourceAdapter interface {
	// Source is the canonical identifier for this adapter.
	Source() Source
	// DisplayName is the original source name written to the 출처 column.
	DisplayName() string
	// FileName is the expected export file name inside the data directory.
	FileName() string
	// Parse converts the raw table into canonical transactions.
	Parse(t *RawTable) ([]Transaction, error)
}

// ParseError reports a source export missing a column its mapping requires.
type ParseError struct {
	Source Source
	Column string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("normalize: source %s: missing required column %q", e.Source, e.Column)
}

// Registry returns the source adapters in their fixed enumeration order.
// This order decides concatenation order and therefore tie-breaks in the
// final timestamp sort; adding a source means adding one adapter here.
func Registry() []SourceAdapter {
	return []SourceAdapter{
		kakaoBankAdapter{},
		kBankAdapter{},
		tossBankAdapter{},
		hyundaiCardAdapter{},
		nonghyupAdapter{},
		shinhanBankAdapter{},
	}
}

// requireColumns checks the header for every column the mapping needs.
func requireColumns(t *RawTable, src Source, columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return &ParseError{Source: src, Column: c}
		}
	}
	return nil
}

// parseTimestamp parses a timestamp cell with the given layout. The second
// return value is false for rows that must be dropped.
func parseTimestamp(layout, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// splitSigned turns a signed amount into the credit/debit pair: positive
// amounts are credits, negative amounts become positive debits, nil is zero
// on both sides.
func splitSigned(amount *float64) (credit, debit float64) {
	if amount == nil {
		return 0, 0
	}
	if *amount > 0 {
		return *amount, 0
	}
	if *amount < 0 {
		return 0, -*amount
	}
	return 0, 0
}

// directionFromAmounts derives 입금/출금 from which side of the pair is
// positive, empty when neither is.
func directionFromAmounts(credit, debit float64) string {
	switch {
	case credit > 0:
		return "입금"
	case debit > 0:
		return "출금"
	default:
		return ""
	}
}
