package normalize

import "time"

// Source identifies which adapter produced a transaction.
type Source string

const (
	SourceKakaoBank   Source = "kakaobank"
	SourceKBank       Source = "kbank"
	SourceTossBank    Source = "tossbank"
	SourceHyundaiCard Source = "hyundaicard"
	SourceNonghyup    Source = "nonghyup_hyejin"
	SourceShinhanBank Source = "shinhanbank"
)

// Transaction is the canonical row every source is normalized into.
// Absent text fields are empty strings; an unknown balance is nil.
type Transaction struct {
	Timestamp    time.Time
	Direction    string
	Description  string
	Counterparty string
	CreditAmount float64
	DebitAmount  float64
	Balance      *float64
	Memo         string
	Source       Source

	// Seq is the 1-based position assigned after the final sort. It is for
	// display only, never a join key.
	Seq int
}
