// Package classify batches normalized transactions, sends them to the Gemini
// structured-output API and decodes the classification results.
package classify

// Direction labels the service may assign to a transaction.
const (
	DirectionCredit   = "입금"
	DirectionDebit    = "출금"
	DirectionReversal = "취소"
)

// Result is one classified transaction as returned by the service. All five
// fields are required by the response schema; the service fails rather than
// omitting them.
type Result struct {
	// InputSentence echoes the serialized source line. It is carried for
	// auditing but never used as a join key; alignment is positional.
	InputSentence     string `json:"인풋_문장"`
	Direction         string `json:"거래_유형"`
	PrimaryCategory   string `json:"주요_카테고리"`
	SecondaryCategory string `json:"세부_카테고리"`
	Rationale         string `json:"판단_사유"`
}
