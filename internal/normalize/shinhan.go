package normalize

import "strings"

// shinhanBankAdapter parses the 신한은행 export. Amount headers carry a
// "(원)" currency-unit suffix that is stripped before column matching, and
// date and time live in separate columns.
type shinhanBankAdapter struct{}

func (shinhanBankAdapter) Source() Source      { return SourceShinhanBank }
func (shinhanBankAdapter) DisplayName() string { return "신한은행" }
func (shinhanBankAdapter) FileName() string    { return "신한은행.tsv" }

func (a shinhanBankAdapter) Parse(t *RawTable) ([]Transaction, error) {
	t.MapHeaders(func(name string) string {
		return strings.ReplaceAll(name, "(원)", "")
	})

	// 적요, 내용 and 거래점 are combine-only and may be absent.
	err := requireColumns(t, a.Source(), "거래일자", "거래시간", "입금", "출금", "잔액")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		ts, ok := parseTimestamp("2006-01-02 15:04:05",
			combineFields(t.Cell(i, "거래일자"), t.Cell(i, "거래시간")))
		if !ok {
			continue
		}

		credit := cleanAmountOrZero(t.Cell(i, "입금"))
		debit := cleanAmountOrZero(t.Cell(i, "출금"))

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    directionFromAmounts(credit, debit),
			Description:  combineFields(t.Cell(i, "적요"), t.Cell(i, "내용")),
			Counterparty: combineFields(t.Cell(i, "내용"), t.Cell(i, "거래점")),
			CreditAmount: credit,
			DebitAmount:  debit,
			Balance:      CleanAmount(t.Cell(i, "잔액")),
			Memo:         "",
			Source:       a.Source(),
		})
	}
	return txs, nil
}
