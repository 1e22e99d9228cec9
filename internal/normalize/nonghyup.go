package normalize

import "regexp"

var nhDateSeparators = regexp.MustCompile(`[/\s]+`)

// nonghyupAdapter parses the 농협 export (혜진 account). Its 거래일시 mixes
// slashes and spaces as separators, so the value is canonicalized to dots
// before parsing.
type nonghyupAdapter struct{}

func (nonghyupAdapter) Source() Source      { return SourceNonghyup }
func (nonghyupAdapter) DisplayName() string { return "농협_혜진" }
func (nonghyupAdapter) FileName() string    { return "농협_혜진.tsv" }

func (a nonghyupAdapter) Parse(t *RawTable) ([]Transaction, error) {
	// 거래기록사항 and 거래점 are combine-only and may be absent.
	err := requireColumns(t, a.Source(),
		"거래일시", "거래내용", "입금금액", "출금금액", "거래후잔액", "거래메모")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		raw := nhDateSeparators.ReplaceAllString(t.Cell(i, "거래일시"), ".")
		ts, ok := parseTimestamp("2006.01.02.15:04:05", raw)
		if !ok {
			continue
		}

		credit := cleanAmountOrZero(t.Cell(i, "입금금액"))
		debit := cleanAmountOrZero(t.Cell(i, "출금금액"))

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    directionFromAmounts(credit, debit),
			Description:  t.Cell(i, "거래내용"),
			Counterparty: combineFields(t.Cell(i, "거래기록사항"), t.Cell(i, "거래점")),
			CreditAmount: credit,
			DebitAmount:  debit,
			Balance:      CleanAmount(t.Cell(i, "거래후잔액")),
			Memo:         t.Cell(i, "거래메모"),
			Source:       a.Source(),
		})
	}
	return txs, nil
}
