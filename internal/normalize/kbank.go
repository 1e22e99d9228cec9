package normalize

// kBankAdapter parses the 케이뱅크 export, which records deposits and
// withdrawals in separate columns; blanks there mean zero.
type kBankAdapter struct{}

func (kBankAdapter) Source() Source      { return SourceKBank }
func (kBankAdapter) DisplayName() string { return "케이뱅크" }
func (kBankAdapter) FileName() string    { return "케이뱅크.tsv" }

func (a kBankAdapter) Parse(t *RawTable) ([]Transaction, error) {
	// Counterparty and description columns are combine-only and may be absent.
	err := requireColumns(t, a.Source(), "거래일시", "입금금액", "출금금액", "잔액", "메모")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		ts, ok := parseTimestamp("2006.01.02 15:04:05", t.Cell(i, "거래일시"))
		if !ok {
			continue
		}

		credit := cleanAmountOrZero(t.Cell(i, "입금금액"))
		debit := cleanAmountOrZero(t.Cell(i, "출금금액"))

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    directionFromAmounts(credit, debit),
			Description:  combineFields(t.Cell(i, "거래구분"), t.Cell(i, "적요내용")),
			Counterparty: combineFields(t.Cell(i, "상대 은행"), t.Cell(i, "상대 예금주명"), t.Cell(i, "상대 계좌번호")),
			CreditAmount: credit,
			DebitAmount:  debit,
			Balance:      CleanAmount(t.Cell(i, "잔액")),
			Memo:         t.Cell(i, "메모"),
			Source:       a.Source(),
		})
	}
	return txs, nil
}
