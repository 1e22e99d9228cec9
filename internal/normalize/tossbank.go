package normalize

// tossBankAdapter parses the 토스뱅크 export. The signed 거래 금액 column
// decides direction, and the raw 거래 유형 is folded into the direction label
// as a suffix when present.
type tossBankAdapter struct{}

func (tossBankAdapter) Source() Source      { return SourceTossBank }
func (tossBankAdapter) DisplayName() string { return "토스뱅크" }
func (tossBankAdapter) FileName() string    { return "토스뱅크.tsv" }

func (a tossBankAdapter) Parse(t *RawTable) ([]Transaction, error) {
	// 거래 기관, 적요 and 계좌번호 are combine-only and may be absent.
	err := requireColumns(t, a.Source(), "거래 일시", "거래 유형", "거래 금액", "거래 후 잔액", "메모")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		ts, ok := parseTimestamp("2006.01.02 15:04:05", t.Cell(i, "거래 일시"))
		if !ok {
			continue
		}

		amount := CleanAmount(t.Cell(i, "거래 금액"))
		credit, debit := splitSigned(amount)

		direction := directionFromAmounts(credit, debit)
		if kind := t.Cell(i, "거래 유형"); direction != "" && kind != "" {
			direction += "_" + kind
		}

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    direction,
			Description:  combineFields(t.Cell(i, "거래 기관"), t.Cell(i, "적요")),
			Counterparty: combineFields(t.Cell(i, "거래 기관"), t.Cell(i, "계좌번호")),
			CreditAmount: credit,
			DebitAmount:  debit,
			Balance:      CleanAmount(t.Cell(i, "거래 후 잔액")),
			Memo:         t.Cell(i, "메모"),
			Source:       a.Source(),
		})
	}
	return txs, nil
}
