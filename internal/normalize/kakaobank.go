package normalize

// kakaoBankAdapter parses the 카카오뱅크 export. The export carries one signed
// 거래금액 column; positive is a deposit, negative a withdrawal.
type kakaoBankAdapter struct{}

func (kakaoBankAdapter) Source() Source       { return SourceKakaoBank }
func (kakaoBankAdapter) DisplayName() string  { return "카카오뱅크" }
func (kakaoBankAdapter) FileName() string     { return "카카오뱅크.tsv" }

func (a kakaoBankAdapter) Parse(t *RawTable) ([]Transaction, error) {
	err := requireColumns(t, a.Source(),
		"거래일시", "구분", "거래구분", "내용", "거래금액", "거래 후 잔액", "메모")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		ts, ok := parseTimestamp("2006.01.02 15:04:05", t.Cell(i, "거래일시"))
		if !ok {
			continue
		}

		credit, debit := splitSigned(CleanAmount(t.Cell(i, "거래금액")))

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    t.Cell(i, "구분"),
			Description:  t.Cell(i, "거래구분"),
			Counterparty: t.Cell(i, "내용"),
			CreditAmount: credit,
			DebitAmount:  debit,
			Balance:      CleanAmount(t.Cell(i, "거래 후 잔액")),
			Memo:         t.Cell(i, "메모"),
			Source:       a.Source(),
		})
	}
	return txs, nil
}
