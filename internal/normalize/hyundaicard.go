package normalize

import "strings"

// hyundaiCardAdapter parses the 현대카드 export. Card statements have no
// running balance and are withdrawals by definition; the 이용일 column
// carries a date like 2024년01월05일 with no time of day.
type hyundaiCardAdapter struct{}

func (hyundaiCardAdapter) Source() Source      { return SourceHyundaiCard }
func (hyundaiCardAdapter) DisplayName() string { return "현대카드" }
func (hyundaiCardAdapter) FileName() string    { return "현대카드.tsv" }

func (a hyundaiCardAdapter) Parse(t *RawTable) ([]Transaction, error) {
	// All other columns are combine-only and may be absent.
	err := requireColumns(t, a.Source(), "이용일", "이용금액")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		date := strings.NewReplacer("년", ".", "월", ".", "일", ".").Replace(t.Cell(i, "이용일"))
		date = strings.Trim(date, ".")
		ts, ok := parseTimestamp("2006.01.02", date)
		if !ok {
			continue
		}

		txs = append(txs, Transaction{
			Timestamp:    ts,
			Direction:    "출금",
			Description:  combineFields(t.Cell(i, "카드구분"), t.Cell(i, "카드명(카드번호 뒤 4자리)")),
			Counterparty: combineFields(t.Cell(i, "가맹점명"), t.Cell(i, "사업자번호")),
			CreditAmount: 0,
			DebitAmount:  cleanAmountOrZero(t.Cell(i, "이용금액")),
			Balance:      nil,
			Memo:         combineFields(t.Cell(i, "승인번호"), t.Cell(i, "할부 개월")),
			Source:       a.Source(),
		})
	}
	return txs, nil
}
