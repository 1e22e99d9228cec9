package normalize

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustTable(t *testing.T, lines ...string) *RawTable {
	t.Helper()
	table, err := ReadTable(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	return table
}

func row(cells ...string) string {
	return strings.Join(cells, "\t")
}

func TestKakaoBankAdapter(t *testing.T) {
	table := mustTable(t,
		row("거래일시", "구분", "거래구분", "내용", "거래금액", "거래 후 잔액", "메모"),
		row("2024.03.02 09:15:00", "체크카드", "체크카드결제", "CU편의점", "-3,500원", "96,500원", ""),
		row("2024.03.01 10:00:00", "이체", "입금", "홍길동", "50,000", "100,000", "용돈"),
		row("not-a-date", "이체", "입금", "아무개", "1,000", "", ""),
	)

	txs, err := kakaoBankAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d rows, want 2 (one dropped for bad timestamp)", len(txs))
	}
	if table.Len()-len(txs) != 1 {
		t.Errorf("dropped count = %d, want 1", table.Len()-len(txs))
	}

	first := txs[0]
	if first.DebitAmount != 3500 || first.CreditAmount != 0 {
		t.Errorf("signed split: credit=%v debit=%v, want 0/3500", first.CreditAmount, first.DebitAmount)
	}
	if first.Direction != "체크카드" {
		t.Errorf("Direction = %q, want 체크카드", first.Direction)
	}
	if first.Balance == nil || *first.Balance != 96500 {
		t.Errorf("Balance = %v, want 96500", first.Balance)
	}
	if first.Source != SourceKakaoBank {
		t.Errorf("Source = %q, want %q", first.Source, SourceKakaoBank)
	}

	second := txs[1]
	if second.CreditAmount != 50000 || second.DebitAmount != 0 {
		t.Errorf("signed split: credit=%v debit=%v, want 50000/0", second.CreditAmount, second.DebitAmount)
	}
	if second.Memo != "용돈" {
		t.Errorf("Memo = %q, want 용돈", second.Memo)
	}
}

func TestKakaoBankAdapter_MissingColumn(t *testing.T) {
	table := mustTable(t,
		row("거래일시", "구분", "내용", "거래금액", "거래 후 잔액", "메모"),
	)

	_, err := kakaoBankAdapter{}.Parse(table)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if pe.Column != "거래구분" {
		t.Errorf("missing column = %q, want 거래구분", pe.Column)
	}
	if pe.Source != SourceKakaoBank {
		t.Errorf("source = %q, want %q", pe.Source, SourceKakaoBank)
	}
}

func TestKBankAdapter(t *testing.T) {
	table := mustTable(t,
		row("거래일시", "거래구분", "적요내용", "상대 은행", "상대 예금주명", "상대 계좌번호", "입금금액", "출금금액", "잔액", "메모"),
		row("2024.03.02 12:00:00", "이체", "월급", "국민은행", "회사", "123-456", "3,500,000", "", "4,000,000", ""),
		row("2024.03.01 08:30:00", "출금", "", "", "", "", "", "12,000원", "500,000", ""),
	)

	txs, err := kBankAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d rows, want 2", len(txs))
	}

	if txs[0].Direction != "입금" {
		t.Errorf("Direction = %q, want 입금", txs[0].Direction)
	}
	if txs[0].Counterparty != "국민은행 회사 123-456" {
		t.Errorf("Counterparty = %q, want combined fields", txs[0].Counterparty)
	}
	if txs[1].Direction != "출금" {
		t.Errorf("Direction = %q, want 출금", txs[1].Direction)
	}
	if txs[1].CreditAmount != 0 || txs[1].DebitAmount != 12000 {
		t.Errorf("amounts = %v/%v, want 0/12000", txs[1].CreditAmount, txs[1].DebitAmount)
	}
}

func TestKBankAdapter_AbsentCombineColumns(t *testing.T) {
	table := mustTable(t,
		row("거래일시", "상대 예금주명", "입금금액", "출금금액", "잔액", "메모"),
		row("2024.03.02 12:00:00", "회사", "3,500,000", "", "4,000,000", ""),
	)

	txs, err := kBankAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d rows, want 1", len(txs))
	}

	// Absent combine columns contribute nothing instead of failing the source.
	if txs[0].Counterparty != "회사" {
		t.Errorf("Counterparty = %q, want 회사", txs[0].Counterparty)
	}
	if txs[0].Description != "" {
		t.Errorf("Description = %q, want empty", txs[0].Description)
	}
	if txs[0].CreditAmount != 3500000 {
		t.Errorf("CreditAmount = %v, want 3500000", txs[0].CreditAmount)
	}
}

func TestTossBankAdapter_DirectionSuffix(t *testing.T) {
	table := mustTable(t,
		row("거래 일시", "거래 유형", "거래 기관", "적요", "계좌번호", "거래 금액", "거래 후 잔액", "메모"),
		row("2024.03.02 18:00:00", "카드", "토스뱅크", "편의점", "", "-4,500", "95,500", ""),
		row("2024.03.01 09:00:00", "", "토스뱅크", "이자", "", "120", "100,000", ""),
		row("2024.02.28 09:00:00", "이체", "", "", "111-222", "0", "99,880", ""),
	)

	txs, err := tossBankAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d rows, want 3", len(txs))
	}

	if txs[0].Direction != "출금_카드" {
		t.Errorf("Direction = %q, want 출금_카드", txs[0].Direction)
	}
	// No raw type: plain direction, no suffix.
	if txs[1].Direction != "입금" {
		t.Errorf("Direction = %q, want 입금", txs[1].Direction)
	}
	// Zero amount: no direction at all.
	if txs[2].Direction != "" {
		t.Errorf("Direction = %q, want empty", txs[2].Direction)
	}
	if txs[2].Counterparty != "111-222" {
		t.Errorf("Counterparty = %q, want 111-222", txs[2].Counterparty)
	}
}

func TestHyundaiCardAdapter(t *testing.T) {
	table := mustTable(t,
		row("이용일", "카드구분", "카드명(카드번호 뒤 4자리)", "가맹점명", "사업자번호", "이용금액", "승인번호", "할부 개월"),
		row("2024년03월02일", "신용", "M카드(1234)", "스타벅스", "123-45-67890", "6,100원", "A-1", "일시불"),
		row("", "신용", "M카드(1234)", "없는날짜", "", "1,000", "", ""),
	)

	txs, err := hyundaiCardAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d rows, want 1 (blank date dropped)", len(txs))
	}

	tx := txs[0]
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if !tx.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", tx.Timestamp, want)
	}
	if tx.Direction != "출금" {
		t.Errorf("Direction = %q, want hard-coded 출금", tx.Direction)
	}
	if tx.CreditAmount != 0 {
		t.Errorf("CreditAmount = %v, want 0 for a card source", tx.CreditAmount)
	}
	if tx.DebitAmount != 6100 {
		t.Errorf("DebitAmount = %v, want 6100", tx.DebitAmount)
	}
	if tx.Balance != nil {
		t.Errorf("Balance = %v, want nil for a card source", *tx.Balance)
	}
	if tx.Memo != "A-1 일시불" {
		t.Errorf("Memo = %q, want combined 승인번호+할부", tx.Memo)
	}
}

func TestNonghyupAdapter_DateSeparators(t *testing.T) {
	table := mustTable(t,
		row("거래일시", "거래내용", "거래기록사항", "거래점", "입금금액", "출금금액", "거래후잔액", "거래메모"),
		row("2024/03/02 14:30:00", "이체", "급여", "본점", "1,000,000", "", "2,000,000", "메모"),
	)

	txs, err := nonghyupAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d rows, want 1", len(txs))
	}

	want := time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC)
	if !txs[0].Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", txs[0].Timestamp, want)
	}
	if txs[0].Counterparty != "급여 본점" {
		t.Errorf("Counterparty = %q, want 급여 본점", txs[0].Counterparty)
	}
}

func TestShinhanBankAdapter_HeaderSuffix(t *testing.T) {
	table := mustTable(t,
		row("거래일자", "거래시간", "적요", "내용", "거래점", "입금(원)", "출금(원)", "잔액(원)"),
		row("2024-03-02", "10:20:30", "이체", "홍길동", "강남점", "", "30,000", "70,000"),
	)

	txs, err := shinhanBankAdapter{}.Parse(table)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d rows, want 1", len(txs))
	}

	tx := txs[0]
	want := time.Date(2024, 3, 2, 10, 20, 30, 0, time.UTC)
	if !tx.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", tx.Timestamp, want)
	}
	if tx.Direction != "출금" {
		t.Errorf("Direction = %q, want 출금", tx.Direction)
	}
	if tx.Description != "이체 홍길동" {
		t.Errorf("Description = %q, want 이체 홍길동", tx.Description)
	}
	if tx.Counterparty != "홍길동 강남점" {
		t.Errorf("Counterparty = %q, want 홍길동 강남점", tx.Counterparty)
	}
	if tx.Memo != "" {
		t.Errorf("Memo = %q, want empty", tx.Memo)
	}
}

func TestShinhanBankAdapter_MissingAmountColumn(t *testing.T) {
	table := mustTable(t,
		row("거래일자", "거래시간", "적요", "내용", "거래점", "잔액(원)"),
	)

	_, err := shinhanBankAdapter{}.Parse(table)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if pe.Column != "입금" {
		t.Errorf("missing column = %q, want 입금", pe.Column)
	}
}

func TestRegistry_Order(t *testing.T) {
	want := []Source{
		SourceKakaoBank, SourceKBank, SourceTossBank,
		SourceHyundaiCard, SourceNonghyup, SourceShinhanBank,
	}

	reg := Registry()
	if len(reg) != len(want) {
		t.Fatalf("registry has %d adapters, want %d", len(reg), len(want))
	}
	for i, a := range reg {
		if a.Source() != want[i] {
			t.Errorf("registry[%d] = %q, want %q", i, a.Source(), want[i])
		}
	}
}
