package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const classifiedFixture = "순번\t거래일시\t사용구분\t사용내역\t거래상대방\t입금액\t출금액\t잔액\t메모\t출처\t거래_유형\t주요_카테고리\t세부_카테고리\t판단_사유\n" +
	"1\t2024.03.02 09:00:00\t이체\t월급\t회사\t3500000\t0\t\t\t케이뱅크\t입금\t소득\t월급\t급여\n" +
	"2\t2024.03.01 12:00:00\t체크카드\t결제\tCU\t0\t3500\t\t\t카카오뱅크\t출금\t식비\t편의점\t편의점\n" +
	"3\t2024.02.29 12:00:00\t체크카드\t결제\tGS25\t0\t2000\t\t\t카카오뱅크\t출금\t식비\t편의점\t편의점\n" +
	"4\t2024.02.28 12:00:00\t체크카드\t결제\t식당\t0\t12000\t\t\t카카오뱅크\t\t\t\t\n"

func TestReadFrom(t *testing.T) {
	s, err := ReadFrom(strings.NewReader(classifiedFixture))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}

	// Unclassified row 4 is skipped; two groups remain, largest first.
	if len(s.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(s.Groups))
	}
	top := s.Groups[0]
	if top.Direction != "출금" || top.Primary != "식비" || top.Secondary != "편의점" || top.Count != 2 {
		t.Errorf("top group = %+v, want 출금/식비/편의점 x2", top)
	}
	if s.Groups[1].Count != 1 {
		t.Errorf("second group count = %d, want 1", s.Groups[1].Count)
	}
}

func TestReadFrom_MissingColumns(t *testing.T) {
	_, err := ReadFrom(strings.NewReader("순번\t거래일시\n1\tx\n"))
	if err == nil {
		t.Error("ReadFrom succeeded on a file without classification columns")
	}
}

func TestWriteTSV(t *testing.T) {
	s, err := ReadFrom(strings.NewReader(classifiedFixture))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "category_summary_sorted.tsv")
	if err := s.WriteTSV(path); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 groups", len(lines))
	}
	if lines[1] != "1\t출금\t식비\t편의점\t2" {
		t.Errorf("first group line = %q", lines[1])
	}
}

func TestNestedJSON(t *testing.T) {
	s, err := ReadFrom(strings.NewReader(classifiedFixture))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}

	data, err := s.NestedJSON()
	if err != nil {
		t.Fatalf("NestedJSON failed: %v", err)
	}

	var nested map[string]map[string][]string
	if err := json.Unmarshal(data, &nested); err != nil {
		t.Fatalf("export is not valid JSON: %v\n%s", err, data)
	}
	if got := nested["출금"]["식비"]; len(got) != 1 || got[0] != "편의점" {
		t.Errorf("nested[출금][식비] = %v, want [편의점]", got)
	}
	if got := nested["입금"]["소득"]; len(got) != 1 || got[0] != "월급" {
		t.Errorf("nested[입금][소득] = %v, want [월급]", got)
	}

	// The largest group's direction key comes first.
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{\n  \"출금\"") {
		t.Errorf("count order lost in JSON export:\n%s", data)
	}
}
