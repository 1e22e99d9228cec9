package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// RawTable is one source export read into memory: a header row plus records.
// Column lookup trims surrounding whitespace on header names.
type RawTable struct {
	index map[string]int
	rows  [][]string
}

// ReadTableFile reads a tab-delimited UTF-8 export from disk.
func ReadTableFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("normalize.ReadTableFile: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("normalize.ReadTableFile: %s: %w", path, err)
	}
	return t, nil
}

// ReadTable reads a tab-delimited table from r. Rows may have fewer fields
// than the header; missing cells read as empty.
func ReadTable(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading table: no header row")
	}

	t := &RawTable{index: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, name := range records[0] {
		t.index[strings.TrimSpace(name)] = i
	}
	return t, nil
}

// MapHeaders rewrites every header name through fn. Used by sources whose
// exports decorate column names, e.g. a currency-unit suffix.
func (t *RawTable) MapHeaders(fn func(string) string) {
	mapped := make(map[string]int, len(t.index))
	for name, i := range t.index {
		mapped[strings.TrimSpace(fn(name))] = i
	}
	t.index = mapped
}

// HasColumn reports whether the header contains the named column.
func (t *RawTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	return len(t.rows)
}

// Cell returns the trimmed value at (row, column). Missing columns, short
// rows, blank cells and the literal "nan" placeholder all read as empty.
func (t *RawTable) Cell(row int, column string) string {
	col, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) || col >= len(t.rows[row]) {
		return ""
	}
	v := strings.TrimSpace(t.rows[row][col])
	if v == "nan" || v == "None" {
		return ""
	}
	return v
}
