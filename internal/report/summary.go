// Package report aggregates a classified output file into category counts
// and exports them as a sorted TSV and a nested JSON mapping.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// Group is one (direction, primary, secondary) combination with its count.
type Group struct {
	Direction string
	Primary   string
	Secondary string
	Count     int
}

// Summary is the aggregated classification coverage of one run, groups
// sorted by count descending (first-seen order for ties).
type Summary struct {
	Groups []Group
}

// Read aggregates a classified TSV produced by the pipeline. Rows with an
// empty direction (unclassified rows) are skipped.
func Read(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report.Read: %w", err)
	}
	defer f.Close()

	s, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("report.Read: %s: %w", path, err)
	}
	return s, nil
}

// ReadFrom aggregates classified rows from r. The header must contain the
// three classification key columns.
func ReadFrom(r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading classified file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading classified file: no header row")
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, required := range []string{"거래_유형", "주요_카테고리", "세부_카테고리"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("reading classified file: missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	counts := map[[3]string]int{}
	var order [][3]string
	for _, row := range records[1:] {
		key := [3]string{cell(row, "거래_유형"), cell(row, "주요_카테고리"), cell(row, "세부_카테고리")}
		if key[0] == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	s := &Summary{Groups: make([]Group, 0, len(order))}
	for _, key := range order {
		s.Groups = append(s.Groups, Group{
			Direction: key[0],
			Primary:   key[1],
			Secondary: key[2],
			Count:     counts[key],
		})
	}
	sort.SliceStable(s.Groups, func(i, j int) bool {
		return s.Groups[i].Count > s.Groups[j].Count
	})
	return s, nil
}

// WriteTSV writes the sorted summary with 1-based 순번 and 건수 columns.
func (s *Summary) WriteTSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report.WriteTSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write([]string{"순번", "거래_유형", "주요_카테고리", "세부_카테고리", "건수"}); err != nil {
		return fmt.Errorf("report.WriteTSV: %w", err)
	}
	for i, g := range s.Groups {
		row := []string{strconv.Itoa(i + 1), g.Direction, g.Primary, g.Secondary, strconv.Itoa(g.Count)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report.WriteTSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report.WriteTSV: %w", err)
	}
	return f.Close()
}

// NestedJSON renders direction → primary → [secondary] in count-descending
// first-seen order, secondaries deduplicated.
func (s *Summary) NestedJSON() ([]byte, error) {
	type primaryEntry struct {
		name        string
		secondaries []string
		seen        map[string]bool
	}
	type directionEntry struct {
		name      string
		primaries []*primaryEntry
		index     map[string]*primaryEntry
	}

	var directions []*directionEntry
	index := map[string]*directionEntry{}

	for _, g := range s.Groups {
		d, ok := index[g.Direction]
		if !ok {
			d = &directionEntry{name: g.Direction, index: map[string]*primaryEntry{}}
			index[g.Direction] = d
			directions = append(directions, d)
		}
		p, ok := d.index[g.Primary]
		if !ok {
			p = &primaryEntry{name: g.Primary, seen: map[string]bool{}}
			d.index[g.Primary] = p
			d.primaries = append(d.primaries, p)
		}
		if !p.seen[g.Secondary] {
			p.seen[g.Secondary] = true
			p.secondaries = append(p.secondaries, g.Secondary)
		}
	}

	// encoding/json sorts map keys, which would destroy the count order, so
	// the object is assembled by hand with marshaled fragments.
	var buf bytes.Buffer
	buf.WriteString("{")
	for di, d := range directions {
		if di > 0 {
			buf.WriteString(",")
		}
		writeJSONString(&buf, d.name)
		buf.WriteString(":{")
		for pi, p := range d.primaries {
			if pi > 0 {
				buf.WriteString(",")
			}
			writeJSONString(&buf, p.name)
			buf.WriteString(":")
			encoded, err := json.Marshal(p.secondaries)
			if err != nil {
				return nil, fmt.Errorf("report.NestedJSON: %w", err)
			}
			buf.Write(encoded)
		}
		buf.WriteString("}")
	}
	buf.WriteString("}")

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("report.NestedJSON: %w", err)
	}
	return indented.Bytes(), nil
}

// WriteJSON writes the nested JSON export to path.
func (s *Summary) WriteJSON(path string) error {
	data, err := s.NestedJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report.WriteJSON: %w", err)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}
