package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hunju/ledgersort/internal/classify"
	"github.com/hunju/ledgersort/internal/normalize"
)

// ClassificationColumns are the four columns the merge appends to the
// canonical ones in the output file.
var ClassificationColumns = []string{"거래_유형", "주요_카테고리", "세부_카테고리", "판단_사유"}

// OutputFilename builds a timestamped file name like
// final_integrated_classified_20240302_091500.tsv.
func OutputFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.tsv", prefix, now.Format("20060102_150405"))
}

// WriteClassified writes the merged, classified transaction set as a
// tab-delimited UTF-8 file: 순번, the nine canonical fields, then the
// classification fields. Unclassified rows have the last four columns empty.
func WriteClassified(path string, merged []Merged) error {
	return writeTSV(path, func(w *csv.Writer) error {
		header := append([]string{"순번"}, classify.CanonicalColumns...)
		header = append(header, ClassificationColumns...)
		if err := w.Write(header); err != nil {
			return err
		}

		for _, m := range merged {
			row := append([]string{strconv.Itoa(m.Tx.Seq)}, classify.Fields(m.Tx)...)
			if m.Result != nil {
				row = append(row, m.Result.Direction, m.Result.PrimaryCategory,
					m.Result.SecondaryCategory, m.Result.Rationale)
			} else {
				row = append(row, "", "", "", "")
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteIntegrated writes the normalized-only transaction set (the nine
// canonical columns, no sequence or classification fields).
func WriteIntegrated(path string, txs []normalize.Transaction) error {
	return writeTSV(path, func(w *csv.Writer) error {
		if err := w.Write(classify.CanonicalColumns); err != nil {
			return err
		}
		for _, tx := range txs {
			if err := w.Write(classify.Fields(tx)); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTSV(path string, fill func(*csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("pipeline.writeTSV: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pipeline.writeTSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := fill(w); err != nil {
		return fmt.Errorf("pipeline.writeTSV: %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("pipeline.writeTSV: %s: %w", path, err)
	}
	return f.Close()
}
