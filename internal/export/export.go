// Package export writes the pipeline's artifacts as timestamped CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/runger/vcadq/internal/ledger"
	"github.com/runger/vcadq/internal/pivot"
)

// timestampLayout names output files so repeated runs never clobber each
// other.
const timestampLayout = "20060102_150405"

// ledgerHeader is the failure ledger column order.
var ledgerHeader = []string{
	"run_id", "response_id", "row_number", "question", "question_text",
	"category", "current_value", "error_reason", "valid_options",
}

// Writer writes artifacts into one output directory.
type Writer struct {
	Dir string
	// Now supplies the timestamp for file names; defaults to time.Now.
	// Swappable so tests get stable names.
	Now func() time.Time
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Writer) path(prefix string) string {
	name := fmt.Sprintf("%s_%s.csv", prefix, w.now().Format(timestampLayout))
	return filepath.Join(w.Dir, name)
}

// WriteWide writes the wide table and returns the written path.
func (w *Writer) WriteWide(t pivot.Table) (string, error) {
	return w.writeCSV(w.path("vca_wide"), t.Header, t.Rows)
}

// WriteLong writes long-format audit rows and returns the written path.
func (w *Writer) WriteLong(rows [][]string) (string, error) {
	return w.writeCSV(w.path("vca_long"), pivot.LongHeader, rows)
}

// WriteLedger writes the failure ledger and returns the written path.
func (w *Writer) WriteLedger(l *ledger.Ledger) (string, error) {
	rows := make([][]string, 0, l.Len())
	for _, e := range l.Entries() {
		rows = append(rows, []string{
			e.RunID, e.ResponseID, strconv.Itoa(e.RowRef), e.QuestionKey,
			e.QuestionText, e.Category, e.Value, e.Reason, e.ValidOptions,
		})
	}
	return w.writeCSV(w.path("failed_dqc_checks"), ledgerHeader, rows)
}

func (w *Writer) writeCSV(path string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, nil
}
