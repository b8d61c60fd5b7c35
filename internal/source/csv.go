package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/runger/vcadq/internal/normalize"
)

// LoadCSV reads raw records from a pre-extracted CSV file. The first row is
// the header; row references start at 2 to account for it.
func LoadCSV(path string) ([]normalize.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged extracts happen; buildRecord tolerates them

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read input CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input CSV %s is empty", path)
	}

	header := rows[0]
	records := make([]normalize.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, buildRecord(header, row, i+2))
	}
	return records, nil
}
