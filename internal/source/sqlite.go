package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/runger/vcadq/internal/normalize"
)

// SQLiteSource reads raw records straight from a SQLite extract database.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens the extract database read-only-ish: a single connection
// with a busy timeout, matching how the rest of the toolchain opens SQLite.
func OpenSQLite(dbPath string) (*SQLiteSource, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract database: %w", err)
	}

	// SQLite handles concurrency better with a single writer; we only read.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to extract database: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Extract runs the raw extraction query and builds one record per returned
// row. Column names act as the header; a "responses" column is parsed as the
// nested JSON answer object.
func (s *SQLiteSource) Extract(ctx context.Context, query string) ([]normalize.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("extraction query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var records []normalize.RawRecord
	rowRef := 2 // header occupies row 1 in the reviewer's spreadsheet view
	for rows.Next() {
		holders := make([]any, len(cols))
		values := make([]sql.NullString, len(cols))
		for i := range holders {
			holders[i] = &values[i]
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, fmt.Errorf("failed to scan extract row: %w", err)
		}

		strs := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				strs[i] = v.String
			}
		}
		records = append(records, buildRecord(cols, strs, rowRef))
		rowRef++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("extraction scan failed: %w", err)
	}
	return records, nil
}
