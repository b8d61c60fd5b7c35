package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runger/vcadq/internal/category"
	"github.com/runger/vcadq/internal/config"
	"github.com/runger/vcadq/internal/dqc"
	"github.com/runger/vcadq/internal/ledger"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/pivot"
	"github.com/runger/vcadq/internal/schema"
	"github.com/runger/vcadq/internal/source"
)

// runResult carries the materialized artifacts of one batch run. Everything
// is built in memory before any file is written, so a fatal error yields no
// partial artifacts.
type runResult struct {
	Table    pivot.Table
	LongRows [][]string
	Ledger   *ledger.Ledger
	Records  int
}

// runPipeline executes the full batch: load, normalize, resolve, validate,
// pivot. Each response is independent; the loop is single-threaded because
// survey batches are small.
func runPipeline(cfg *config.Config) (*runResult, error) {
	reg, err := schema.Default()
	if err != nil {
		// Broken catalogue means engine misconfiguration; abort outright.
		return nil, err
	}

	records, err := loadRecords(cfg)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %d records\n", len(records))

	engine := dqc.NewEngine(reg)
	pivoter := pivot.New(reg, pivot.Options{
		Joiner:          cfg.Output.Joiner,
		LabelCategories: cfg.Output.LabelCategories,
		IncludeDQC:      cfg.Output.IncludeDQC,
	})
	led := ledger.New(reg)

	var (
		rows     []pivot.Row
		longRows [][]string
	)
	for _, rec := range records {
		ans := normalize.Normalize(reg, rec)
		sel := category.Resolve(ans)
		res := engine.Validate(ans, sel)

		row, err := pivoter.Pivot(ans, res)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		led.Add(ans, res)
		if cfg.Output.LongFormat {
			longRows = append(longRows, pivoter.Long(ans, res)...)
		}
	}

	return &runResult{
		Table:    pivoter.Assemble(rows),
		LongRows: longRows,
		Ledger:   led,
		Records:  len(records),
	}, nil
}

// loadRecords pulls raw records from the configured source. Source settings
// left empty in the config fall back to the environment (which a sibling
// .env file may have populated).
func loadRecords(cfg *config.Config) ([]normalize.RawRecord, error) {
	cwd, err := os.Getwd()
	if err == nil {
		if err := source.LoadDotEnv(cwd); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	src := cfg.Source
	if src.CSVPath == "" && src.DBPath == "" {
		src.DBPath = os.Getenv(source.EnvDBPath)
	}
	if src.QueryFile == "" {
		src.QueryFile = os.Getenv(source.EnvQueryFile)
	}
	if name := os.Getenv(source.EnvQueryName); src.QueryName == "" && name != "" {
		src.QueryName = name
	}

	if src.CSVPath != "" {
		return source.LoadCSV(src.CSVPath)
	}
	if src.DBPath == "" {
		return nil, fmt.Errorf("no input: set --in-csv or --db (or csv_path/db_path in config)")
	}
	if src.QueryFile == "" {
		return nil, fmt.Errorf("database input requires a query file (--query-file)")
	}

	query, err := source.LoadQuery(src.QueryFile, src.QueryName)
	if err != nil {
		return nil, err
	}

	db, err := source.OpenSQLite(src.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return db.Extract(ctx, query)
}
