package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/vcadq/internal/config"
	"github.com/runger/vcadq/internal/export"
)

var (
	checkConfigPath string
	checkInCSV      string
	checkDB         string
	checkQueryFile  string
	checkQueryName  string
	checkOutDir     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the DQC rules and export the failure ledger",
	Long: `Run every data-quality check against a raw extract and export the
failure ledger: one row per (response, question, failure reason), with the
source row number so a reviewer can jump back to the offending record.

Examples:
  vcadq check --in-csv raw_vca_extract.csv --out-dir ./out
  vcadq check --db extract.db --query-file vca_raw_extract.sql`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Config file path (default: standard location)")
	checkCmd.Flags().StringVar(&checkInCSV, "in-csv", "", "Pre-extracted CSV input")
	checkCmd.Flags().StringVar(&checkDB, "db", "", "SQLite extract database")
	checkCmd.Flags().StringVar(&checkQueryFile, "query-file", "", "Marker-delimited SQL file with the raw extraction query")
	checkCmd.Flags().StringVar(&checkQueryName, "query", "", "Named query to run from the query file")
	checkCmd.Flags().StringVarP(&checkOutDir, "out-dir", "o", "", "Output directory")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := checkConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if checkInCSV != "" {
		cfg.Source.CSVPath = checkInCSV
	}
	if checkDB != "" {
		cfg.Source.DBPath = checkDB
	}
	if checkQueryFile != "" {
		cfg.Source.QueryFile = checkQueryFile
	}
	if checkQueryName != "" {
		cfg.Source.QueryName = checkQueryName
	}
	if checkOutDir != "" {
		cfg.Output.Dir = checkOutDir
	}
	cfg.Output.IncludeDQC = true
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Checked %d records: %d failed checks\n", res.Records, res.Ledger.Len())
	for _, qc := range res.Ledger.Summary() {
		fmt.Printf("  %s: %d\n", qc.QuestionKey, qc.Failures)
	}

	if res.Ledger.Len() == 0 {
		fmt.Println("No failed checks to export.")
		return nil
	}

	writer := &export.Writer{Dir: cfg.Output.Dir}
	ledgerPath, err := writer.WriteLedger(res.Ledger)
	if err != nil {
		return err
	}
	fmt.Printf("Failure ledger: %s\n", ledgerPath)
	return nil
}
