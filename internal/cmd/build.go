package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/vcadq/internal/config"
	"github.com/runger/vcadq/internal/export"
)

var (
	buildConfigPath      string
	buildInCSV           string
	buildDB              string
	buildQueryFile       string
	buildQueryName       string
	buildOutDir          string
	buildJoiner          string
	buildIncludeDQC      bool
	buildLabelCategories bool
	buildLongFormat      bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the unified wide table from a raw extract",
	Long: `Build the unified wide table: one row per response, one column per
question, with category-scoped answers merged into single cells.

Input is either a pre-extracted CSV or a SQLite extract database plus a
marker-delimited SQL query file. With --include-dqc every question block
also carries its data-quality flag columns; --long additionally writes the
one-row-per-question audit CSV.

Examples:
  vcadq build --in-csv raw_vca_extract.csv --out-dir ./out
  vcadq build --db extract.db --query-file vca_raw_extract.sql --out-dir ./out \
    --include-dqc --label-categories --long`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Config file path (default: standard location)")
	buildCmd.Flags().StringVar(&buildInCSV, "in-csv", "", "Pre-extracted CSV input")
	buildCmd.Flags().StringVar(&buildDB, "db", "", "SQLite extract database")
	buildCmd.Flags().StringVar(&buildQueryFile, "query-file", "", "Marker-delimited SQL file with the raw extraction query")
	buildCmd.Flags().StringVar(&buildQueryName, "query", "", "Named query to run from the query file")
	buildCmd.Flags().StringVarP(&buildOutDir, "out-dir", "o", "", "Output directory")
	buildCmd.Flags().StringVar(&buildJoiner, "joiner", "", "Joiner for merged per-category values")
	buildCmd.Flags().BoolVar(&buildIncludeDQC, "include-dqc", false, "Append DQC flag columns per question")
	buildCmd.Flags().BoolVar(&buildLabelCategories, "label-categories", false, "Prefix merged values with category codes (HS:, GF:, ...)")
	buildCmd.Flags().BoolVar(&buildLongFormat, "long", false, "Also write the long-format audit CSV")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	res, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	writer := &export.Writer{Dir: cfg.Output.Dir}
	widePath, err := writer.WriteWide(res.Table)
	if err != nil {
		return err
	}
	fmt.Printf("Wide table: %s (%d rows, %d columns)\n", widePath, len(res.Table.Rows), len(res.Table.Header))

	if cfg.Output.LongFormat {
		longPath, err := writer.WriteLong(res.LongRows)
		if err != nil {
			return err
		}
		fmt.Printf("Long table: %s (%d rows)\n", longPath, len(res.LongRows))
	}

	if res.Ledger.Len() > 0 {
		ledgerPath, err := writer.WriteLedger(res.Ledger)
		if err != nil {
			return err
		}
		fmt.Printf("Failure ledger: %s (%d entries)\n", ledgerPath, res.Ledger.Len())
	} else {
		fmt.Println("No failed checks.")
	}
	return nil
}

// buildConfig loads the config file and overlays any flags the user set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	path := buildConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if buildInCSV != "" {
		cfg.Source.CSVPath = buildInCSV
	}
	if buildDB != "" {
		cfg.Source.DBPath = buildDB
	}
	if buildQueryFile != "" {
		cfg.Source.QueryFile = buildQueryFile
	}
	if buildQueryName != "" {
		cfg.Source.QueryName = buildQueryName
	}
	if buildOutDir != "" {
		cfg.Output.Dir = buildOutDir
	}
	if buildJoiner != "" {
		cfg.Output.Joiner = buildJoiner
	}
	if cmd.Flags().Changed("include-dqc") {
		cfg.Output.IncludeDQC = buildIncludeDQC
	}
	if cmd.Flags().Changed("label-categories") {
		cfg.Output.LabelCategories = buildLabelCategories
	}
	if cmd.Flags().Changed("long") {
		cfg.Output.LongFormat = buildLongFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
