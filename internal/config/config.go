// Package config provides configuration management for vcadq.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the vcadq configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
}

// SourceConfig holds raw-data extraction settings.
type SourceConfig struct {
	CSVPath   string `yaml:"csv_path"`   // pre-extracted CSV (takes precedence when set)
	DBPath    string `yaml:"db_path"`    // SQLite extract database
	QueryFile string `yaml:"query_file"` // marker-delimited SQL file
	QueryName string `yaml:"query_name"` // which query in the file to run
}

// OutputConfig holds output shaping settings.
type OutputConfig struct {
	Dir             string `yaml:"dir"`              // output directory
	Joiner          string `yaml:"joiner"`           // merged-cell joiner
	IncludeDQC      bool   `yaml:"include_dqc"`      // append per-question dq flag columns
	LabelCategories bool   `yaml:"label_categories"` // prefix merged values with category codes
	LongFormat      bool   `yaml:"long_format"`      // also write the long audit CSV
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			QueryName: "RAW_EXTRACT",
		},
		Output: OutputConfig{
			Dir:        DefaultPaths().DataDir,
			Joiner:     " | ",
			IncludeDQC: true,
		},
	}
}

// Load reads the configuration from the given path. A missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultPaths().ConfigDir, "config.yaml")
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Source.CSVPath != "" && c.Source.DBPath != "" {
		return fmt.Errorf("source: csv_path and db_path are mutually exclusive")
	}
	if c.Source.DBPath != "" && c.Source.QueryFile == "" {
		return fmt.Errorf("source: db_path requires query_file")
	}
	return nil
}
