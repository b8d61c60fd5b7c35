package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "RAW_EXTRACT", cfg.Source.QueryName)
	assert.Equal(t, " | ", cfg.Output.Joiner)
	assert.True(t, cfg.Output.IncludeDQC)
	assert.NotEmpty(t, cfg.Output.Dir)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  csv_path: /data/extract.csv
output:
  dir: /data/out
  joiner: " / "
  label_categories: true
  long_format: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/extract.csv", cfg.Source.CSVPath)
	assert.Equal(t, "/data/out", cfg.Output.Dir)
	assert.Equal(t, " / ", cfg.Output.Joiner)
	assert.True(t, cfg.Output.LabelCategories)
	assert.True(t, cfg.Output.LongFormat)
	// Unset fields keep their defaults.
	assert.Equal(t, "RAW_EXTRACT", cfg.Source.QueryName)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [not, a, mapping"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Source.CSVPath = "a.csv"
	cfg.Source.DBPath = "b.db"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Source.DBPath = "b.db"
	assert.Error(t, cfg.Validate(), "db input without a query file")

	cfg.Source.QueryFile = "queries.sql"
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	p := DefaultPaths()
	assert.Equal(t, "/tmp/xdg-config/vcadq", p.ConfigDir)
	assert.Equal(t, "/tmp/xdg-data/vcadq", p.DataDir)
}
