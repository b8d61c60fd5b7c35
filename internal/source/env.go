package source

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names for source settings. Values already present in
// the process environment win over the .env file.
const (
	EnvDBPath    = "VCADQ_DB_PATH"
	EnvQueryFile = "VCADQ_QUERY_FILE"
	EnvQueryName = "VCADQ_QUERY_NAME"
)

// LoadDotEnv loads a .env file from the given directory into the process
// environment, if one exists. Missing files are fine; a present but
// unreadable file is not.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
