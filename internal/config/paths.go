package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the path configuration for vcadq.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/vcadq)
	ConfigDir string

	// DataDir is the directory output artifacts land in (~/.local/share/vcadq)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "vcadq"),
			DataDir:   filepath.Join(localAppData, "vcadq"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "vcadq"),
		DataDir:   filepath.Join(dataHome, "vcadq"),
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the current directory rather than failing outright.
		return "."
	}
	return home
}
