package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the per-user configuration directory for batteryrc,
// creating it if absent. BATTERYRC_HOME overrides the platform default.
func ConfigDir() (string, error) {
	dir := os.Getenv("BATTERYRC_HOME")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("unable to find config path: %w", err)
		}
		dir = filepath.Join(base, AppName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// MustLogDir ensures the directory holding the log file exists.
func MustLogDir(cfg *Config) error {
	if cfg.Paths.LogPath == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Paths.LogPath), 0o755)
}
