package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	AppName              = "batteryrc"
	RCFileName           = ".batteryrc"
	SettingsFileName     = "settings.toml"
	defaultPollInterval  = 1000
	defaultMetricsAddr   = "127.0.0.1:9319"
	defaultPowerSource   = "auto"
	defaultLogFileName   = "batteryrc.log"
	defaultLogsDirectory = "logs"
)

// Config holds application settings loaded from TOML. The command lists
// themselves live in the rc file at Paths.RCPath.
type Config struct {
	Monitor struct {
		PollIntervalMS int    `toml:"poll_interval_ms"`
		Source         string `toml:"source"` // auto, sysfs, upower, pmset
		SysfsRoot      string `toml:"sysfs_root"`
	} `toml:"monitor"`

	Hooks struct {
		Env map[string]string `toml:"env"`
	} `toml:"hooks"`

	Logging struct {
		Level  string `toml:"level"`  // trace, debug, info, warn, error
		Format string `toml:"format"` // text, json
		Stdout bool   `toml:"stdout"`
		File   bool   `toml:"file"`
	} `toml:"logging"`

	Paths struct {
		RCPath       string `toml:"rc_path"`
		LogPath      string `toml:"log_path"`
		ConfigDir    string `toml:"-"`
		SettingsPath string `toml:"-"`
	} `toml:"paths"`

	Metrics struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"metrics"`
}

// Default returns Config populated with defaults. It resolves (and creates)
// the configuration directory, so it fails when no such directory exists.
func Default() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	cfg.Monitor.PollIntervalMS = defaultPollInterval
	cfg.Monitor.Source = defaultPowerSource

	cfg.Hooks.Env = map[string]string{}

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Logging.Stdout = true
	cfg.Logging.File = true

	cfg.Paths.ConfigDir = dir
	cfg.Paths.RCPath = filepath.Join(dir, RCFileName)
	cfg.Paths.LogPath = filepath.Join(dir, defaultLogsDirectory, defaultLogFileName)
	cfg.Paths.SettingsPath = filepath.Join(dir, SettingsFileName)

	cfg.Metrics.Enabled = false
	cfg.Metrics.Addr = defaultMetricsAddr

	return cfg, nil
}

// Load loads settings from path, applying defaults. An empty path means
// settings.toml in the config directory; a missing file is written out
// with defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = cfg.Paths.SettingsPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	cfg.Paths.SettingsPath = path
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// PollInterval is the tick length, never shorter than 100ms.
func (c *Config) PollInterval() time.Duration {
	d := time.Duration(c.Monitor.PollIntervalMS) * time.Millisecond
	if d < 100*time.Millisecond {
		return time.Second
	}
	return d
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BATTERYRC_CONFIG"); v != "" {
		cfg.Paths.RCPath = v
	}
	if v := os.Getenv("BATTERYRC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BATTERYRC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("BATTERYRC_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.PollIntervalMS = int(d / time.Millisecond)
		}
	}
	if v := os.Getenv("BATTERYRC_POWER_SOURCE"); v != "" {
		cfg.Monitor.Source = strings.ToLower(v)
	}
	if v := os.Getenv("BATTERYRC_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
}
