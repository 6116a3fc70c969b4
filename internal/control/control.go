package control

import (
	"batteryrc/internal/config"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/shellcmd"
)

// Flags are the persistent root flags shared by every subcommand.
type Flags struct {
	RCPath       string
	SettingsPath string
}

// loadSettings reads settings.toml and applies the --config override.
func (f *Flags) loadSettings() (*config.Config, error) {
	cfg, err := config.Load(f.SettingsPath)
	if err != nil {
		return nil, err
	}
	if f.RCPath != "" {
		cfg.Paths.RCPath = f.RCPath
	}
	return cfg, nil
}

// Report is the machine-readable form of "batteryrc check".
type Report struct {
	Path      string                  `json:"path" yaml:"path"`
	OnAC      []shellcmd.ShellCommand `json:"on_ac" yaml:"on_ac"`
	OnBattery []shellcmd.ShellCommand `json:"on_battery" yaml:"on_battery"`
	Issues    []Issue                 `json:"issues" yaml:"issues"`
}

type Issue struct {
	Line    int    `json:"line" yaml:"line"`
	Section string `json:"section" yaml:"section"`
	Text    string `json:"text" yaml:"text"`
	Error   string `json:"error" yaml:"error"`
}

func newReport(path string, cfg *rcfile.Config, issues []*rcfile.LineError) Report {
	r := Report{Path: path, OnAC: cfg.OnAC, OnBattery: cfg.OnBattery, Issues: []Issue{}}
	for _, is := range issues {
		r.Issues = append(r.Issues, Issue{
			Line:    is.Line,
			Section: is.Section.String(),
			Text:    is.Text,
			Error:   is.Err.Error(),
		})
	}
	return r
}
