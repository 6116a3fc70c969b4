// Package rcfile reads the line-oriented command file that maps power
// states to command lists.
//
//	@ac
//	notify-send "on mains"
//	@battery
//	powerprofilesctl set power-saver
//
// Markers are case-insensitive and must sit on their own line. Blank lines
// and lines starting with # are ignored. A line that fails to parse is
// reported and dropped; the rest of the file still loads.
package rcfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"batteryrc/internal/shellcmd"

	"github.com/sirupsen/logrus"
)

const (
	MarkerAC      = "@ac"
	MarkerBattery = "@battery"
)

// ErrNoSection is reported for a command that appears before any marker.
var ErrNoSection = errors.New("command specified before any section marker")

// Section is the parse mode for subsequent command lines.
type Section int

const (
	NoSection Section = iota
	ACSection
	BatterySection
)

func (s Section) String() string {
	switch s {
	case ACSection:
		return "ac"
	case BatterySection:
		return "battery"
	default:
		return "none"
	}
}

// Config holds the two command lists in file order. It is rebuilt on every
// load and never mutated afterwards.
type Config struct {
	OnAC      []shellcmd.ShellCommand `json:"on_ac" yaml:"on_ac"`
	OnBattery []shellcmd.ShellCommand `json:"on_battery" yaml:"on_battery"`
}

// LineError describes one dropped line.
type LineError struct {
	Line    int
	Text    string
	Section Section
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s section): %v: %q", e.Line, e.Section, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Parse never fails as a whole. Lines that cannot be used are returned as
// LineErrors alongside the partial Config.
func Parse(text string) (*Config, []*LineError) {
	cfg := &Config{
		OnAC:      []shellcmd.ShellCommand{},
		OnBattery: []shellcmd.ShellCommand{},
	}
	var issues []*LineError
	mode := NoSection

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch strings.ToLower(line) {
		case MarkerAC:
			mode = ACSection
			continue
		case MarkerBattery:
			mode = BatterySection
			continue
		}

		if mode == NoSection {
			issues = append(issues, &LineError{Line: i + 1, Text: line, Section: mode, Err: ErrNoSection})
			continue
		}
		cmd, err := shellcmd.Tokenize(line)
		if err != nil {
			issues = append(issues, &LineError{Line: i + 1, Text: line, Section: mode, Err: err})
			continue
		}
		if mode == ACSection {
			cfg.OnAC = append(cfg.OnAC, cmd)
		} else {
			cfg.OnBattery = append(cfg.OnBattery, cmd)
		}
	}
	return cfg, issues
}

// Load reads path and parses it. Dropped lines are logged at error level;
// only a read failure is returned.
func Load(path string, logger logrus.FieldLogger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rc file %s: %w", path, err)
	}
	cfg, issues := Parse(string(data))
	for _, issue := range issues {
		logger.WithFields(logrus.Fields{
			"file":    path,
			"line":    issue.Line,
			"section": issue.Section.String(),
		}).Errorf("skipping command: %v", issue.Err)
	}
	return cfg, nil
}

// Template is written by "batteryrc init".
const Template = `# batteryrc: commands to run when the power source changes.
# Each command runs in order, without a shell. Quote arguments with spaces.

@ac
notify-send "batteryrc" "Running on AC power"

@battery
notify-send "batteryrc" "Running on battery"
`

// WriteTemplate creates path with Template unless it already exists.
func WriteTemplate(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.WriteString(Template); err != nil {
		_ = f.Close()
		return false, err
	}
	return true, f.Close()
}
