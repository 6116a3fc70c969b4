// Package power samples the host's power source.
package power

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// State is the sampled power source.
type State int

const (
	OnAC State = iota
	OnBattery
)

func (s State) String() string {
	switch s {
	case OnAC:
		return "ac"
	case OnBattery:
		return "battery"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState accepts "ac" or "battery" (case-insensitive, "bat" also allowed).
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ac":
		return OnAC, nil
	case "battery", "bat":
		return OnBattery, nil
	}
	return 0, fmt.Errorf("unknown power state %q (want ac or battery)", s)
}

var (
	ErrNoPowerSupply = errors.New("no power supply found")
	ErrUnsupported   = errors.New("power source not supported on this platform")
)

// Source reports the current power state. Implementations are queried
// read-only once per tick.
type Source interface {
	State(ctx context.Context) (State, error)
}

// Closer is implemented by sources that hold an OS handle.
type Closer interface {
	Close() error
}

// New returns the source named by kind: auto, sysfs, upower or pmset.
// sysfsRoot is only used by the sysfs source; empty means DefaultSysfsRoot.
func New(kind, sysfsRoot string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "auto":
		switch runtime.GOOS {
		case "linux":
			return NewSysfs(sysfsRoot), nil
		case "darwin":
			return NewPmset(), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
	case "sysfs":
		return NewSysfs(sysfsRoot), nil
	case "upower":
		return NewUPower()
	case "pmset":
		return NewPmset(), nil
	}
	return nil, fmt.Errorf("unknown power source %q (want auto, sysfs, upower or pmset)", kind)
}
