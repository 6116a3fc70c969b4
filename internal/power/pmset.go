package power

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Pmset shells out to macOS pmset.
type Pmset struct {
	Path string
}

func NewPmset() *Pmset {
	return &Pmset{Path: "pmset"}
}

func (p *Pmset) State(ctx context.Context) (State, error) {
	out, err := exec.CommandContext(ctx, p.Path, "-g", "ps").Output()
	if err != nil {
		return 0, fmt.Errorf("pmset -g ps: %w", err)
	}
	return parsePmset(string(out))
}

// parsePmset reads the "Now drawing from '...'" header.
func parsePmset(out string) (State, error) {
	switch {
	case strings.Contains(out, "'AC Power'"):
		return OnAC, nil
	case strings.Contains(out, "'Battery Power'"):
		return OnBattery, nil
	}
	first, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return 0, fmt.Errorf("unrecognised pmset output: %q", first)
}
