package power

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultSysfsRoot = "/sys/class/power_supply"

// Sysfs reads Linux power_supply class entries.
type Sysfs struct {
	Root string
}

func NewSysfs(root string) *Sysfs {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &Sysfs{Root: root}
}

// State prefers external adapters (Mains/USB) and their online flag. When no
// adapter is exposed it falls back to battery status.
func (s *Sysfs) State(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.Root, err)
	}
	var adapters, online, batteries, discharging int
	for _, e := range entries {
		dir := filepath.Join(s.Root, e.Name())
		typ, err := readAttr(dir, "type")
		if err != nil {
			continue
		}
		switch typ {
		case "Mains", "USB", "USB_C", "USB_PD":
			v, err := readAttr(dir, "online")
			if err != nil {
				continue
			}
			adapters++
			if v == "1" {
				online++
			}
		case "Battery":
			batteries++
			if st, err := readAttr(dir, "status"); err == nil && st == "Discharging" {
				discharging++
			}
		}
	}
	switch {
	case online > 0:
		return OnAC, nil
	case adapters > 0:
		return OnBattery, nil
	case discharging > 0:
		return OnBattery, nil
	case batteries > 0:
		return OnAC, nil
	}
	return 0, fmt.Errorf("%w under %s", ErrNoPowerSupply, s.Root)
}

func readAttr(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
