package power

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSupply(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for k, v := range attrs {
		if err := os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", k, err)
		}
	}
}

func TestSysfsMainsOnline(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "status": "Charging"})

	st, err := NewSysfs(root).State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st != OnAC {
		t.Fatalf("expected ac, got %s", st)
	}
}

func TestSysfsMainsOffline(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "0"})
	writeSupply(t, root, "ucsi-source-psy-USBC000:001", map[string]string{"type": "USB", "online": "0"})

	st, err := NewSysfs(root).State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st != OnBattery {
		t.Fatalf("expected battery, got %s", st)
	}
}

func TestSysfsFallsBackToBatteryStatus(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "status": "Discharging"})

	st, err := NewSysfs(root).State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st != OnBattery {
		t.Fatalf("expected battery, got %s", st)
	}

	writeSupply(t, root, "BAT0", map[string]string{"status": "Full"})
	st, err = NewSysfs(root).State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st != OnAC {
		t.Fatalf("expected ac for full battery, got %s", st)
	}
}

func TestSysfsNothingFound(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "hidpp_battery_0", map[string]string{"scope": "Device"})
	if _, err := NewSysfs(root).State(context.Background()); !errors.Is(err, ErrNoPowerSupply) {
		t.Fatalf("expected ErrNoPowerSupply, got %v", err)
	}
	if _, err := NewSysfs(filepath.Join(root, "missing")).State(context.Background()); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestParsePmset(t *testing.T) {
	ac := "Now drawing from 'AC Power'\n -InternalBattery-0 (id=1234)\t100%; charged; 0:00 remaining present: true\n"
	bat := "Now drawing from 'Battery Power'\n -InternalBattery-0 (id=1234)\t87%; discharging; 5:12 remaining present: true\n"
	if st, err := parsePmset(ac); err != nil || st != OnAC {
		t.Fatalf("ac: got %s, %v", st, err)
	}
	if st, err := parsePmset(bat); err != nil || st != OnBattery {
		t.Fatalf("battery: got %s, %v", st, err)
	}
	if _, err := parsePmset("garbage"); err == nil {
		t.Fatalf("expected error for garbage")
	}
}

func TestParseState(t *testing.T) {
	cases := map[string]State{"ac": OnAC, "AC": OnAC, "battery": OnBattery, " Bat ": OnBattery}
	for in, want := range cases {
		got, err := ParseState(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %s, %v", in, got, err)
		}
	}
	if _, err := ParseState("solar"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New("nuclear", ""); err == nil {
		t.Fatalf("expected error")
	}
	src, err := New("sysfs", "/tmp/x")
	if err != nil {
		t.Fatalf("sysfs: %v", err)
	}
	if s, ok := src.(*Sysfs); !ok || s.Root != "/tmp/x" {
		t.Fatalf("unexpected source %#v", src)
	}
}
