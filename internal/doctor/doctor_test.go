package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"batteryrc/internal/config"
)

func TestRunReportsCommandsAndLines(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BATTERYRC_HOME", home)
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	sysfs := filepath.Join(home, "sysfs", "AC")
	if err := os.MkdirAll(sysfs, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_ = os.WriteFile(filepath.Join(sysfs, "type"), []byte("Mains\n"), 0o644)
	_ = os.WriteFile(filepath.Join(sysfs, "online"), []byte("1\n"), 0o644)
	cfg.Monitor.Source = "sysfs"
	cfg.Monitor.SysfsRoot = filepath.Dir(sysfs)

	script := filepath.Join(home, "notes.txt")
	_ = os.WriteFile(script, []byte("x"), 0o644)
	rc := "stray\n@ac\n" + script + " arg\nbatteryrc-missing-binary\n@battery\n" + script
	if err := os.WriteFile(cfg.Paths.RCPath, []byte(rc), 0o644); err != nil {
		t.Fatalf("write rc: %v", err)
	}

	results := map[string]Result{}
	for _, r := range Run(context.Background(), cfg) {
		results[r.Name] = r
	}
	if !results["rc file"].Pass {
		t.Fatalf("rc file check failed: %+v", results["rc file"])
	}
	if !results["power"].Pass || results["power"].Detail != "ac via sysfs" {
		t.Fatalf("power check: %+v", results["power"])
	}
	if r, ok := results["line 1"]; !ok || r.Pass {
		t.Fatalf("stray line not reported: %+v", results)
	}
	if r := results[script]; r.Pass || r.Detail == "" {
		t.Fatalf("non-executable file should fail: %+v", r)
	}
	if r, ok := results["batteryrc-missing-binary"]; !ok || r.Pass {
		t.Fatalf("missing binary should fail: %+v", r)
	}
	if len(results) != 5 {
		t.Fatalf("expected deduplicated results, got %d: %+v", len(results), results)
	}
}

func TestRunMissingRCFile(t *testing.T) {
	t.Setenv("BATTERYRC_HOME", t.TempDir())
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.Monitor.Source = "sysfs"
	cfg.Monitor.SysfsRoot = filepath.Join(t.TempDir(), "none")
	results := Run(context.Background(), cfg)
	if len(results) != 2 || results[0].Pass || results[1].Pass {
		t.Fatalf("unexpected results: %+v", results)
	}
}
