package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"batteryrc/internal/config"
	"batteryrc/internal/power"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/shellcmd"
)

// Result represents a diagnostic check.
type Result struct {
	Name   string
	Pass   bool
	Detail string
}

// Run executes doctor checks.
func Run(ctx context.Context, cfg *config.Config) []Result {
	results := []Result{
		checkFile("rc file", cfg.Paths.RCPath),
		checkPowerSource(ctx, cfg),
	}
	data, err := os.ReadFile(cfg.Paths.RCPath)
	if err != nil {
		return results
	}
	parsed, issues := rcfile.Parse(string(data))
	for _, issue := range issues {
		results = append(results, Result{Name: fmt.Sprintf("line %d", issue.Line), Pass: false, Detail: issue.Err.Error()})
	}
	seen := map[string]bool{}
	for _, c := range append(append([]shellcmd.ShellCommand{}, parsed.OnAC...), parsed.OnBattery...) {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		results = append(results, checkExecutable(c.Name))
	}
	return results
}

func checkFile(label, path string) Result {
	if path == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	if _, err := os.Stat(os.ExpandEnv(path)); err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

func checkPowerSource(ctx context.Context, cfg *config.Config) Result {
	label := "power"
	src, err := power.New(cfg.Monitor.Source, cfg.Monitor.SysfsRoot)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	if c, ok := src.(power.Closer); ok {
		defer c.Close()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	st, err := src.State(ctx)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: fmt.Sprintf("%s via %s", st, cfg.Monitor.Source)}
}

func checkExecutable(name string) Result {
	label := name
	// If contains a path separator, treat as explicit path.
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		info, err := os.Stat(name)
		if err != nil {
			return Result{Name: label, Pass: false, Detail: err.Error()}
		}
		if info.IsDir() {
			return Result{Name: label, Pass: false, Detail: "is a directory"}
		}
		if info.Mode().Perm()&0o111 == 0 {
			return Result{Name: label, Pass: false, Detail: "not executable; chmod +x or choose another command"}
		}
		return Result{Name: label, Pass: true, Detail: name}
	}
	// Else search PATH.
	resolved, err := exec.LookPath(name)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: resolved}
}
