package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"batteryrc/internal/config"
	"batteryrc/internal/power"
	"batteryrc/internal/shellcmd"

	"github.com/sirupsen/logrus"
)

// Job is one command dispatched for a power state.
type Job struct {
	Command   shellcmd.ShellCommand
	State     power.State
	Timestamp time.Time
}

// Runner spawns commands one at a time and waits for each to exit. stdio is
// inherited; output is never captured.
type Runner struct {
	env    map[string]string
	logger *logrus.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func NewRunner(cfg *config.Config, logger *logrus.Logger) *Runner {
	env := map[string]string{}
	if cfg != nil {
		for k, v := range cfg.Hooks.Env {
			env[k] = v
		}
	}
	return &Runner{
		env:    env,
		logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes job.Command. There is no timeout; ctx only matters on
// shutdown.
func (r *Runner) Run(ctx context.Context, job Job) error {
	cmd := job.Command.Cmd(ctx)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = os.Environ()
	for k, v := range r.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Env, fmt.Sprintf("BATTERYRC_STATE=%s", job.State))

	r.logger.Tracef("> %s", job.Command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", job.Command.Name, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with code %d: %w", job.Command.Name, exitErr.ExitCode(), err)
		}
		return fmt.Errorf("wait %s: %w", job.Command.Name, err)
	}
	return nil
}
