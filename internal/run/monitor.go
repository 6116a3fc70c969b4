package run

import (
	"context"
	"fmt"
	"time"

	"batteryrc/internal/hook"
	"batteryrc/internal/power"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/shellcmd"

	"github.com/sirupsen/logrus"
)

// LoadFunc reads the rc file fresh.
type LoadFunc func() (*rcfile.Config, error)

// JobRunner executes one dispatched command.
type JobRunner interface {
	Run(ctx context.Context, job hook.Job) error
}

// Monitor polls a power source and dispatches the matching command list on
// every transition. It is driven from a single goroutine.
type Monitor struct {
	source   power.Source
	load     LoadFunc
	runner   JobRunner
	logger   *logrus.Logger
	interval time.Duration
	metrics  *metrics

	// nil until the first successful query, so the first sample always
	// counts as a transition.
	state *power.State
}

func NewMonitor(source power.Source, load LoadFunc, runner JobRunner, logger *logrus.Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	m := &Monitor{
		source:   source,
		load:     load,
		runner:   runner,
		logger:   logger,
		interval: interval,
		metrics:  &metrics{},
	}
	m.metrics.reset()
	return m
}

// Prime checks that the power source answers and the rc file loads. Either
// failure means the monitor should not start.
func (m *Monitor) Prime(ctx context.Context) error {
	if _, err := m.source.State(ctx); err != nil {
		return fmt.Errorf("query power state: %w", err)
	}
	if _, err := m.load(); err != nil {
		return fmt.Errorf("load initial configuration: %w", err)
	}
	return nil
}

// State returns the last committed power state.
func (m *Monitor) State() (power.State, bool) {
	if m.state == nil {
		return 0, false
	}
	return *m.state, true
}

// Run ticks immediately and then once per interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		m.Tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick samples the power source once and dispatches on a transition. A
// failed query keeps the previous state. A failed reload still commits the
// new state so a broken rc file is reported once per transition.
func (m *Monitor) Tick(ctx context.Context) {
	now, err := m.source.State(ctx)
	if err != nil {
		m.metrics.incPollErrors()
		m.logger.Errorf("failed to retrieve power status: %v", err)
		return
	}
	if m.state != nil && *m.state == now {
		return
	}
	m.state = &now
	m.metrics.incTransitions()
	m.logger.WithField("state", now.String()).Infof("power status changed: on AC = %v", now == power.OnAC)

	cfg, err := m.load()
	if err != nil {
		m.metrics.incLoadErrors()
		m.logger.Errorf("failed to load configuration: %v", err)
		return
	}
	m.Dispatch(ctx, now, hook.SelectCommands(cfg, now))
}

// Dispatch runs cmds strictly in order, reporting failures without
// stopping.
func (m *Monitor) Dispatch(ctx context.Context, state power.State, cmds []shellcmd.ShellCommand) int {
	m.logger.Debugf("running %d saved commands...", len(cmds))
	failed := 0
	for _, c := range cmds {
		if ctx.Err() != nil {
			return failed
		}
		m.metrics.incDispatched()
		job := hook.Job{Command: c, State: state, Timestamp: time.Now()}
		if err := m.runner.Run(ctx, job); err != nil {
			failed++
			m.metrics.incFailed()
			m.logger.WithField("command", c.String()).Errorf("command failed: %v", err)
		}
	}
	return failed
}
