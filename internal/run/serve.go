package run

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"batteryrc/internal/config"
	"batteryrc/internal/hook"
	"batteryrc/internal/power"
	"batteryrc/internal/rcfile"

	"github.com/sirupsen/logrus"
)

// Serve runs the monitor until SIGINT/SIGTERM. Startup failures are logged
// and Serve returns nil without entering the loop.
func Serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	src, err := power.New(cfg.Monitor.Source, cfg.Monitor.SysfsRoot)
	if err != nil {
		logger.Errorf("power source: %v", err)
		return nil
	}
	if c, ok := src.(power.Closer); ok {
		defer c.Close()
	}

	rcPath := cfg.Paths.RCPath
	load := func() (*rcfile.Config, error) {
		return rcfile.Load(rcPath, logger)
	}
	mon := NewMonitor(src, load, hook.NewRunner(cfg, logger), logger, cfg.PollInterval())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mon.Prime(ctx); err != nil {
		logger.Error("failed to load initial configuration!")
		logger.Error(err)
		return nil
	}

	if cfg.Metrics.Enabled {
		go mon.metrics.serve(ctx, cfg.Metrics.Addr, logger)
	}

	logger.WithFields(logrus.Fields{
		"rc":       rcPath,
		"source":   cfg.Monitor.Source,
		"interval": cfg.PollInterval().String(),
		"pid":      os.Getpid(),
	}).Info("batteryrc started")

	err = mon.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}
