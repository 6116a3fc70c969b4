package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"batteryrc/internal/config"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure sets up logrus with rotation. A log directory that cannot be
// created only disables the file sink.
func Configure(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: !tty || !cfg.Logging.Stdout,
		})
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Logging.Level)); err == nil {
		logger.SetLevel(lvl)
	}

	var writers []io.Writer
	if cfg.Logging.Stdout {
		writers = append(writers, os.Stdout)
	}
	if cfg.Logging.File && cfg.Paths.LogPath != "" {
		if err := config.MustLogDir(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "batteryrc: file logging disabled: %v\n", err)
		} else {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Paths.LogPath,
				MaxSize:    20, // megabytes
				MaxBackups: 3,
				MaxAge:     30,
				Compress:   false,
			})
		}
	}
	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger, nil
}

// NewTestLogger returns a logger that discards output.
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}
