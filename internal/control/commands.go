package control

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"batteryrc/internal/doctor"
	"batteryrc/internal/hook"
	"batteryrc/internal/logging"
	"batteryrc/internal/power"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/run"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewCheckCmd parses the rc file and prints what would run.
func NewCheckCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse the rc file and show both command lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(cfg.Paths.RCPath)
			if err != nil {
				return fmt.Errorf("read rc file: %w", err)
			}
			parsed, issues := rcfile.Parse(string(data))
			report := newReport(cfg.Paths.RCPath, parsed, issues)

			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				if err := enc.Close(); err != nil {
					return err
				}
			case "", "text":
				printReport(cmd, report)
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d line(s) skipped", len(issues))
			}
			return nil
		},
	}
	cmd.Flags().String("format", "text", "output format: text, json or yaml")
	return cmd
}

func printReport(cmd *cobra.Command, r Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rc file: %s\n", r.Path)
	fmt.Fprintf(out, "%s (%d)\n", rcfile.MarkerAC, len(r.OnAC))
	for _, c := range r.OnAC {
		fmt.Fprintf(out, "  %s\n", c)
	}
	fmt.Fprintf(out, "%s (%d)\n", rcfile.MarkerBattery, len(r.OnBattery))
	for _, c := range r.OnBattery {
		fmt.Fprintf(out, "  %s\n", c)
	}
	for _, is := range r.Issues {
		fmt.Fprintf(out, "skipped line %d (%s): %s: %q\n", is.Line, is.Section, is.Error, is.Text)
	}
}

// NewPowerCmd prints the current power state.
func NewPowerCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "power",
		Short: "Print the current power source (ac or battery)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			src, err := power.New(cfg.Monitor.Source, cfg.Monitor.SysfsRoot)
			if err != nil {
				return err
			}
			if c, ok := src.(power.Closer); ok {
				defer c.Close()
			}
			st, err := src.State(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

// NewRunCmd dispatches one list immediately, as a transition would.
func NewRunCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:       "run ac|battery",
		Short:     "Run the commands for a power state now",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ac", "battery"},
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := power.ParseState(args[0])
			if err != nil {
				return err
			}
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			rc, err := rcfile.Load(cfg.Paths.RCPath, logger)
			if err != nil {
				return err
			}
			runner := hook.NewRunner(cfg, logger)
			runner.Stdout = cmd.OutOrStdout()
			runner.Stderr = cmd.ErrOrStderr()
			mon := run.NewMonitor(nil, nil, runner, logger, cfg.PollInterval())
			if failed := mon.Dispatch(cmd.Context(), state, hook.SelectCommands(rc, state)); failed > 0 {
				return fmt.Errorf("%d command(s) failed", failed)
			}
			return nil
		},
	}
}

// NewDoctorCmd runs environment checks.
func NewDoctorCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the rc file, power source and command paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			ok := color.New(color.FgGreen).SprintFunc()
			bad := color.New(color.FgRed).SprintFunc()
			failed := 0
			for _, r := range doctor.Run(cmd.Context(), cfg) {
				status := ok("ok  ")
				if !r.Pass {
					status = bad("fail")
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s %s\n", r.Name, status, r.Detail)
			}
			if failed != 0 {
				return fmt.Errorf("doctor found %d issue(s)", failed)
			}
			return nil
		},
	}
}

// NewTailLogCmd tails the main log file (simple last N lines).
func NewTailLogCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail-log",
		Short: "Show the last log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("lines")
			return tailFile(cmd, cfg.Paths.LogPath, n)
		},
	}
	cmd.Flags().IntP("lines", "n", 50, "number of lines to show")
	return cmd
}

func tailFile(cmd *cobra.Command, path string, n int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
	return nil
}
