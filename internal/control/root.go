package control

import (
	"fmt"

	"batteryrc/internal/logging"
	"batteryrc/internal/run"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the CLI. With no subcommand it runs the monitor loop.
func NewRootCmd(version string) *cobra.Command {
	flags := &Flags{}
	root := &cobra.Command{
		Use:   "batteryrc",
		Short: "batteryrc — run commands when the machine switches between AC and battery",
		Long: `batteryrc polls the power source once per second. Whenever it changes between AC and
battery, the rc file is re-read and the commands listed under @ac or @battery run in order.`,
		Example: `  batteryrc
  batteryrc check --format yaml
  batteryrc run battery
  batteryrc -c ./my.batteryrc`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				// No configuration means nothing to run; exit cleanly.
				fmt.Fprintf(cmd.ErrOrStderr(), "batteryrc: configuration unavailable: %v\n", err)
				return nil
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			return run.Serve(cmd.Context(), cfg, logger)
		},
	}

	root.Version = version
	root.SetVersionTemplate("batteryrc v{{.Version}}\n")
	root.PersistentFlags().StringVarP(&flags.RCPath, "config", "c", "", "Path to the rc file. Defaults to <config dir>/batteryrc/.batteryrc")
	root.PersistentFlags().StringVar(&flags.SettingsPath, "settings", "", "Path to settings (TOML). Defaults to <config dir>/batteryrc/settings.toml")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(NewCheckCmd(flags))
	root.AddCommand(NewPowerCmd(flags))
	root.AddCommand(NewRunCmd(flags))
	root.AddCommand(NewInitCmd(flags))
	root.AddCommand(NewDoctorCmd(flags))
	root.AddCommand(NewTailLogCmd(flags))

	applyColorHelp(root, flags, version)
	return root
}

func applyColorHelp(root *cobra.Command, flags *Flags, version string) {
	boldBlue := color.New(color.Bold, color.FgBlue).SprintFunc()
	green := color.New(color.FgGreen).SprintfFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cmd.Short)
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprint(out, cmd.UsageString())
			return
		}
		out := cmd.OutOrStdout()
		write := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }
		writeln := func(line string) { _, _ = fmt.Fprintln(out, line) }

		write("%s — power-state command runner %s\n", boldBlue("batteryrc"), dim("(v"+version+")"))
		if cfg, err := flags.loadSettings(); err != nil {
			write("Unable to find path: %v\n\n", err)
		} else {
			write("Looking for config in: %s\n\n", cfg.Paths.RCPath)
		}

		write("%s\n", bold("Usage"))
		writeln("  batteryrc                   run the monitor until killed")
		writeln("  batteryrc [command] [flags]")
		writeln("")

		write("%s\n", bold("rc file format"))
		writeln("  @ac                         commands below run when AC power appears")
		writeln("  @battery                    commands below run when running on battery")
		writeln("  one command per line, shell-style quoting, no pipes or globs")
		writeln("")

		write("%s\n", bold("Flags & env"))
		writeln("  -c, --config <path>     rc file (env BATTERYRC_CONFIG)")
		writeln("  --settings <path>       settings.toml")
		writeln("  Env: BATTERYRC_LOG_LEVEL=debug, BATTERYRC_LOG_FORMAT=json,")
		writeln("       BATTERYRC_POLL_INTERVAL=2s, BATTERYRC_POWER_SOURCE=upower,")
		writeln("       BATTERYRC_METRICS_ADDR=127.0.0.1:9319")
		writeln("")

		write("%s\n", bold("Commands"))
		for _, c := range cmd.Commands() {
			if c.Hidden {
				continue
			}
			write("  %s %s\n", green("%-15s", c.Name()), c.Short)
		}
	})
}
