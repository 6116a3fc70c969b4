package hook

import (
	"batteryrc/internal/power"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/shellcmd"
)

// SelectCommands returns the list configured for state.
func SelectCommands(cfg *rcfile.Config, state power.State) []shellcmd.ShellCommand {
	if cfg == nil {
		return nil
	}
	if state == power.OnBattery {
		return cfg.OnBattery
	}
	return cfg.OnAC
}
