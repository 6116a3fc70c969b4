package main

import (
	"fmt"
	"os"

	"batteryrc/internal/config"
	"batteryrc/internal/rcfile"
	"batteryrc/internal/shellcmd"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	fmt.Printf("settings=%s rc=%s log=%s\n", cfg.Paths.SettingsPath, cfg.Paths.RCPath, cfg.Paths.LogPath)
	fmt.Printf("source=%s interval=%s metrics=%v(%s)\n", cfg.Monitor.Source, cfg.PollInterval(), cfg.Metrics.Enabled, cfg.Metrics.Addr)

	rc, issues, err := parseFile(cfg.Paths.RCPath)
	if err != nil {
		fmt.Printf("rc: %v\n", err)
		return
	}
	for _, is := range issues {
		fmt.Printf("skip %v\n", is)
	}
	dump("ac", rc.OnAC)
	dump("battery", rc.OnBattery)
}

func parseFile(path string) (*rcfile.Config, []*rcfile.LineError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	rc, issues := rcfile.Parse(string(data))
	return rc, issues, nil
}

func dump(label string, cmds []shellcmd.ShellCommand) {
	for i, c := range cmds {
		fmt.Printf("%s %d name=%s args=%q\n", label, i, c.Name, c.Args)
	}
}
