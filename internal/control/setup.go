package control

import (
	"fmt"
	"os"
	"path/filepath"

	"batteryrc/internal/rcfile"

	"github.com/spf13/cobra"
)

// NewInitCmd writes a sample rc file if none exists.
func NewInitCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a sample rc file if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadSettings()
			if err != nil {
				return err
			}
			path := cfg.Paths.RCPath
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			created, err := rcfile.WriteTemplate(path)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "rc file already present at", path)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote sample rc file to", path)
			return nil
		},
	}
}
