package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"quizdoc/internal/config"
)

func initCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold .quizdoc/config.yml",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := a.configFlag
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("init failed: %w", err)
				}
				target = config.ConfigPath(wd)
			}
			abs, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			if err := config.Scaffold(abs); err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
			return nil
		},
	}
}
