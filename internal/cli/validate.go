package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizdoc/internal/config"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate .quizdoc/config.yml",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(a.configFlag)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config OK")
			return nil
		},
	}
}
