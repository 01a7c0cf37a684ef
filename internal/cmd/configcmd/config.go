// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/config"
)

// envVars lists every environment variable that overrides the config file.
var envVars = []string{"SBP_WIDTH", "SBP_PROFILE", "SBP_FONT", "SBP_PRINTER", "SBP_DETAILS"}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sbp configuration",
		Long:  `Commands for viewing, testing, and clearing sbp configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}
