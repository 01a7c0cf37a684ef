package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/view"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the sbp configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  sbp config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(configPath(cmd), cmd.OutOrStdout(), noColor)
		},
	}

	return cmd
}

func runClear(path string, out io.Writer, noColor bool) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(out)

	if os.IsNotExist(err) {
		r.Success("No config file to remove")
	} else {
		r.Success("Configuration cleared from " + path)
	}

	var active []string
	for _, v := range envVars {
		if os.Getenv(v) != "" {
			active = append(active, v)
		}
	}
	if len(active) > 0 {
		r.Note("\nNote: Environment variables will still be used: " + strings.Join(active, ", "))
	}

	return nil
}
