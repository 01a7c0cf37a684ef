package configcmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/internal/printer"
	"github.com/open-cli-collective/statblock-cli/internal/view"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with the configured printer",
		Long:  `Check that the configured network printer accepts connections. Nothing is printed.`,
		Example: `  # Test the printer from the config file
  sbp config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.Context(), configPath(cmd), timeout, cmd.OutOrStdout(), noColor)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Connection timeout")

	return cmd
}

func runTest(ctx context.Context, path string, timeout time.Duration, out io.Writer, noColor bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'sbp init' to configure)", err)
	}
	settings, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("invalid config: %w (run 'sbp init' to configure)", err)
	}

	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(out)

	if settings.Printer == "" {
		r.Error("No printer configured")
		r.Note("\nSet one with: sbp init, or SBP_PRINTER=host:port")
		return fmt.Errorf("no printer configured")
	}

	network := printer.NewNetwork(settings.Printer)
	network.SetTimeout(timeout)
	r.RenderText(fmt.Sprintf("Testing connection to %s...", network.Addr()))

	if err := network.Ping(ctx); err != nil {
		r.Error("Connection failed: " + err.Error())
		return err
	}

	r.Success("Printer is reachable")
	r.RenderText(fmt.Sprintf("\nPrinting %d columns with %s font %s", settings.Width, settings.Profile.Name, settings.Font))
	return nil
}
