// Package root provides the root command for the sbp CLI.
package root

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/statblock-cli/internal/cmd/init"
	"github.com/open-cli-collective/statblock-cli/internal/cmd/printcmd"
	"github.com/open-cli-collective/statblock-cli/internal/cmd/profiles"
	"github.com/open-cli-collective/statblock-cli/internal/version"
)

// NewCmdRoot creates the root command for sbp.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sbp",
		Short: "Format creature statblocks for terminals and receipt printers",
		Long: `sbp formats tabletop creature statblocks exported as JSON.

It renders a compact, word-wrapped statblock for the terminal or sends
it to an ESC/POS receipt printer over the network.

Get started by running: sbp init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(verbose, cmd.ErrOrStderr())
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/sbp/config.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable styled output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "show warnings about unparsed data")

	// Set version template
	cmd.SetVersionTemplate(version.Template())

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(printcmd.NewCmdPrint())
	cmd.AddCommand(profiles.NewCmdProfiles())
	cmd.AddCommand(configcmd.NewCmdConfig())

	return cmd
}

// setupLogging sends WARN lines to w when verbose and discards them otherwise.
func setupLogging(verbose bool, w io.Writer) {
	log.SetFlags(0)
	if !verbose {
		log.SetOutput(io.Discard)
		return
	}
	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
}
