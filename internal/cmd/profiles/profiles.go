// Package profiles provides the profiles command.
package profiles

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/printer"
	"github.com/open-cli-collective/statblock-cli/internal/view"
	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
)

type profilesOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdProfiles creates the profiles command.
func NewCmdProfiles() *cobra.Command {
	opts := &profilesOptions{}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List known printer profiles",
		Long:  `List the built-in printer profiles and their line width for each font.`,
		Example: `  # List profiles
  sbp profiles

  # Output as JSON
  sbp profiles -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runProfiles(opts)
		},
	}

	cmd.Flags().StringP("output", "o", "table", "output format: table, json, plain")

	return cmd
}

func runProfiles(opts *profilesOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	profiles, err := printer.Profiles()
	if err != nil {
		return err
	}

	headers := []string{"PROFILE", "VENDOR", "FONT A", "FONT B"}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{p.Name, p.Vendor, columns(p, escpos.FontA), columns(p, escpos.FontB)})
	}

	r := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		r.SetWriter(opts.stdout)
	} else {
		r.SetWriter(os.Stdout)
	}
	r.RenderTable(headers, rows)
	return nil
}

func columns(p printer.Profile, font escpos.Font) string {
	n, err := p.ColumnsFor(font)
	if err != nil {
		return "-"
	}
	return strconv.Itoa(n)
}
