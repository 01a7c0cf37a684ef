// Package printcmd provides the print command.
package printcmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/internal/printer"
	"github.com/open-cli-collective/statblock-cli/internal/statblock"
	"github.com/open-cli-collective/statblock-cli/internal/view"
	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
)

type printOptions struct {
	configPath string
	noColor    bool

	width   int
	details bool
	preview bool
	printer string
	profile string
	font    string

	// flags set on the command line; only these override the config
	changed map[string]bool

	stdout    io.Writer
	transport printer.Transport
}

// NewCmdPrint creates the print command.
func NewCmdPrint() *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:     "print <file.json>",
		Aliases: []string{"render"},
		Short:   "Format a statblock for the terminal or a receipt printer",
		Long: `Format a statblock JSON export.

By default the statblock is written to the terminal at the configured width.
Use --preview to see the ESC/POS bytes that would be sent, or --printer to
send them to a network receipt printer.`,
		Example: `  # Show a statblock in the terminal
  sbp print goblin.json

  # Include critical damage and notes, 32 columns wide
  sbp print goblin.json --details --width 32

  # Hex dump of the printer bytes
  sbp print goblin.json --preview

  # Print on a network printer
  sbp print goblin.json --printer 192.168.1.50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.changed = map[string]bool{}
			for _, name := range []string{"width", "details", "printer", "profile", "font"} {
				opts.changed[name] = cmd.Flags().Changed(name)
			}
			opts.stdout = cmd.OutOrStdout()
			return runPrint(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Line width in characters (default: from printer profile)")
	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "Include critical damage and notes")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Hex dump the ESC/POS bytes instead of printing")
	cmd.Flags().StringVarP(&opts.printer, "printer", "p", "", "Send to a network printer (host or host:port)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Printer profile (see 'sbp profiles')")
	cmd.Flags().StringVar(&opts.font, "font", "", "Printer font: a or b")

	return cmd
}

// settings merges the config file, environment and command-line flags.
func (o *printOptions) settings() (config.Settings, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return config.Settings{}, err
	}

	if o.changed["width"] {
		cfg.Width = o.width
	}
	if o.changed["details"] {
		cfg.Details = o.details
	}
	if o.changed["printer"] {
		cfg.Printer = o.printer
	}
	if o.changed["profile"] {
		cfg.Profile = o.profile
	}
	if o.changed["font"] {
		cfg.Font = o.font
	}

	return cfg.Resolve()
}

func runPrint(ctx context.Context, path string, opts *printOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	settings, err := opts.settings()
	if err != nil {
		return err
	}

	doc, err := statblock.Load(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	formatErr := statblock.NewFormatter(settings, &buf).Format(doc)

	// a configured printer receives the statblock unless previewing
	toPrinter := opts.preview || settings.Printer != ""
	if !toPrinter {
		out := buf.String()
		if opts.noColor {
			out = ansi.Strip(out)
		}
		if _, err := io.WriteString(opts.stdout, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return formatErr
	}

	// a partial statblock is not worth paper
	if formatErr != nil {
		return formatErr
	}

	cmds, err := escpos.TranslateString(buf.String())
	if err != nil {
		return err
	}
	data, err := escpos.Encode(cmds, escpos.EncodeOptions{Font: settings.Font})
	if err != nil {
		return err
	}

	transport := opts.transport
	if transport == nil {
		if opts.preview {
			transport = printer.NewDump(opts.stdout)
		} else {
			transport = printer.NewNetwork(settings.Printer)
		}
	}
	if opts.preview {
		data = append(data, escpos.Cut()...)
	}

	if err := transport.Send(ctx, data); err != nil {
		return err
	}

	if !opts.preview {
		r := view.NewRenderer(view.FormatTable, opts.noColor)
		r.SetWriter(opts.stdout)
		r.Success(fmt.Sprintf("Sent to printer %s", settings.Printer))
	}
	return nil
}
