package configcmd

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective sbp configuration and where each value comes from.`,
		Example: `  # Show current config
  sbp config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(configPath(cmd), cmd.OutOrStdout(), noColor)
		},
	}

	return cmd
}

func runShow(path string, out io.Writer, noColor bool) error {
	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}

	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(out)

	source := func(envVar, value, fileValue string) string {
		if v, ok := os.LookupEnv(envVar); ok && v != "" {
			return envVar
		}
		if fileErr == nil && fileValue == value {
			return "config"
		}
		return ""
	}
	field := func(label, envVar, value, fileValue string) {
		r.RenderField(label, value, source(envVar, value, fileValue))
	}

	field("Width", "SBP_WIDTH", itoa(cfg.Width), itoa(fileCfg.Width))
	field("Profile", "SBP_PROFILE", cfg.Profile, fileCfg.Profile)
	field("Font", "SBP_FONT", cfg.Font, fileCfg.Font)
	field("Printer", "SBP_PRINTER", cfg.Printer, fileCfg.Printer)
	field("Details", "SBP_DETAILS", strconv.FormatBool(cfg.Details), strconv.FormatBool(fileCfg.Details))

	if settings, err := cfg.Resolve(); err != nil {
		r.Error(err.Error())
	} else {
		r.RenderField("Columns", strconv.Itoa(settings.Width), settings.Profile.Name+" font "+settings.Font.String())
	}

	r.RenderText("")
	r.Note("Config file: " + path)
	if fileErr != nil {
		r.Note("(file not found)")
	}

	return nil
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
