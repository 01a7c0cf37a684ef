// Package init provides the init command for sbp.
package init

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/internal/printer"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		profile     string
		printerAddr string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize sbp configuration",
		Long: `Initialize sbp with your receipt printer settings.

This command will guide you through choosing a printer profile, font,
line width and network printer address. The configuration will be saved
to ~/.config/sbp/config.yml.`,
		Example: `  # Interactive setup
  sbp init

  # Pre-populate the printer address
  sbp init --printer 192.168.1.50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(path, profile, printerAddr)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Printer profile (see 'sbp profiles')")
	cmd.Flags().StringVar(&printerAddr, "printer", "", "Network printer address (host or host:port)")

	return cmd
}

// answers holds the wizard's raw input.
type answers struct {
	Profile string
	Font    string
	Width   string
	Printer string
	Details bool
}

func runInit(configPath, prefillProfile, prefillPrinter string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	profiles, err := printer.Profiles()
	if err != nil {
		return err
	}

	a := answers{
		Profile: printer.DefaultProfile,
		Font:    "b",
		Printer: prefillPrinter,
	}
	if prefillProfile != "" {
		a.Profile = prefillProfile
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Printer profile").
				Description("Sets the line width for each font").
				Options(profileOptions(profiles)...).
				Value(&a.Profile),

			huh.NewSelect[string]().
				Title("Font").
				Description("Font B is smaller and fits more columns").
				Options(huh.NewOption("Font A", "a"), huh.NewOption("Font B", "b")).
				Value(&a.Font),

			huh.NewInput().
				Title("Width (optional)").
				Description("Overrides the profile's column count").
				Placeholder("profile default").
				Value(&a.Width).
				Validate(func(s string) error {
					_, err := parseWidth(s)
					return err
				}),

			huh.NewInput().
				Title("Network printer (optional)").
				Description("host or host:port; port 9100 is assumed").
				Placeholder("192.168.1.50").
				Value(&a.Printer),

			huh.NewConfirm().
				Title("Show critical damage and notes by default?").
				Value(&a.Details),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  sbp print <statblock.json>")
	if cfg.Printer != "" {
		fmt.Println("  sbp config test")
	}

	return nil
}

// config converts the answers to a validated configuration.
func (a answers) config() (*config.Config, error) {
	width, err := parseWidth(a.Width)
	if err != nil {
		return nil, err
	}
	cfg := &config.Config{
		Width:   width,
		Profile: a.Profile,
		Font:    a.Font,
		Printer: strings.TrimSpace(a.Printer),
		Details: a.Details,
	}
	if _, err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseWidth accepts an empty string (profile default) or a width of at
// least config.MinWidth.
func parseWidth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("width must be a number")
	}
	if n < config.MinWidth {
		return 0, fmt.Errorf("%w: %d (minimum is %d)", config.ErrInvalidWidth, n, config.MinWidth)
	}
	return n, nil
}

func profileOptions(profiles []printer.Profile) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(profiles))
	for _, p := range profiles {
		label := fmt.Sprintf("%s (%s, %d/%d columns)", p.Name, p.Vendor, p.Columns["a"], p.Columns["b"])
		opts = append(opts, huh.NewOption(label, p.Name))
	}
	return opts
}
