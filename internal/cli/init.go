package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chgroeling/formatify/internal/config"
	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	Force bool

	// Scriptable/flag options for --no-tui mode
	LogLevel     string
	OutputFormat string
	Strict       bool
	ValueFiles   []string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a formatify configuration file",
		Long: `Write a configuration file with default settings.

The file goes to --config when given, else to
~/.config/formatify/config.toml. An existing file is kept unless --force
is given.

Without --no-tui a short form asks for the most common settings.
Use --no-tui with flags for scripted setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&opts.LogLevel, "set-log-level", "", "log level to store: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.OutputFormat, "set-output-format", "", "output format to store: table, json, plain")
	cmd.Flags().BoolVar(&opts.Strict, "set-strict", false, "store render.strict = true")
	cmd.Flags().StringArrayVar(&opts.ValueFiles, "set-values", nil, "value file to store in render.values; repeatable")

	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	configPath, err := initConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return &fmterrors.ConfigError{Path: configPath, Err: fmt.Errorf("%w: file exists; use --force to overwrite", fmterrors.ErrInvalid)}
	}

	cfg := config.DefaultConfig()
	if IsNoTUI() {
		applyInitFlags(cfg, opts)
	} else if err := runInitForm(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return &fmterrors.ConfigError{Path: configPath, Err: fmt.Errorf("%w: %v", fmterrors.ErrInvalid, err)}
	}
	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	printInitSummary(cmd.OutOrStdout(), configPath, cfg)
	return nil
}

// initConfigPath returns the --config path or the default location.
func initConfigPath() (string, error) {
	if p := currentGlobals().ConfigPath; p != "" {
		return config.ExpandHome(p), nil
	}
	return config.DefaultConfigPath()
}

// applyInitFlags sets config values from flags in non-interactive mode.
func applyInitFlags(cfg *config.Config, opts *InitOptions) {
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.OutputFormat != "" {
		cfg.Output.Format = opts.OutputFormat
	}
	if opts.Strict {
		cfg.Render.Strict = true
	}
	if len(opts.ValueFiles) > 0 {
		cfg.Render.Values = opts.ValueFiles
	}
}

// runInitForm asks for the common settings.
func runInitForm(cfg *config.Config) error {
	var valueFile string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Default format of the measure and keys commands").
				Options(
					huh.NewOption("Table", "table"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("Plain", "plain"),
				).
				Value(&cfg.Output.Format),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Warnings and errors", "warn"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Debug (shows skipped placeholders)", "debug"),
					huh.NewOption("Errors only", "error"),
				).
				Value(&cfg.Log.Level),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Strict rendering?").
				Description("Fail when a placeholder has no value instead of keeping it").
				Value(&cfg.Render.Strict),
			huh.NewInput().
				Title("Default value file").
				Description("Loaded by every command; leave empty for none").
				Placeholder("~/.config/formatify/values.yaml").
				Value(&valueFile),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmterrors.ErrCanceled
		}
		return fmterrors.Wrap(err, "config form")
	}

	if valueFile != "" {
		cfg.Render.Values = []string{valueFile}
	}
	return nil
}

func printInitSummary(w io.Writer, configPath string, cfg *config.Config) {
	fmt.Fprintln(w, okStyle.Render("✓ Configuration written successfully!"))
	fmt.Fprintf(w, "  Config: %s\n", configPath)
	fmt.Fprintf(w, "  Output: %s\n", cfg.Output.Format)
	fmt.Fprintf(w, "  Log:    %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  Strict: %t\n", cfg.Render.Strict)
}
