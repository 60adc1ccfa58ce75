package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chgroeling/formatify"
	"github.com/chgroeling/formatify/internal/config"
	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/logging"
	"github.com/chgroeling/formatify/internal/placeholders"
	"github.com/chgroeling/formatify/internal/prompt"
	"github.com/chgroeling/formatify/internal/source"
	"github.com/chgroeling/formatify/internal/values"
)

// newPrompter builds the prompter for missing values. Tests replace it.
var newPrompter = func(cfg *config.Config) prompt.Prompter {
	return &prompt.FormPrompter{Patterns: cfg.Placeholders.Validate}
}

// session is the state shared by every command invocation.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	formatter *formatify.Formatify
	noTUI     bool
	started   time.Time
}

// newSession loads the config, applies global flag overrides and builds
// the logger and formatter.
func newSession(cmd *cobra.Command) (*session, error) {
	g := currentGlobals()

	cfg, err := config.LoadWithDefaults(g.ConfigPath)
	if err != nil {
		return nil, fmterrors.Wrap(err, "load config")
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, &fmterrors.ConfigError{Err: fmt.Errorf("%w: %v", fmterrors.ErrInvalid, err)}
	}
	logger = logging.EnrichLogger(logger, logging.NewRunID(), cmd.Name())

	return &session{
		cfg:    cfg,
		logger: logger,
		formatter: formatify.New(
			formatify.WithLogger(logger),
			formatify.WithMaxWidth(cfg.Limits.MaxWidth),
		),
		noTUI:   g.NoTUI || !cfg.TUI.Enabled,
		started: time.Now(),
	}, nil
}

// finish logs the outcome of a command and passes err through.
func (rt *session) finish(err error) error {
	if err != nil {
		logging.LogCommandError(rt.logger, err)
		return err
	}
	logging.LogCommandComplete(rt.logger, rt.started)
	return nil
}

// InputOptions are the template and value flags shared by commands.
type InputOptions struct {
	File       string
	ValueFiles []string
	Set        []string
	EnvPrefix  string
	NFC        bool
}

func addTemplateFlags(cmd *cobra.Command, opts *InputOptions) {
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the template from a file (- for stdin)")
}

func addValueFlags(cmd *cobra.Command, opts *InputOptions) {
	cmd.Flags().StringArrayVarP(&opts.ValueFiles, "values", "v", nil, "value file (.yaml, .yml, .toml, .json, .env); repeatable")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "set a value as key=value; repeatable")
	cmd.Flags().StringVar(&opts.EnvPrefix, "env-prefix", "", "import environment variables starting with this prefix")
	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "normalize template and values to Unicode NFC")
}

// loadTemplate resolves the template from args, --file or stdin.
func (rt *session) loadTemplate(cmd *cobra.Command, args []string, opts *InputOptions) (source.Template, error) {
	req := source.Request{
		File:     opts.File,
		Stdin:    cmd.InOrStdin(),
		MaxBytes: rt.cfg.Limits.MaxTemplateBytes,
	}
	if len(args) > 0 {
		req.Arg = args[0]
		req.HasArg = true
	}

	tmpl, err := source.Read(req)
	if err != nil {
		return source.Template{}, err
	}
	if rt.nfc(opts) {
		tmpl.Text = source.NormalizeNFC(tmpl.Text)
	}
	return tmpl, nil
}

// loadValues merges config value files, --values, the environment and --set.
func (rt *session) loadValues(opts *InputOptions) (map[string]string, error) {
	files := make([]string, 0, len(rt.cfg.Render.Values)+len(opts.ValueFiles))
	files = append(files, rt.cfg.Render.Values...)
	for _, f := range opts.ValueFiles {
		files = append(files, config.ExpandHome(f))
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = rt.cfg.Render.EnvPrefix
	}

	m, err := values.Load(values.Sources{
		Files:       files,
		EnvPrefix:   prefix,
		Environ:     os.Environ(),
		Assignments: opts.Set,
	})
	if err != nil {
		return nil, err
	}
	if rt.nfc(opts) {
		m = values.NormalizeNFC(m)
	}
	rt.logger.Debug("values loaded", slog.Any("keys", placeholders.Keys(m)))
	return m, nil
}

func (rt *session) nfc(opts *InputOptions) bool {
	return opts.NFC || rt.cfg.Render.NFC
}
