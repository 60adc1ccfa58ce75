// Package cli provides Cobra command definitions for formatify.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/logging"
	"github.com/chgroeling/formatify/internal/placeholders"
	"github.com/chgroeling/formatify/internal/source"
	"github.com/chgroeling/formatify/internal/values"
)

// RenderOptions contains the options for the render command.
type RenderOptions struct {
	InputOptions
	Strict      bool
	Interactive bool
	NoNewline   bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Replace placeholders in a template",
		Long: `Render a template by replacing its placeholders with values.

The template is taken from the argument, from --file, or from stdin.
Values come from config value files, --values files, environment
variables selected by --env-prefix, and --set assignments, in that order;
later sources win.

Placeholders whose key has no value are kept as written unless --strict
is given, which fails instead. --interactive asks for missing values.

Examples:
  formatify render 'Hello, %(name)!' --set name=Alice
  formatify render -f commit.tmpl -v values.yaml
  echo '%<(10,trunc)%(title)|' | formatify render --set title='A long title'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	addValueFlags(cmd, &opts.InputOptions)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when a referenced key has no value or fails validation")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "prompt for missing values")
	cmd.Flags().BoolVarP(&opts.NoNewline, "no-newline", "n", false, "do not print a trailing newline")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.render(cmd, args, opts))
}

func (rt *session) render(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	tmpl, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
	if err != nil {
		return err
	}
	vals, err := rt.loadValues(&opts.InputOptions)
	if err != nil {
		return err
	}
	logging.LogCommandStart(rt.logger, tmpl.Name, len(vals))

	keys := rt.formatter.UniquePlaceholderKeys(tmpl.Text)

	if (opts.Interactive || rt.cfg.Render.Interactive) && !rt.noTUI {
		vals, err = rt.promptMissing(keys, vals)
		if err != nil {
			return err
		}
	}

	if opts.Strict || rt.cfg.Render.Strict {
		if err := rt.checkStrict(tmpl, keys, vals); err != nil {
			return err
		}
	}

	out := rt.formatter.ReplacePlaceholders(vals, tmpl.Text)
	return writeRendered(cmd.OutOrStdout(), out, opts.NoNewline)
}

// promptMissing asks for the values of keys that vals lacks.
func (rt *session) promptMissing(keys []string, vals map[string]string) (map[string]string, error) {
	var me *placeholders.MissingError
	if err := placeholders.Missing(keys, vals); !errors.As(err, &me) {
		return vals, nil
	}

	answers, err := newPrompter(rt.cfg).Prompt(me.Missing())
	if err != nil {
		return nil, err
	}
	return values.Merge(vals, answers), nil
}

// checkStrict fails when keys lack values or values fail validation.
func (rt *session) checkStrict(tmpl source.Template, keys []string, vals map[string]string) error {
	if err := placeholders.Missing(keys, vals); err != nil {
		return &fmterrors.TemplateError{Op: "render", Path: tmpl.Path, Err: fmt.Errorf("%w: %v", fmterrors.ErrMissing, err)}
	}
	if err := placeholders.ValidateAll(keys, vals, rt.cfg.Placeholders.Validate); err != nil {
		return &fmterrors.TemplateError{Op: "render", Path: tmpl.Path, Err: fmt.Errorf("%w: %v", fmterrors.ErrInvalid, err)}
	}
	return nil
}

func writeRendered(w io.Writer, out string, noNewline bool) error {
	if !noNewline && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%w: %v", fmterrors.ErrIO, err)
	}
	return nil
}
