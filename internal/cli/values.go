package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/logging"
	"github.com/chgroeling/formatify/internal/tui"
	"github.com/chgroeling/formatify/internal/values"
)

// ValuesOptions contains the options for the values command.
type ValuesOptions struct {
	InputOptions
	Output string
	Format string
}

// runValuesEditor runs the values editor program. Tests replace it.
var runValuesEditor = tui.RunValuesEditor

// NewValuesCommand creates the values command.
func NewValuesCommand() *cobra.Command {
	opts := &ValuesOptions{}

	cmd := &cobra.Command{
		Use:   "values [template]",
		Short: "Edit and save the values a template needs",
		Long: `Collect the values of every key the template references and save them
as a value file that render, measure and check accept with --values.

Values start from the usual sources. Without --no-tui an editor lists each
key with its value; Enter edits, Del unsets, Ctrl+S saves.

The format follows the extension of --output, else --format (default yaml).
Without --output the file is printed.

Examples:
  formatify values -f commit.tmpl -o values.yaml
  formatify values '%(name) %(day)' --set name=Alice --no-tui --format env`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	addValueFlags(cmd, &opts.InputOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the values to this file")
	cmd.Flags().StringVar(&opts.Format, "format", "", "value file format when printing (yaml, toml, json, env)")

	return cmd
}

func runValues(cmd *cobra.Command, args []string, opts *ValuesOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.editValues(cmd, args, opts))
}

func (rt *session) editValues(cmd *cobra.Command, args []string, opts *ValuesOptions) error {
	format, err := valueFormat(opts)
	if err != nil {
		return err
	}

	// The editor owns the terminal, so stdin is only read without it.
	var text string
	if len(args) > 0 || opts.File != "" || rt.noTUI {
		tmpl, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
		if err != nil {
			return err
		}
		text = tmpl.Text
		logging.LogCommandStart(rt.logger, tmpl.Name, 0)
	}
	vals, err := rt.loadValues(&opts.InputOptions)
	if err != nil {
		return err
	}

	keys := rt.formatter.UniquePlaceholderKeys(text)
	selected := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := vals[key]; ok {
			selected[key] = v
		}
	}

	if !rt.noTUI {
		final, err := runValuesEditor(tui.NewValuesEditor(keys, selected, rt.cfg.Placeholders.Validate))
		if err != nil {
			return err
		}
		if final.Cancelled || !final.Done {
			return fmterrors.ErrCanceled
		}
		selected = final.Values
	}

	if opts.Output != "" {
		if err := values.WriteFile(opts.Output, selected); err != nil {
			return err
		}
		rt.logger.Info("values written", slog.String("path", opts.Output), slog.Int("count", len(selected)))
		return nil
	}

	data, err := values.Encode(format, selected)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// valueFormat picks the format from --output, else --format, else yaml.
func valueFormat(opts *ValuesOptions) (values.Format, error) {
	if opts.Output != "" {
		return values.FormatFromPath(opts.Output)
	}
	switch opts.Format {
	case "", "yaml", "yml":
		return values.FormatYAML, nil
	case "toml":
		return values.FormatTOML, nil
	case "json":
		return values.FormatJSON, nil
	case "env", "dotenv":
		return values.FormatDotenv, nil
	}
	return "", fmt.Errorf("%w: unknown value format %q (must be yaml, toml, json, or env)", fmterrors.ErrInvalid, opts.Format)
}
