package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/logging"
	"github.com/chgroeling/formatify/internal/source"
	"github.com/chgroeling/formatify/internal/tui"
)

// PreviewOptions contains the options for the preview command.
type PreviewOptions struct {
	InputOptions
	Output string
}

// runPreviewTUI runs the preview program. Tests replace it.
var runPreviewTUI = tui.RunPreview

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [template]",
		Short: "Edit a template with a live rendered preview",
		Long: `Open an editor that renders the template on every keystroke.

The status line shows the rendered length, the keys that resolve and the
keys that are missing. Ctrl+S accepts and prints the template (or writes it
to --output), Esc cancels.

Not available with --no-tui.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	addValueFlags(cmd, &opts.InputOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the accepted template to this file")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string, opts *PreviewOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.preview(cmd, args, opts))
}

func (rt *session) preview(cmd *cobra.Command, args []string, opts *PreviewOptions) error {
	if rt.noTUI {
		return fmt.Errorf("%w: preview needs the TUI; remove --no-tui or set tui.enabled", fmterrors.ErrInvalid)
	}

	// Starting from an empty template is fine; stdin belongs to the TUI.
	var tmpl source.Template
	if len(args) > 0 || (opts.File != "" && opts.File != "-") {
		t, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
		if err != nil {
			return err
		}
		tmpl = t
	}
	vals, err := rt.loadValues(&opts.InputOptions)
	if err != nil {
		return err
	}
	logging.LogCommandStart(rt.logger, tmpl.Name, len(vals))

	model := tui.NewPreviewModel(tmpl.Text, vals, rt.formatter)
	model.ShowHelp = rt.cfg.TUI.ShowHelp

	final, err := runPreviewTUI(model)
	if err != nil {
		return err
	}
	if final.Cancelled || !final.Done {
		return fmterrors.ErrCanceled
	}

	if opts.Output != "" {
		return writeTemplateFile(opts.Output, final.Template())
	}
	return writeRendered(cmd.OutOrStdout(), final.Template(), false)
}

func writeTemplateFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &fmterrors.TemplateError{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}
	return nil
}
