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
)

// CheckOptions contains the options for the check command.
type CheckOptions struct {
	InputOptions
	Quiet bool
}

// CheckReport is the outcome of checking a template against values.
type CheckReport struct {
	Keys     []string
	Missing  []string
	Failures []placeholders.Failure
}

// OK reports whether the template has no problems.
func (r CheckReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Failures) == 0
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [template]",
		Short: "Check that every placeholder has a valid value",
		Long: `Check a template against the configured value sources.

Reports keys without a value and values that do not match the patterns in
the [placeholders.validate] config section. Exits non-zero on any problem.

Examples:
  formatify check -f commit.tmpl -v values.yaml
  formatify check '%(name) %(day)' --set name=Alice`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	addValueFlags(cmd, &opts.InputOptions)
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print nothing; report through the exit code only")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.check(cmd, args, opts))
}

func (rt *session) check(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	tmpl, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
	if err != nil {
		return err
	}
	vals, err := rt.loadValues(&opts.InputOptions)
	if err != nil {
		return err
	}
	logging.LogCommandStart(rt.logger, tmpl.Name, len(vals))

	report := rt.checkReport(tmpl.Text, vals)
	if !opts.Quiet {
		printCheckReport(cmd.OutOrStdout(), report)
	}
	if report.OK() {
		return nil
	}

	var errs []error
	if len(report.Missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", fmterrors.ErrMissing, strings.Join(report.Missing, ", ")))
	}
	if len(report.Failures) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d value(s) failed validation", fmterrors.ErrInvalid, len(report.Failures)))
	}
	return &fmterrors.TemplateError{Op: "check", Path: tmpl.Path, Err: errors.Join(errs...)}
}

func (rt *session) checkReport(text string, vals map[string]string) CheckReport {
	report := CheckReport{Keys: rt.formatter.UniquePlaceholderKeys(text)}

	var me *placeholders.MissingError
	if errors.As(rt.formatter.CheckPlaceholders(vals, text), &me) {
		report.Missing = me.Missing()
	}

	var ve *placeholders.ValidationError
	if errors.As(placeholders.ValidateAll(report.Keys, vals, rt.cfg.Placeholders.Validate), &ve) {
		report.Failures = ve.Failures
	}

	return report
}

func printCheckReport(w io.Writer, r CheckReport) {
	if r.OK() {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ %d key(s), all resolved", len(r.Keys))))
		return
	}
	for _, key := range r.Missing {
		fmt.Fprintln(w, errorStyle.Render("✗ missing: "+key))
	}
	for _, f := range r.Failures {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("✗ invalid: %s: %v", f.Key, f.Err)))
	}
}
