package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chgroeling/formatify/internal/logging"
)

// KeysOptions contains the options for the keys command.
type KeysOptions struct {
	InputOptions
	Unique bool
	Format string
}

// NewKeysCommand creates the keys command.
func NewKeysCommand() *cobra.Command {
	opts := &KeysOptions{}

	cmd := &cobra.Command{
		Use:   "keys [template]",
		Short: "List the placeholder keys a template references",
		Long: `List the keys of all well-formed %(key) placeholders in template order.

Duplicates are listed once per occurrence unless --unique is given.

Examples:
  formatify keys 'Hello, %(name)! Today is %(day).'
  formatify keys -f report.tmpl --unique --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	cmd.Flags().BoolVarP(&opts.Unique, "unique", "u", false, "list each key once")
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format (table, json, plain); default from config")

	return cmd
}

func runKeys(cmd *cobra.Command, args []string, opts *KeysOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.keys(cmd, args, opts))
}

func (rt *session) keys(cmd *cobra.Command, args []string, opts *KeysOptions) error {
	format, err := outputFormat(opts.Format, rt.cfg)
	if err != nil {
		return err
	}
	tmpl, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
	if err != nil {
		return err
	}
	logging.LogCommandStart(rt.logger, tmpl.Name, 0)

	var keys []string
	if opts.Unique {
		keys = rt.formatter.UniquePlaceholderKeys(tmpl.Text)
	} else {
		keys = rt.formatter.ExtractPlaceholderKeys(tmpl.Text)
	}

	w := cmd.OutOrStdout()
	switch format {
	case FormatJSON:
		return printJSON(w, keys)
	case FormatPlain:
		for _, k := range keys {
			if _, err := fmt.Fprintln(w, k); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(keys) == 0 {
			_, err := fmt.Fprintln(w, "No placeholders found.")
			return err
		}
		rows := make([][]any, 0, len(keys))
		for i, k := range keys {
			rows = append(rows, []any{i + 1, k})
		}
		printTable(w, []any{"#", "KEY"}, rows)
		return nil
	}
}
