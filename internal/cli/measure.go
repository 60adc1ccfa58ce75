package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chgroeling/formatify/internal/logging"
)

// MeasureOptions contains the options for the measure command.
type MeasureOptions struct {
	InputOptions
	Format string
}

// Measurement is the JSON form of the measure output.
type Measurement struct {
	Total        int                  `json:"total"`
	Placeholders []PlaceholderMeasure `json:"placeholders"`
}

// PlaceholderMeasure is the rendered width of one resolved placeholder.
type PlaceholderMeasure struct {
	Key   string `json:"key"`
	Width int    `json:"width"`
}

// NewMeasureCommand creates the measure command.
func NewMeasureCommand() *cobra.Command {
	opts := &MeasureOptions{}

	cmd := &cobra.Command{
		Use:   "measure [template]",
		Short: "Measure the rendered length of a template",
		Long: `Measure a template without rendering it.

Reports the length of the rendered text in characters, followed by the
rendered width of every placeholder that resolves to a value, in template
order. Placeholders without a value count as their literal text.

Examples:
  formatify measure 'Hello, %(name)!' --set name=Alice
  formatify measure -f line.tmpl -v values.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args, opts)
		},
	}

	addTemplateFlags(cmd, &opts.InputOptions)
	addValueFlags(cmd, &opts.InputOptions)
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format (table, json, plain); default from config")

	return cmd
}

func runMeasure(cmd *cobra.Command, args []string, opts *MeasureOptions) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	return rt.finish(rt.measure(cmd, args, opts))
}

func (rt *session) measure(cmd *cobra.Command, args []string, opts *MeasureOptions) error {
	format, err := outputFormat(opts.Format, rt.cfg)
	if err != nil {
		return err
	}
	tmpl, err := rt.loadTemplate(cmd, args, &opts.InputOptions)
	if err != nil {
		return err
	}
	vals, err := rt.loadValues(&opts.InputOptions)
	if err != nil {
		return err
	}
	logging.LogCommandStart(rt.logger, tmpl.Name, len(vals))

	m := rt.measurement(vals, tmpl.Text)
	w := cmd.OutOrStdout()

	switch format {
	case FormatJSON:
		return printJSON(w, m)
	case FormatPlain:
		parts := []string{strconv.Itoa(m.Total)}
		for _, p := range m.Placeholders {
			parts = append(parts, strconv.Itoa(p.Width))
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, " "))
		return err
	default:
		rows := [][]any{{"", "(total)", m.Total}}
		for i, p := range m.Placeholders {
			rows = append(rows, []any{i + 1, p.Key, p.Width})
		}
		printTable(w, []any{"#", "PLACEHOLDER", "WIDTH"}, rows)
		return nil
	}
}

// measurement pairs the measured widths with their keys. Measure reports a
// width for exactly those extracted keys that resolve, in the same order.
func (rt *session) measurement(vals map[string]string, text string) Measurement {
	lengths := rt.formatter.MeasureLengths(vals, text)

	var resolved []string
	for _, key := range rt.formatter.ExtractPlaceholderKeys(text) {
		if _, ok := vals[key]; ok {
			resolved = append(resolved, key)
		}
	}

	m := Measurement{Total: lengths[0], Placeholders: []PlaceholderMeasure{}}
	for i, width := range lengths[1:] {
		key := ""
		if i < len(resolved) {
			key = resolved[i]
		}
		m.Placeholders = append(m.Placeholders, PlaceholderMeasure{Key: key, Width: width})
	}
	return m
}
