package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"

	"github.com/chgroeling/formatify/internal/config"
	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// OutputFormat defines the output format for the measure and keys commands.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// outputFormat picks the flag value when set, else the configured default.
func outputFormat(flag string, cfg *config.Config) (OutputFormat, error) {
	format := flag
	if format == "" {
		format = cfg.Output.Format
	}
	if !config.ValidOutputFormat(format) {
		return "", fmt.Errorf("invalid format: %s (must be table, json, or plain)", format)
	}
	return OutputFormat(format), nil
}

// printTable writes rows under headers, aligned by display width.
func printTable(w io.Writer, headers []any, rows [][]any) {
	tbl := table.New(headers...).
		WithWriter(w).
		WithWidthFunc(runewidth.StringWidth).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return headerStyle.Render(fmt.Sprintf(format, vals...))
		})
	for _, row := range rows {
		tbl.AddRow(row...)
	}
	tbl.Print()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmterrors.Wrap(err, "encode JSON")
	}
	return nil
}
