// Package tui provides Bubble Tea models for terminal UI interactions.
package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chgroeling/formatify"
	"github.com/chgroeling/formatify/internal/placeholders"
)

// Focus names the pane receiving key input.
type Focus int

const (
	FocusEditor Focus = iota
	FocusOutput
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	activePaneTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Bold(true)

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// PreviewModel renders a template live while it is edited.
type PreviewModel struct {
	Values    map[string]string
	ShowHelp  bool
	Done      bool
	Cancelled bool

	formatter formatify.PlaceholderFormatter
	editor    textarea.Model
	output    viewport.Model
	focus     Focus

	rendered string
	lengths  []int
	keys     []string
	missing  []string
}

// NewPreviewModel creates a preview for template rendered against values.
// A nil formatter uses the default one.
func NewPreviewModel(template string, values map[string]string, formatter formatify.PlaceholderFormatter) *PreviewModel {
	if formatter == nil {
		formatter = formatify.New()
	}
	if values == nil {
		values = map[string]string{}
	}

	editor := textarea.New()
	editor.Placeholder = "Type a template, e.g. Hello, %(name)!"
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(80)
	editor.SetHeight(6)
	editor.SetValue(template)
	editor.Focus()

	m := &PreviewModel{
		Values:    values,
		ShowHelp:  true,
		formatter: formatter,
		editor:    editor,
		output:    viewport.New(80, 8),
		focus:     FocusEditor,
	}
	m.refresh()
	return m
}

// Init initializes the preview.
func (m *PreviewModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update updates the preview model.
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Cancelled = true
			return m, tea.Quit

		case tea.KeyCtrlS:
			m.Done = true
			return m, tea.Quit

		case tea.KeyTab:
			m.toggleFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusOutput {
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	before := m.editor.Value()
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *PreviewModel) toggleFocus() {
	if m.focus == FocusEditor {
		m.focus = FocusOutput
		m.editor.Blur()
		return
	}
	m.focus = FocusEditor
	m.editor.Focus()
}

func (m *PreviewModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	// title, two pane titles, status and footer take about 8 lines
	avail := max(height-8, 4)
	editorHeight := max(avail/3, 2)

	m.editor.SetWidth(width)
	m.editor.SetHeight(editorHeight)
	m.output.Width = max(width-4, 1)
	m.output.Height = max(avail-editorHeight-2, 1)
}

// refresh recomputes everything derived from the template.
func (m *PreviewModel) refresh() {
	template := m.editor.Value()

	m.rendered = m.formatter.ReplacePlaceholders(m.Values, template)
	m.lengths = m.formatter.MeasureLengths(m.Values, template)
	m.keys = placeholders.Unique(m.formatter.ExtractPlaceholderKeys(template))

	m.missing = nil
	if err := placeholders.Missing(m.keys, m.Values); err != nil {
		var me *placeholders.MissingError
		if errors.As(err, &me) {
			m.missing = me.Missing()
		}
	}

	m.output.SetContent(m.rendered)
}

// Template returns the template being edited.
func (m *PreviewModel) Template() string { return m.editor.Value() }

// Rendered returns the template rendered against Values.
func (m *PreviewModel) Rendered() string { return m.rendered }

// Lengths returns the measured lengths of the rendered template.
func (m *PreviewModel) Lengths() []int { return m.lengths }

// Keys returns the distinct keys the template references.
func (m *PreviewModel) Keys() []string { return m.keys }

// Missing returns the referenced keys without a value.
func (m *PreviewModel) Missing() []string { return m.missing }

// Focused returns the pane receiving key input.
func (m *PreviewModel) Focused() Focus { return m.focus }

// View renders the preview.
func (m *PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("formatify preview"))
	b.WriteString("\n\n")

	b.WriteString(m.paneTitle("Template", FocusEditor))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")

	b.WriteString(m.paneTitle("Output", FocusOutput))
	b.WriteString("\n")
	b.WriteString(outputStyle.Render(m.output.View()))
	b.WriteString("\n")

	b.WriteString(m.status())

	if m.ShowHelp {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(" [Ctrl+S]: accept [Esc]: cancel [Tab]: switch pane"))
	}

	return b.String()
}

func (m *PreviewModel) paneTitle(title string, pane Focus) string {
	if m.focus == pane {
		return activePaneTitleStyle.Render("▸ " + title)
	}
	return paneTitleStyle.Render("  " + title)
}

func (m *PreviewModel) status() string {
	total := 0
	if len(m.lengths) > 0 {
		total = m.lengths[0]
	}

	parts := []string{fmt.Sprintf("length %d", total)}

	resolved := make([]string, 0, len(m.keys))
	missing := make(map[string]bool, len(m.missing))
	for _, k := range m.missing {
		missing[k] = true
	}
	for _, k := range m.keys {
		if !missing[k] {
			resolved = append(resolved, k)
		}
	}
	sort.Strings(resolved)

	if len(resolved) > 0 {
		parts = append(parts, okStyle.Render("keys: "+strings.Join(resolved, " ")))
	}
	if len(m.missing) > 0 {
		parts = append(parts, missingStyle.Render("missing: "+strings.Join(m.missing, " ")))
	}

	return strings.Join(parts, "  ")
}

// RunPreview runs the preview in the alternate screen and returns the final model.
func RunPreview(m *PreviewModel) (*PreviewModel, error) {
	program := tea.NewProgram(m, tea.WithAltScreen())

	result, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}

	final, ok := result.(*PreviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", result)
	}
	return final, nil
}
