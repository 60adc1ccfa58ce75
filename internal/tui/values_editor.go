package tui

import (
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chgroeling/formatify/internal/placeholders"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Width(10)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("251"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// ValuesEditorModel edits the values of a fixed set of placeholder keys.
type ValuesEditorModel struct {
	// Values holds the edited values. Keys without an entry are unset.
	Values map[string]string
	// Patterns are the validation patterns per key.
	Patterns  map[string]string
	Done      bool
	Cancelled bool

	keys    []string
	list    list.Model
	editing bool
	current string
	input   textinput.Model
	err     string
}

// valueItem is a key in the list.
type valueItem struct {
	key     string
	value   string
	set     bool
	pattern string
}

// NewValuesEditor creates an editor for keys, starting from values.
// values is copied; the result is read from the Values field.
func NewValuesEditor(keys []string, values, patterns map[string]string) *ValuesEditorModel {
	m := &ValuesEditorModel{
		Values:   maps.Clone(values),
		Patterns: patterns,
		keys:     placeholders.Unique(keys),
	}
	if m.Values == nil {
		m.Values = map[string]string{}
	}

	li := list.New(nil, valueDelegate{}, 0, 0)
	li.SetShowStatusBar(false)
	li.SetFilteringEnabled(true)
	li.Title = "Values"
	m.list = li
	m.updateListItems()

	return m
}

// Init initializes the values editor.
func (m *ValuesEditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update updates the values editor model.
func (m *ValuesEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-4, 1))
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditing(msg)
		}
		if cmd, handled := m.handleNormalMode(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleNormalMode handles keys while the list is shown. It reports false
// for keys the list itself should see.
func (m *ValuesEditorModel) handleNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.list.FilterState() == list.Filtering {
		return nil, false
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Cancelled = true
		return tea.Quit, true

	case tea.KeyCtrlS:
		m.Done = true
		return tea.Quit, true

	case tea.KeyEnter:
		if item, ok := m.list.SelectedItem().(valueItem); ok {
			m.startEditing(item)
		}
		return nil, true

	case tea.KeyDelete:
		if item, ok := m.list.SelectedItem().(valueItem); ok {
			delete(m.Values, item.key)
			m.updateListItems()
		}
		return nil, true
	}

	return nil, false
}

func (m *ValuesEditorModel) startEditing(item valueItem) {
	m.editing = true
	m.current = item.key
	m.err = ""

	m.input = textinput.New()
	m.input.Placeholder = "Value"
	m.input.SetValue(item.value)
	m.input.Focus()
}

// handleEditing handles keys while a single value is edited.
func (m *ValuesEditorModel) handleEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.editing = false
		m.err = ""
		return m, nil

	case tea.KeyEnter, tea.KeyCtrlS:
		value := m.input.Value()
		if err := placeholders.Validate(value, m.Patterns[m.current]); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.Values[m.current] = value
		m.editing = false
		m.err = ""
		m.updateListItems()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateListItems rebuilds the list from the keys and current values.
func (m *ValuesEditorModel) updateListItems() {
	items := make([]list.Item, 0, len(m.keys))
	for _, key := range m.keys {
		value, set := m.Values[key]
		items = append(items, valueItem{
			key:     key,
			value:   value,
			set:     set,
			pattern: m.Patterns[key],
		})
	}
	m.list.SetItems(items)
}

// Editing reports whether a value is being edited.
func (m *ValuesEditorModel) Editing() bool { return m.editing }

// Current returns the key being edited.
func (m *ValuesEditorModel) Current() string { return m.current }

// Err returns the last validation message of the edited value.
func (m *ValuesEditorModel) Err() string { return m.err }

// Unset returns the keys that still have no value, in template order.
func (m *ValuesEditorModel) Unset() []string {
	var out []string
	for _, key := range m.keys {
		if _, ok := m.Values[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// View renders the values editor.
func (m *ValuesEditorModel) View() string {
	if m.editing {
		return m.renderEditView()
	}
	return m.renderListView()
}

func (m *ValuesEditorModel) renderListView() string {
	if m.list.Height() == 0 {
		m.list.SetSize(60, 12)
	}

	status := okStyle.Render("all keys set")
	if unset := m.Unset(); len(unset) > 0 {
		status = missingStyle.Render("unset: " + strings.Join(unset, " "))
	}

	footer := footerStyle.Render(" [Ctrl+S]: save and close [Esc]: cancel [Enter]: edit [Del]: unset")

	return titleStyle.Render("formatify values") + "\n\n" + m.list.View() + "\n" + status + "\n" + footer
}

func (m *ValuesEditorModel) renderEditView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Edit value: " + m.current))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Value:") + " " + m.input.View())
	b.WriteString("\n\n")

	if pattern := m.Patterns[m.current]; pattern != "" {
		b.WriteString(labelStyle.Render("Pattern:") + " " + dimStyle.Render(pattern))
		b.WriteString("\n\n")
	}
	if m.err != "" {
		b.WriteString(missingStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	b.WriteString(footerStyle.Render(" [Enter]: save [Esc]: back"))
	return b.String()
}

// RunValuesEditor runs the editor in the alternate screen and returns the final model.
func RunValuesEditor(m *ValuesEditorModel) (*ValuesEditorModel, error) {
	program := tea.NewProgram(m, tea.WithAltScreen())

	result, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}

	final, ok := result.(*ValuesEditorModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", result)
	}
	return final, nil
}

// valueDelegate renders one key per list row.
type valueDelegate struct{}

func (d valueDelegate) Height() int                               { return 2 }
func (d valueDelegate) Spacing() int                              { return 0 }
func (d valueDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d valueDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(valueItem)
	if !ok {
		return
	}

	var nameStyle lipgloss.Style
	switch {
	case index == m.Index():
		nameStyle = selectedStyle
	case !item.set:
		nameStyle = missingStyle
	default:
		nameStyle = normalStyle
	}

	value := item.value
	if !item.set {
		value = "(unset)"
	}
	fmt.Fprintf(w, "%s = %s\n", nameStyle.Render(item.key), value)

	if item.pattern != "" {
		fmt.Fprintf(w, "%s\n", dimStyle.Render("  pattern: "+item.pattern))
	} else {
		fmt.Fprintln(w)
	}
}

func (i valueItem) Title() string       { return i.key }
func (i valueItem) Description() string { return i.value }
func (i valueItem) FilterValue() string { return i.key + " " + i.value }
