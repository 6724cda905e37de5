package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"locus/internal/adapters/tui/styles"
)

// PickerKeyMap defines key bindings for the picker. Letters go to the
// filter, so movement uses arrows and ctrl chords.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// PickerModel asks the user to choose one alias among ambiguous candidates
type PickerModel struct {
	ViewState

	input      string
	candidates []string
	filtered   []fuzzy.Match
	filter     textinput.Model
	cursor     int

	choice    string
	cancelled bool
}

// NewPickerModel creates a picker for the candidates matching input
func NewPickerModel(input string, candidates []string) *PickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := &PickerModel{
		input:      input,
		candidates: candidates,
		filter:     ti,
	}
	m.applyFilter()
	return m
}

// Init initializes the picker
func (m *PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Choice returns the chosen candidate; ok is false when the user cancelled
func (m *PickerModel) Choice() (string, bool) {
	if m.cancelled || m.choice == "" {
		return "", false
	}
	return m.choice, true
}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PickerKeys.Cancel):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, PickerKeys.Choose):
			if len(m.filtered) == 0 {
				m.SetMessage("nothing matches the filter", true)
				return m, nil
			}
			m.choice = m.filtered[m.cursor].Str
			return m, tea.Quit

		case key.Matches(msg, PickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, PickerKeys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.ClearMessage()
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter narrows the candidates to fuzzy matches of the filter text,
// best first. An empty filter keeps every candidate in order.
func (m *PickerModel) applyFilter() {
	q := m.filter.Value()
	if q == "" {
		m.filtered = make([]fuzzy.Match, len(m.candidates))
		for i, c := range m.candidates {
			m.filtered[i] = fuzzy.Match{Str: c, Index: i}
		}
	} else {
		m.filtered = fuzzy.Find(q, m.candidates)
	}
	m.cursor = min(m.cursor, max(len(m.filtered)-1, 0))
}

// View renders the picker
func (m *PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%q matches %d aliases", m.input, len(m.candidates))))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	start, end := visibleWindow(len(m.filtered), m.cursor, m.Height-8)
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.filtered[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderMessage())
	b.WriteString("\n")
	b.WriteString(renderHints([]hint{{"↑/↓", "move"}, {"enter", "choose"}, {"esc", "cancel"}}))
	return styles.App.Render(b.String())
}

func (m *PickerModel) renderRow(match fuzzy.Match, selected bool) string {
	if selected {
		return "> " + styles.Selected.Render(match.Str)
	}
	var b strings.Builder
	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		hit[i] = true
	}
	for i, r := range match.Str {
		if hit[i] {
			b.WriteString(styles.SearchMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return "  " + b.String()
}
