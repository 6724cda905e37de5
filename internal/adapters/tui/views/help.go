package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"locus/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}
	return m, nil
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections() []helpSection {
	k := BrowserKeys
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Out, k.In, k.Section}},
		{"Jump", []key.Binding{k.Today, k.Prev, k.Next, k.Permanent}},
		{"General", []key.Binding{k.Edit, k.Help, k.Quit}},
	}
}

// placementExamples pairs a placement form with what it addresses
var placementExamples = [][2]string{
	{"2025-12-01/2", "section 2 of a day"},
	{"proj/1", "section 1 inside item \"proj\""},
	{"permanent", "items outside any day"},
}

const helpKeyWidth = 16

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("locus help") + "\n\n")

	keyCol := styles.HelpKey.Width(helpKeyWidth)
	for _, sec := range helpSections() {
		b.WriteString(styles.InputLabel.Render(sec.title) + "\n")
		for _, kb := range sec.bindings {
			h := kb.Help()
			b.WriteString("  " + keyCol.Render(h.Key) + styles.HelpDesc.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("Placements") + "\n")
	exampleCol := styles.MutedText.Width(helpKeyWidth)
	for _, ex := range placementExamples {
		b.WriteString("  " + exampleCol.Render(ex[0]) + styles.MutedText.Render(ex[1]) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(renderHints([]hint{{"esc", "close"}, {"?", "close"}}))
	return styles.App.Render(b.String())
}
