package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"locus/internal/adapters/tui/styles"
	"locus/internal/domain"
)

// Navigator supplies what the browser shows. Jump takes a path expression
// relative to the current placement.
type Navigator interface {
	List(at domain.Placement) ([]domain.Item, error)
	Jump(at domain.Placement, expr string) (domain.Placement, error)
	Path(id domain.ItemID) string
}

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Out       key.Binding
	In        key.Binding
	Section   key.Binding
	Today     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Permanent key.Binding
	Edit      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Out: key.NewBinding(
		key.WithKeys("h", "left", "backspace"),
		key.WithHelp("h/←", "parent"),
	),
	In: key.NewBinding(
		key.WithKeys("l", "right", "enter"),
		key.WithHelp("l/→", "open item"),
	),
	Section: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "section"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Prev: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous day"),
	),
	Next: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next day"),
	),
	Permanent: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "permanent"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel lists the items at one placement and walks the graph
type BrowserModel struct {
	ViewState

	nav    Navigator
	cwd    domain.Placement
	items  []domain.Item
	cursor int
	loaded bool
}

// NewBrowserModel creates a browser starting at cwd
func NewBrowserModel(nav Navigator, cwd domain.Placement) *BrowserModel {
	return &BrowserModel{nav: nav, cwd: cwd}
}

type itemsLoadedMsg struct {
	at    domain.Placement
	items []domain.Item
}

type errMsg struct {
	err error
}

// Init loads the starting placement
func (m *BrowserModel) Init() tea.Cmd {
	return m.load(m.cwd)
}

// Cwd returns the placement being shown
func (m *BrowserModel) Cwd() domain.Placement {
	return m.cwd
}

func (m *BrowserModel) load(at domain.Placement) tea.Cmd {
	return func() tea.Msg {
		items, err := m.nav.List(at)
		if err != nil {
			return errMsg{err}
		}
		return itemsLoadedMsg{at: at, items: items}
	}
}

// jump resolves expr against the current placement and loads the result
func (m *BrowserModel) jump(expr string) tea.Cmd {
	return func() tea.Msg {
		at, err := m.nav.Jump(m.cwd, expr)
		if err != nil {
			return errMsg{err}
		}
		items, err := m.nav.List(at)
		if err != nil {
			return errMsg{err}
		}
		return itemsLoadedMsg{at: at, items: items}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case itemsLoadedMsg:
		m.cwd = msg.at
		m.items = msg.items
		m.cursor = 0
		m.loaded = true
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.In):
			item := m.selected()
			if item == nil {
				return m, nil
			}
			return m, m.load(domain.UnderItem(item.ID))

		case key.Matches(msg, BrowserKeys.Out):
			return m, m.jump("..")

		case key.Matches(msg, BrowserKeys.Section):
			return m, m.load(m.cwd.Child(int(msg.String()[0] - '0')))

		case key.Matches(msg, BrowserKeys.Today):
			return m, m.jump("today")

		case key.Matches(msg, BrowserKeys.Prev), key.Matches(msg, BrowserKeys.Next):
			return m, m.stepDay(key.Matches(msg, BrowserKeys.Next))

		case key.Matches(msg, BrowserKeys.Permanent):
			return m, m.jump(domain.PermanentKeyword)

		case key.Matches(msg, BrowserKeys.Edit):
			item := m.selected()
			if item == nil {
				return m, nil
			}
			path := m.nav.Path(item.ID)
			return m, func() tea.Msg { return OpenEditorMsg{Path: path} }

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}
	return m, nil
}

// stepDay moves a date placement one day, keeping the section path
func (m *BrowserModel) stepDay(forward bool) tea.Cmd {
	h, ok := m.cwd.Head().(domain.DateHead)
	if !ok {
		m.SetMessage("not on a date", true)
		return nil
	}
	delta := -1
	if forward {
		delta = 1
	}
	at, err := domain.NewPlacement(domain.DateHead{Day: h.Day.AddDays(delta)}, m.cwd.Section()...)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return m.load(at)
}

func (m *BrowserModel) selected() *domain.Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		if m.Message != "" {
			return styles.App.Render(m.renderMessage())
		}
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("locus"))
	b.WriteString("\n")
	b.WriteString(styles.Placement(m.cwd))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(styles.MutedText.Render("  (empty)"))
		b.WriteString("\n")
	}
	start, end := visibleWindow(len(m.items), m.cursor, m.Height-8)
	for i := start; i < end; i++ {
		b.WriteString(renderItem(m.items[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderMessage())
	b.WriteString("\n")
	b.WriteString(renderHints([]hint{
		{"j/k", "move"},
		{"h/l", "out/in"},
		{"1-9", "section"},
		{"t", "today"},
		{"e", "edit"},
		{"?", "help"},
		{"q", "quit"},
	}))
	return styles.App.Render(b.String())
}

func renderItem(item domain.Item, selected bool) string {
	marker := "  "
	switch item.Status {
	case domain.StatusOpen:
		marker = "☐ "
	case domain.StatusDone:
		marker = "☑ "
	}
	text := fmt.Sprintf("%s%s", marker, item.Title)

	if selected {
		return "> " + styles.Selected.Render(text) + " " + styles.Rank.Render(item.ID.Short())
	}
	style := styles.Note
	switch item.Status {
	case domain.StatusOpen:
		style = styles.TaskOpen
	case domain.StatusDone:
		style = styles.TaskDone
	}
	return "  " + style.Render(text) + " " + styles.Rank.Render(item.ID.Short())
}

// Reload reloads the current placement
func (m *BrowserModel) Reload() tea.Cmd {
	return m.load(m.cwd)
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to open an item file in the editor
type OpenEditorMsg struct {
	Path string
}
