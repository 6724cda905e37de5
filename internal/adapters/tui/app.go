package tui

import (
	"context"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"locus/internal/adapters/tui/views"
	"locus/internal/application"
	"locus/internal/application/commands"
	"locus/internal/domain"
	"locus/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHelp
)

// CommandRunner builds the editor process for a file; *editor.Opener
// satisfies it
type CommandRunner interface {
	Command(path string) (*exec.Cmd, error)
}

// App is the main TUI application model
type App struct {
	editor CommandRunner

	state   ViewState
	browser *views.BrowserModel
	help    *views.HelpModel
}

// NewApp creates a new TUI application starting at cwd
func NewApp(nav views.Navigator, ed CommandRunner, cwd domain.Placement) *App {
	return &App{
		editor:  ed,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(nav, cwd),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.browser.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, a.browser.Reload()
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}
	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	return a.browser.View()
}

// Navigator implements views.Navigator over the application commands
type Navigator struct {
	ctx      context.Context
	resolver *application.PathResolver
	index    ports.GraphIndex
	items    ports.ItemRepository
}

var _ views.Navigator = (*Navigator)(nil)

// NewNavigator creates a navigator
func NewNavigator(ctx context.Context, resolver *application.PathResolver, index ports.GraphIndex, items ports.ItemRepository) *Navigator {
	return &Navigator{ctx: ctx, resolver: resolver, index: index, items: items}
}

// List returns the items at a placement in rank order
func (n *Navigator) List(at domain.Placement) ([]domain.Item, error) {
	res, err := commands.NewListCommand(n.resolver, n.index, n.items, at, ".").Execute(n.ctx)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Jump resolves a path expression relative to at
func (n *Navigator) Jump(at domain.Placement, expr string) (domain.Placement, error) {
	return n.resolver.ResolvePath(at, expr)
}

// Path is the file holding the item
func (n *Navigator) Path(id domain.ItemID) string {
	return n.items.Path(id)
}

// PickAlias runs the picker for an ambiguous alias and returns the chosen
// key; ok is false if the user cancelled
func PickAlias(amb *application.AmbiguousError, opts ...tea.ProgramOption) (string, bool, error) {
	picker := views.NewPickerModel(amb.Input, amb.Candidates)
	if _, err := tea.NewProgram(picker, opts...).Run(); err != nil {
		return "", false, err
	}
	choice, ok := picker.Choice()
	return choice, ok, nil
}
