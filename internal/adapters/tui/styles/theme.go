package styles

import (
	"github.com/charmbracelet/lipgloss"

	"locus/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Head colors
	HeadDate      = lipgloss.Color("#60A5FA") // Blue
	HeadItem      = lipgloss.Color("#8B5CF6") // Violet
	HeadPermanent = lipgloss.Color("#F97316") // Orange

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Item rows
	Note = lipgloss.NewStyle()

	TaskOpen = lipgloss.NewStyle().
			Foreground(Secondary)

	TaskDone = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	Selected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Rank = lipgloss.NewStyle().Foreground(Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// HeadColor returns the color used for placements under a head kind
func HeadColor(k domain.HeadKind) lipgloss.Color {
	switch k {
	case domain.HeadDate:
		return HeadDate
	case domain.HeadItem:
		return HeadItem
	case domain.HeadPermanent:
		return HeadPermanent
	default:
		return Primary
	}
}

// Placement renders a placement in its head color
func Placement(p domain.Placement) string {
	if p.IsZero() {
		return MutedText.Render("(none)")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(HeadColor(p.Head().Kind())).Render(p.String())
}
