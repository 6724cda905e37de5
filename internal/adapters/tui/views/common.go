package views

import (
	"fmt"
	"strings"

	"locus/internal/adapters/tui/styles"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

func (s *ViewState) renderMessage() string {
	if s.Message == "" {
		return ""
	}
	if s.MessageErr {
		return "\n" + styles.ErrorMsg.Render(s.Message) + "\n"
	}
	return "\n" + styles.Success.Render(s.Message) + "\n"
}

// hint is one entry of a view's bottom help line
type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(h.key),
			styles.HelpDesc.Render(h.desc),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen within height rows
func visibleWindow(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}
