package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// ErrorOverlay is a boxed error message drawn over the main view
type ErrorOverlay struct {
	Title   string
	Message string
	Width   int
	Theme   theme.Theme
}

// NewErrorOverlay creates an empty overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{Width: 60, Theme: th}
}

// SetError replaces the displayed error
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(e.Theme.Error)
	hintStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted)

	body := titleStyle.Render(e.Title) + "\n\n" +
		lipgloss.NewStyle().Width(max(e.Width-6, 20)).Render(e.Message) + "\n\n" +
		hintStyle.Render("Press Esc or Enter to dismiss")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Width(e.Width).
		Render(body)
}
