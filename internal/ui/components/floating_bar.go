package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// FloatingBar is the one-line summary pinned above the table: filter counts,
// sort order and the shareable query string
type FloatingBar struct {
	Width int
	Theme theme.Theme

	Filters models.FiltersState
	Sorting models.SortingState
	Query   string
	Pending bool
	Notice  string
}

// Summary describes the filter and sort state in words
func (b *FloatingBar) Summary() string {
	active := len(b.Filters.ActiveFilters())
	total := len(b.Filters.Filters)

	var parts []string
	switch {
	case total == 0:
		parts = append(parts, "no filters")
	case active == total:
		parts = append(parts, fmt.Sprintf("%d filter(s) joined by %s", total, b.Filters.JoinOperator))
	default:
		parts = append(parts, fmt.Sprintf("%d of %d filter(s) on, joined by %s", active, total, b.Filters.JoinOperator))
	}

	if len(b.Sorting) > 0 {
		parts = append(parts, "sort "+codec.FormatSortShorthand(b.Sorting))
	}
	return strings.Join(parts, " · ")
}

// View renders the bar
func (b *FloatingBar) View() string {
	summaryStyle := lipgloss.NewStyle().
		Foreground(b.Theme.Foreground).
		Bold(true)
	queryStyle := lipgloss.NewStyle().
		Foreground(b.Theme.Muted)
	noticeStyle := lipgloss.NewStyle().
		Foreground(b.Theme.Success)

	query := b.Query
	if query == "" {
		query = "(defaults)"
	}
	if b.Pending {
		query += " …"
	}

	line := summaryStyle.Render(b.Summary())
	if b.Notice != "" {
		line += "  " + noticeStyle.Render(b.Notice)
	}

	width := max(b.Width-4, 10)
	second := queryStyle.Render("?" + runewidth.Truncate(query, width-1, "…"))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(b.Theme.Border).
		Padding(0, 1).
		Width(b.Width).
		Render(line + "\n" + second)
}
