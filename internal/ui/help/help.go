package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc", "Dismiss error"},
		{"Tab", "Switch between table and filters"},
		{"f", "Focus filters or search"},
		{"v", "Saved views"},
		{"y", "Copy share query"},
		{"F1, F2", "Toggle advanced table, floating bar"},
		{"r, F5", "Reload rows"},
	}
}

// GetTableKeys returns table key bindings
func GetTableKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k ↓/j", "Move row"},
		{"←/h →/l", "Move column"},
		{"PgUp/PgDn", "Page"},
		{"s", "Cycle sort on column"},
		{"S", "Reset sort"},
	}
}

// GetFilterKeys returns filter list key bindings
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"a", "Add filter"},
		{"e, Enter", "Edit value"},
		{"o", "Next operator"},
		{"Space", "Turn filter on or off"},
		{"t", "Toggle and/or"},
		{"J/K", "Move filter down/up"},
		{"d", "Delete filter"},
		{"c", "Clear filters"},
		{"r", "Reset to defaults"},
	}
}

// GetSearchKeys returns simple toolbar key bindings
func GetSearchKeys() []KeyBinding {
	return []KeyBinding{
		{"Tab", "Next text column"},
		{"Ctrl+R", "Reset filters"},
		{"Enter/Esc", "Back to table"},
	}
}

// Sections returns the help sections for the enabled toolbar
func Sections(flags models.FlagSet) []Section {
	sections := []Section{
		{Title: "Global", Keys: GetGlobalKeys()},
		{Title: "Table", Keys: GetTableKeys()},
	}
	if flags.Enabled(models.FlagAdvancedTable) {
		sections = append(sections, Section{Title: "Filters", Keys: GetFilterKeys()})
	} else {
		sections = append(sections, Section{Title: "Search", Keys: GetSearchKeys()})
	}
	return sections
}

// Render creates the help view
func Render(width, height int, th theme.Theme, flags models.FlagSet) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Operator).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazytable - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, s := range Sections(flags) {
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, kb := range s.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Feature flags"))
	b.WriteString("\n")
	for _, f := range models.FeatureFlags {
		state := "off"
		if flags.Enabled(f.Value) {
			state = "on"
		}
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(f.Label + " (" + state + ")"))
		b.WriteString(descStyle.Render(f.TooltipDescription))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 20)).
		Height(max(height-4, 10))

	return boxStyle.Render(b.String())
}
