package filters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/adapter"
)

const defaultWidth = 24

type styles struct {
	label       lipgloss.Style
	value       lipgloss.Style
	placeholder lipgloss.Style
	invalid     lipgloss.Style
	selected    lipgloss.Style
	cursor      lipgloss.Style
}

func newStyles(p adapter.RenderProps) styles {
	th := p.Theme
	value := lipgloss.NewStyle().Foreground(th.Value)
	if p.Focused {
		value = value.Underline(true)
	}
	return styles{
		label:       lipgloss.NewStyle().Foreground(th.FieldLabel).Bold(true),
		value:       value,
		placeholder: lipgloss.NewStyle().Foreground(th.Placeholder).Italic(true),
		invalid:     lipgloss.NewStyle().Foreground(th.Error),
		selected:    lipgloss.NewStyle().Foreground(th.Success).Bold(true),
		cursor:      lipgloss.NewStyle().Foreground(th.Cursor),
	}
}

// line joins the label and an already styled body
func line(p adapter.RenderProps, st styles, body string) string {
	if p.Label == "" {
		return body
	}
	return st.label.Render(p.Label) + " " + body
}

// fit truncates s to the render width
func fit(p adapter.RenderProps, s string) string {
	width := p.Width
	if width <= 0 {
		width = defaultWidth
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}

func placeholder(p adapter.RenderProps, fallback string) string {
	if p.Meta != nil && p.Meta.Placeholder != "" {
		return p.Meta.Placeholder
	}
	return fallback
}

func withCursor(p adapter.RenderProps, st styles, s string) string {
	if !p.Focused {
		return s
	}
	return s + st.cursor.Render("▏")
}

// TextInput draws a free text value
func TextInput(p adapter.RenderProps) string {
	st := newStyles(p)
	if p.Value.IsEmpty() {
		return line(p, st, withCursor(p, st, st.placeholder.Render(fit(p, placeholder(p, "Enter text...")))))
	}
	return line(p, st, withCursor(p, st, st.value.Render(fit(p, p.Value.String()))))
}

// NumberInput draws a number, or a range of two, flagging values that do not parse
func NumberInput(p adapter.RenderProps) string {
	st := newStyles(p)
	if p.Value.IsEmpty() {
		return line(p, st, withCursor(p, st, st.placeholder.Render(fit(p, placeholder(p, "Enter a number...")))))
	}

	items := p.Value.Strings()
	for _, s := range items {
		if _, err := cast.ToFloat64E(strings.TrimSpace(s)); err != nil && strings.TrimSpace(s) != "" {
			return line(p, st, withCursor(p, st, st.invalid.Render(fit(p, p.Value.String()+" (not a number)"))))
		}
	}
	return line(p, st, withCursor(p, st, st.value.Render(fit(p, strings.Join(items, " and ")))))
}

// DatePicker draws a date, a date range, or a day offset relative to today
func DatePicker(p adapter.RenderProps) string {
	st := newStyles(p)
	if p.Value.IsEmpty() {
		return line(p, st, st.placeholder.Render(fit(p, placeholder(p, "Pick a date"))))
	}

	items := p.Value.Strings()
	parts := make([]string, 0, len(items))
	for _, s := range items {
		label, ok := FormatDate(s)
		if !ok {
			return line(p, st, st.invalid.Render(fit(p, s+" (not a date)")))
		}
		parts = append(parts, label)
	}
	return line(p, st, st.value.Render(fit(p, strings.Join(parts, " to "))))
}

// FormatDate renders a stored date value for display
func FormatDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return t.Format("Jan 2, 2006"), true
	}
	days, err := cast.ToIntE(s)
	if err != nil {
		return "", false
	}
	switch {
	case days == 0:
		return "today", true
	case days == -1:
		return "yesterday", true
	case days == 1:
		return "tomorrow", true
	case days < 0:
		return fmt.Sprintf("%d days ago", -days), true
	default:
		return fmt.Sprintf("in %d days", days), true
	}
}

// BooleanSelect draws a yes/no toggle
func BooleanSelect(p adapter.RenderProps) string {
	st := newStyles(p)

	var set, on bool
	if !p.Value.IsEmpty() {
		if b, err := cast.ToBoolE(p.Value.String()); err == nil {
			set, on = true, b
		}
	}

	yes := "○ Yes"
	no := "○ No"
	if set && on {
		yes = st.selected.Render("● Yes")
	}
	if set && !on {
		no = st.selected.Render("● No")
	}
	return line(p, st, yes+"  "+no)
}

// SelectInput draws the label of the chosen option
func SelectInput(p adapter.RenderProps) string {
	st := newStyles(p)

	arrow := ""
	if p.Focused {
		arrow = " ▾"
	}
	if p.Value.IsEmpty() {
		return line(p, st, st.placeholder.Render(fit(p, placeholder(p, "Select..."))+arrow))
	}
	return line(p, st, st.value.Render(fit(p, p.Meta.OptionLabel(p.Value.String()))+arrow))
}

// MultiSelectInput draws the chosen option labels, collapsing overflow into a count
func MultiSelectInput(p adapter.RenderProps) string {
	st := newStyles(p)

	items := p.Value.Strings()
	if len(items) == 0 {
		return line(p, st, st.placeholder.Render(fit(p, placeholder(p, "Select options..."))))
	}

	width := p.Width
	if width <= 0 {
		width = defaultWidth
	}

	var shown []string
	used := 0
	for i, v := range items {
		label := p.Meta.OptionLabel(v)
		rest := len(items) - i - 1
		suffix := ""
		if rest > 0 {
			suffix = fmt.Sprintf(" +%d", rest)
		}
		sep := 0
		if len(shown) > 0 {
			sep = 2
		}
		if len(shown) > 0 && used+sep+runewidth.StringWidth(label)+runewidth.StringWidth(suffix) > width {
			return line(p, st, st.value.Render(strings.Join(shown, ", ")+fmt.Sprintf(" +%d", len(items)-i)))
		}
		shown = append(shown, label)
		used += sep + runewidth.StringWidth(label)
	}
	return line(p, st, st.value.Render(fit(p, strings.Join(shown, ", "))))
}
