package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// CloseSearchMsg is sent when the search toolbar should lose focus
type CloseSearchMsg struct{}

// SearchInput is the simple toolbar: one text box bound to the filter of a
// text field
type SearchInput struct {
	Input textinput.Model
	Theme theme.Theme
	Width int

	in      *filter.Instance
	targets []models.FilterFieldConfig
	target  int
	err     string
}

// NewSearchInput creates a toolbar over the text fields of in
func NewSearchInput(in *filter.Instance, th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Width = 40

	s := &SearchInput{
		Input: ti,
		Theme: th,
		in:    in,
	}
	for _, f := range in.Fields() {
		if f.Type == models.TypeText {
			s.targets = append(s.targets, f)
		}
	}
	s.sync()
	return s
}

// Target returns the field being searched
func (s *SearchInput) Target() (models.FilterFieldConfig, bool) {
	if len(s.targets) == 0 {
		return models.FilterFieldConfig{}, false
	}
	return s.targets[s.target], true
}

// Focus focuses the text box
func (s *SearchInput) Focus() tea.Cmd {
	return s.Input.Focus()
}

// Blur releases the text box
func (s *SearchInput) Blur() {
	s.Input.Blur()
}

// NextTarget switches to the next text field
func (s *SearchInput) NextTarget() {
	if len(s.targets) == 0 {
		return
	}
	s.target = (s.target + 1) % len(s.targets)
	s.sync()
}

// Refresh reloads the text box after the filters were replaced elsewhere
func (s *SearchInput) Refresh() {
	s.sync()
	s.err = ""
}

// sync loads the text box from the target's filter
func (s *SearchInput) sync() {
	if f, ok := s.filter(); ok {
		s.Input.SetValue(f.State.Value.String())
	} else {
		s.Input.SetValue("")
	}
	s.Input.CursorEnd()
}

func (s *SearchInput) filter() (models.Filter, bool) {
	field, ok := s.Target()
	if !ok {
		return models.Filter{}, false
	}
	for _, f := range s.in.Filters() {
		if f.FieldID == field.ID {
			return f, true
		}
	}
	return models.Filter{}, false
}

func (s *SearchInput) apply() {
	field, ok := s.Target()
	if !ok {
		return
	}

	f, ok := s.filter()
	if !ok {
		var err error
		if f, err = s.in.AddField(field.ID); err != nil {
			s.err = err.Error()
			return
		}
	}

	if err := s.in.SetValue(f.ID, models.StringValue(s.Input.Value())); err != nil {
		s.err = err.Error()
		return
	}
	s.err = ""
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			s.NextTarget()
			return s, nil
		case "ctrl+r":
			s.in.ClearFilters()
			s.sync()
			return s, nil
		case "enter", "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	if s.Input.Value() != before {
		s.apply()
	}
	return s, cmd
}

// View renders the toolbar
func (s *SearchInput) View() string {
	label := "no text columns"
	if field, ok := s.Target(); ok {
		label = field.Label
	}

	targetStyle := lipgloss.NewStyle().
		Foreground(s.Theme.FieldLabel).
		Bold(true)

	s.Input.Width = max(s.Width-24, 20)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	content := targetStyle.Render(fmt.Sprintf("[%s]", label)) + " " + s.Input.View()
	if n := len(s.in.Filters()); n > 0 {
		content += helpStyle.Render(fmt.Sprintf("  %d filter(s)", n))
	}
	help := helpStyle.Render("Tab: next column │ Ctrl+R: reset │ Enter/Esc: close")
	if s.err != "" {
		help = lipgloss.NewStyle().Foreground(s.Theme.Error).Render(s.err)
	}

	return boxStyle.Render(content + "\n" + help)
}
