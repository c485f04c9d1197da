package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/components/filters"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// CloseFilterListMsg is sent when the filter list should lose focus
type CloseFilterListMsg struct{}

type listMode int

const (
	modeNavigate listMode = iota
	modeField
	modeValue
	modeOptions
)

// FilterList edits the filters of one table view. Every change goes straight
// to the filter instance.
type FilterList struct {
	Width  int
	Height int
	Theme  theme.Theme

	in       *filter.Instance
	registry *filters.Registry

	mode            listMode
	currentIndex    int
	fieldIndex      int
	optionIndex     int
	valueInput      textinput.Model
	validationError string
}

// NewFilterList creates a filter list bound to in
func NewFilterList(in *filter.Instance, registry *filters.Registry, th theme.Theme) *FilterList {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 512

	return &FilterList{
		Width:      80,
		Height:     20,
		Theme:      th,
		in:         in,
		registry:   registry,
		valueInput: ti,
	}
}

// Editing reports whether a field, value or option editor is open
func (fl *FilterList) Editing() bool {
	return fl.mode != modeNavigate
}

// Error returns the last rejected edit
func (fl *FilterList) Error() string {
	return fl.validationError
}

// Refresh drops any open editor and keeps the cursor in range after the
// filters were replaced elsewhere
func (fl *FilterList) Refresh() {
	fl.mode = modeNavigate
	fl.valueInput.Blur()
	fl.validationError = ""
	fl.clamp()
}

func (fl *FilterList) current() (models.Filter, bool) {
	list := fl.in.Filters()
	if fl.currentIndex < 0 || fl.currentIndex >= len(list) {
		return models.Filter{}, false
	}
	return list[fl.currentIndex], true
}

func (fl *FilterList) clamp() {
	n := len(fl.in.Filters())
	if fl.currentIndex >= n {
		fl.currentIndex = n - 1
	}
	if fl.currentIndex < 0 {
		fl.currentIndex = 0
	}
}

func (fl *FilterList) report(err error) {
	if err != nil {
		fl.validationError = err.Error()
		return
	}
	fl.validationError = ""
}

// Update handles keyboard input
func (fl *FilterList) Update(msg tea.KeyMsg) (*FilterList, tea.Cmd) {
	switch fl.mode {
	case modeField:
		return fl.handleFieldMode(msg)
	case modeValue:
		return fl.handleValueMode(msg)
	case modeOptions:
		return fl.handleOptionsMode(msg)
	default:
		return fl.handleNavigationMode(msg)
	}
}

func (fl *FilterList) handleNavigationMode(msg tea.KeyMsg) (*FilterList, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fl.currentIndex > 0 {
			fl.currentIndex--
		}
	case "down", "j":
		if fl.currentIndex < len(fl.in.Filters())-1 {
			fl.currentIndex++
		}
	case "K", "shift+up":
		if fl.currentIndex > 0 {
			fl.report(fl.in.Reorder(fl.currentIndex, fl.currentIndex-1))
			fl.currentIndex--
		}
	case "J", "shift+down":
		if fl.currentIndex < len(fl.in.Filters())-1 {
			fl.report(fl.in.Reorder(fl.currentIndex, fl.currentIndex+1))
			fl.currentIndex++
		}
	case "a", "n":
		if len(fl.in.Fields()) > 0 {
			fl.mode = modeField
			fl.fieldIndex = 0
		}
	case "d", "x":
		if f, ok := fl.current(); ok {
			fl.in.RemoveFilter(f.ID)
			fl.clamp()
			fl.validationError = ""
		}
	case "o":
		if f, ok := fl.current(); ok {
			fl.report(fl.in.SetOperator(f.ID, fl.nextOperator(f)))
		}
	case " ":
		if f, ok := fl.current(); ok {
			fl.report(fl.in.SetActive(f.ID, !f.State.IsActive))
		}
	case "t":
		next := models.JoinOr
		if fl.in.JoinOperator() == models.JoinOr {
			next = models.JoinAnd
		}
		fl.report(fl.in.SetJoinOperator(next))
	case "c":
		fl.in.ClearFilters()
		fl.currentIndex = 0
		fl.validationError = ""
	case "r":
		fl.report(fl.in.Reset())
		fl.clamp()
	case "enter", "e":
		if f, ok := fl.current(); ok {
			fl.openEditor(f)
		}
	case "esc":
		return fl, func() tea.Msg {
			return CloseFilterListMsg{}
		}
	}
	return fl, nil
}

func (fl *FilterList) handleFieldMode(msg tea.KeyMsg) (*FilterList, tea.Cmd) {
	fields := fl.in.Fields()
	switch msg.String() {
	case "esc":
		fl.mode = modeNavigate
	case "up", "k":
		if fl.fieldIndex > 0 {
			fl.fieldIndex--
		}
	case "down", "j":
		if fl.fieldIndex < len(fields)-1 {
			fl.fieldIndex++
		}
	case "enter":
		if fl.fieldIndex < len(fields) {
			_, err := fl.in.AddField(fields[fl.fieldIndex].ID)
			fl.report(err)
			if err == nil {
				fl.currentIndex = len(fl.in.Filters()) - 1
			}
		}
		fl.mode = modeNavigate
	}
	return fl, nil
}

func (fl *FilterList) handleValueMode(msg tea.KeyMsg) (*FilterList, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		fl.valueInput.Blur()
		fl.mode = modeNavigate
		return fl, nil
	}

	var cmd tea.Cmd
	fl.valueInput, cmd = fl.valueInput.Update(msg)

	// Each keystroke is applied; the URL push is debounced downstream
	if f, ok := fl.current(); ok {
		fl.report(fl.in.SetValue(f.ID, ParseInputValue(f.Type, fl.valueInput.Value())))
	}
	return fl, cmd
}

func (fl *FilterList) handleOptionsMode(msg tea.KeyMsg) (*FilterList, tea.Cmd) {
	f, ok := fl.current()
	if !ok {
		fl.mode = modeNavigate
		return fl, nil
	}
	options := fl.options(f)

	switch msg.String() {
	case "esc", "enter":
		if msg.String() == "enter" && f.Type != models.TypeMultiSelect && fl.optionIndex < len(options) {
			fl.report(fl.in.SetValue(f.ID, models.StringValue(options[fl.optionIndex].Value)))
		}
		fl.mode = modeNavigate
	case "up", "k":
		if fl.optionIndex > 0 {
			fl.optionIndex--
		}
	case "down", "j":
		if fl.optionIndex < len(options)-1 {
			fl.optionIndex++
		}
	case " ":
		if f.Type == models.TypeMultiSelect && fl.optionIndex < len(options) {
			fl.report(fl.in.SetValue(f.ID, f.State.Value.Toggle(options[fl.optionIndex].Value)))
		}
	}
	return fl, nil
}

func (fl *FilterList) openEditor(f models.Filter) {
	switch f.Type {
	case models.TypeSelect, models.TypeMultiSelect, models.TypeBoolean:
		fl.mode = modeOptions
		fl.optionIndex = 0
	default:
		fl.mode = modeValue
		fl.valueInput.SetValue(strings.Join(f.State.Value.Strings(), ", "))
		fl.valueInput.CursorEnd()
		fl.valueInput.Focus()
	}
}

func (fl *FilterList) options(f models.Filter) []models.Option {
	if f.Type == models.TypeBoolean {
		return []models.Option{
			{Label: "Yes", Value: "true"},
			{Label: "No", Value: "false"},
			{Label: "Any", Value: ""},
		}
	}
	if field, ok := fl.in.Field(f.FieldID); ok && field.Meta != nil {
		return field.Meta.Options
	}
	return nil
}

func (fl *FilterList) nextOperator(f models.Filter) models.Operator {
	ops, err := fl.in.Adapter().Operators(f.Type)
	if err != nil || len(ops) == 0 {
		return f.State.Operator
	}
	for i, op := range ops {
		if op.Value == f.State.Operator {
			return ops[(i+1)%len(ops)].Value
		}
	}
	return ops[0].Value
}

// ParseInputValue turns typed text into a filter value. Number and date
// inputs accept a "from, to" range.
func ParseInputValue(t models.FilterType, s string) models.Value {
	if t == models.TypeNumber || t == models.TypeDate {
		if from, to, ok := strings.Cut(s, ","); ok {
			return models.ListValue(strings.TrimSpace(from), strings.TrimSpace(to))
		}
		return models.StringValue(strings.TrimSpace(s))
	}
	return models.StringValue(s)
}

// View renders the filter list
func (fl *FilterList) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(fl.Theme.Foreground).
		Background(fl.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Filters"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(fl.Theme.Muted).
		Padding(0, 1)

	var instructions string
	switch fl.mode {
	case modeField:
		instructions = "↑↓ Select field, Enter to add, Esc to cancel"
	case modeValue:
		instructions = "Type value (a, b for a range), Enter or Esc when done"
	case modeOptions:
		instructions = "↑↓ Select, Space to toggle, Enter to pick, Esc to close"
	default:
		instructions = "a=Add e=Edit o=Operator space=On/off t=And/or J/K=Move d=Delete c=Clear r=Reset"
	}
	sections = append(sections, instructionStyle.Render(instructions))

	if fl.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(fl.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, errorStyle.Render("Error: "+fl.validationError))
	}

	sections = append(sections, fl.renderJoin())

	list := fl.in.Filters()
	if len(list) == 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(fl.Theme.Placeholder).Italic(true).Render(" No filters"))
	}
	for i, f := range list {
		sections = append(sections, fl.renderFilter(i, f))
	}

	switch fl.mode {
	case modeField:
		sections = append(sections, "", "Add filter on:")
		for i, field := range fl.in.Fields() {
			style := lipgloss.NewStyle().Padding(0, 1)
			if i == fl.fieldIndex {
				style = style.Background(fl.Theme.Selection).Foreground(fl.Theme.Foreground)
			}
			sections = append(sections, style.Render(fmt.Sprintf("  %s (%s)", field.Label, field.Type)))
		}
	case modeValue:
		sections = append(sections, "", fl.valueInput.View())
	case modeOptions:
		if f, ok := fl.current(); ok {
			sections = append(sections, "")
			for i, opt := range fl.options(f) {
				mark := "  "
				if f.State.Value.Contains(opt.Value) {
					mark = "✓ "
				}
				style := lipgloss.NewStyle().Padding(0, 1)
				if i == fl.optionIndex {
					style = style.Background(fl.Theme.Selection).Foreground(fl.Theme.Foreground)
				}
				sections = append(sections, style.Render(mark+opt.Label))
			}
		}
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fl.Theme.BorderFocused).
		Width(fl.Width).
		Padding(0, 1)

	return containerStyle.Render(strings.Join(sections, "\n"))
}

func (fl *FilterList) renderJoin() string {
	label := "Match all filters (and)"
	if fl.in.JoinOperator() == models.JoinOr {
		label = "Match any filter (or)"
	}
	return lipgloss.NewStyle().Foreground(fl.Theme.JoinOperator).Padding(0, 1).Render(label)
}

func (fl *FilterList) renderFilter(i int, f models.Filter) string {
	selected := i == fl.currentIndex && fl.mode == modeNavigate
	editing := i == fl.currentIndex && fl.mode != modeNavigate

	check := "[x]"
	if !f.State.IsActive {
		check = "[ ]"
	}

	opLabel := string(f.State.Operator)
	if def, err := fl.in.Adapter().Definition(f.Type); err == nil {
		opLabel = def.OperatorLabel(f.State.Operator)
	}

	value := fl.renderValue(f, editing)

	opStyle := lipgloss.NewStyle().Foreground(fl.Theme.Operator)
	line := fmt.Sprintf(" %d. %s %s %s", i+1, check, opStyle.Render(opLabel), value)

	style := lipgloss.NewStyle()
	if !f.State.IsActive {
		style = style.Foreground(fl.Theme.Inactive)
	}
	if selected {
		style = style.Background(fl.Theme.Selection)
	}
	return style.Render(line)
}

func (fl *FilterList) renderValue(f models.Filter, focused bool) string {
	props, err := fl.in.Props(f.ID)
	if err != nil {
		return err.Error()
	}
	props.Width = max(fl.Width/2, 12)
	props.Focused = focused
	props.Theme = fl.Theme

	field, _ := fl.in.Field(f.FieldID)
	out, err := fl.registry.Render(fl.in.Adapter(), field, f.Type, props)
	if err != nil {
		return lipgloss.NewStyle().Foreground(fl.Theme.Error).Render(err.Error())
	}
	return out
}
