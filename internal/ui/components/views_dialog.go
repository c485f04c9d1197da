package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// ViewsMode represents the dialog mode
type ViewsMode int

const (
	ViewsModeList ViewsMode = iota
	ViewsModeSave
)

// LoadViewMsg is sent when a saved view should replace the current state
type LoadViewMsg struct {
	View models.SavedView
}

// SaveViewMsg is sent when the current state should be saved as a view
type SaveViewMsg struct {
	Name        string
	Description string
	Tags        []string
}

// DeleteViewMsg is sent when a saved view should be removed
type DeleteViewMsg struct {
	ID string
}

// ExportViewsMsg is sent when saved views should be exported
type ExportViewsMsg struct {
	Format string // "csv" or "json"
}

// CloseViewsDialogMsg is sent when dialog should close
type CloseViewsDialogMsg struct{}

// ViewsDialog lists and saves the views of the current table
type ViewsDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	mode     ViewsMode
	views    []models.SavedView
	selected int
	offset   int

	inputs       []textinput.Model // name, description, tags
	currentField int
}

// NewViewsDialog creates a new views dialog
func NewViewsDialog(th theme.Theme) *ViewsDialog {
	labels := []string{"Name", "Description", "Tags (comma separated)"}
	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l
		ti.CharLimit = 128
		inputs[i] = ti
	}

	return &ViewsDialog{
		Width:  80,
		Height: 24,
		Theme:  th,
		mode:   ViewsModeList,
		inputs: inputs,
	}
}

// SetViews updates the list
func (vd *ViewsDialog) SetViews(views []models.SavedView) {
	vd.views = views
	if vd.selected >= len(views) {
		vd.selected = max(len(views)-1, 0)
	}
	vd.offset = min(vd.offset, vd.selected)
}

// Mode returns the current dialog mode
func (vd *ViewsDialog) Mode() ViewsMode {
	return vd.mode
}

func (vd *ViewsDialog) visibleHeight() int {
	return max((vd.Height-8)/2, 1)
}

// Update handles keyboard input
func (vd *ViewsDialog) Update(msg tea.KeyMsg) (*ViewsDialog, tea.Cmd) {
	if vd.mode == ViewsModeSave {
		return vd.handleSaveMode(msg)
	}
	return vd.handleListMode(msg)
}

func (vd *ViewsDialog) handleListMode(msg tea.KeyMsg) (*ViewsDialog, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return vd, func() tea.Msg {
			return CloseViewsDialogMsg{}
		}
	case "up", "k":
		if vd.selected > 0 {
			vd.selected--
			if vd.selected < vd.offset {
				vd.offset = vd.selected
			}
		}
	case "down", "j":
		if vd.selected < len(vd.views)-1 {
			vd.selected++
			if vd.selected >= vd.offset+vd.visibleHeight() {
				vd.offset = vd.selected - vd.visibleHeight() + 1
			}
		}
	case "enter":
		if vd.selected < len(vd.views) {
			view := vd.views[vd.selected]
			return vd, func() tea.Msg {
				return LoadViewMsg{View: view}
			}
		}
	case "a", "s":
		vd.mode = ViewsModeSave
		vd.currentField = 0
		for i := range vd.inputs {
			vd.inputs[i].SetValue("")
			vd.inputs[i].Blur()
		}
		return vd, vd.inputs[0].Focus()
	case "d", "x":
		if vd.selected < len(vd.views) {
			id := vd.views[vd.selected].ID
			return vd, func() tea.Msg {
				return DeleteViewMsg{ID: id}
			}
		}
	case "E":
		return vd, func() tea.Msg { return ExportViewsMsg{Format: "csv"} }
	case "J":
		return vd, func() tea.Msg { return ExportViewsMsg{Format: "json"} }
	}
	return vd, nil
}

func (vd *ViewsDialog) handleSaveMode(msg tea.KeyMsg) (*ViewsDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		vd.mode = ViewsModeList
		return vd, nil
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(vd.inputs) - 1
		}
		vd.inputs[vd.currentField].Blur()
		vd.currentField = (vd.currentField + step) % len(vd.inputs)
		return vd, vd.inputs[vd.currentField].Focus()
	case "enter":
		if vd.currentField < len(vd.inputs)-1 {
			vd.inputs[vd.currentField].Blur()
			vd.currentField++
			return vd, vd.inputs[vd.currentField].Focus()
		}
		name, description, tags := vd.GetEditData()
		vd.mode = ViewsModeList
		return vd, func() tea.Msg {
			return SaveViewMsg{Name: name, Description: description, Tags: tags}
		}
	}

	var cmd tea.Cmd
	vd.inputs[vd.currentField], cmd = vd.inputs[vd.currentField].Update(msg)
	return vd, cmd
}

// GetEditData returns the values typed in save mode
func (vd *ViewsDialog) GetEditData() (name, description string, tags []string) {
	name = strings.TrimSpace(vd.inputs[0].Value())
	description = strings.TrimSpace(vd.inputs[1].Value())
	for _, part := range strings.Split(vd.inputs[2].Value(), ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return
}

// View renders the dialog
func (vd *ViewsDialog) View() string {
	if vd.mode == ViewsModeSave {
		return vd.renderSave()
	}
	return vd.renderList()
}

func (vd *ViewsDialog) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(vd.Theme.Foreground).
		Background(vd.Theme.Info).
		Padding(0, 1).
		Bold(true)
}

func (vd *ViewsDialog) container() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(vd.Theme.Border).
		Width(vd.Width).
		Height(vd.Height).
		Padding(1)
}

func (vd *ViewsDialog) renderList() string {
	var sections []string

	sections = append(sections, vd.titleStyle().Render("Saved Views"))

	instrStyle := lipgloss.NewStyle().
		Foreground(vd.Theme.Muted).
		Padding(0, 1)
	sections = append(sections, instrStyle.Render("↑↓: Navigate  Enter: Load  s: Save current  d: Delete  E/J: Export CSV/JSON  Esc: Close"))

	if len(vd.views) == 0 {
		sections = append(sections, "\nNo saved views for this table. Press 's' to save one.")
		return vd.container().Render(strings.Join(sections, "\n"))
	}

	sections = append(sections, "")
	end := min(vd.offset+vd.visibleHeight(), len(vd.views))
	width := max(vd.Width-8, 20)

	for i := vd.offset; i < end; i++ {
		v := vd.views[i]

		detail := v.Description
		if detail == "" {
			detail = v.Query
		}
		if detail == "" {
			detail = "(defaults)"
		}

		line := runewidth.Truncate(v.Name, width, "…")
		if v.UsageCount > 0 {
			line += fmt.Sprintf("  (used %d×)", v.UsageCount)
		}
		line += "\n  " + runewidth.Truncate(detail, width-2, "…")
		if len(v.Tags) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(v.Tags, ", "))
		}

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == vd.selected {
			style = style.Background(vd.Theme.Selection).Foreground(vd.Theme.Foreground)
		}
		sections = append(sections, style.Render(line))
	}

	return vd.container().Render(strings.Join(sections, "\n"))
}

func (vd *ViewsDialog) renderSave() string {
	var sections []string

	sections = append(sections, vd.titleStyle().Render("Save View"))

	instrStyle := lipgloss.NewStyle().
		Foreground(vd.Theme.Muted).
		Padding(0, 1)
	sections = append(sections, instrStyle.Render("Tab: Next field  Enter: Save  Esc: Cancel"), "")

	for i, in := range vd.inputs {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == vd.currentField {
			style = style.Background(vd.Theme.Selection)
		}
		sections = append(sections, style.Render(in.View()))
	}

	return vd.container().Render(strings.Join(sections, "\n"))
}
