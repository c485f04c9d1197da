package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

const (
	maxColumnWidth = 40
	minColumnWidth = 8
)

// TableView displays table rows with virtual scrolling and sort indicators
type TableView struct {
	Columns []string
	Rows    [][]string
	Width   int
	Height  int
	Theme   theme.Theme

	// Sorting is drawn in the header; the view never reorders rows itself
	Sorting models.SortingState

	// Virtual scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int
	SelectedCol int
	TotalRows   int

	ColumnWidths []int
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Columns:      []string{},
		Rows:         [][]string{},
		ColumnWidths: []int{},
		Theme:        th,
	}
}

// SetData sets the table data
func (tv *TableView) SetData(columns []string, rows [][]string, totalRows int) {
	tv.Columns = columns
	tv.Rows = rows
	tv.TotalRows = totalRows
	if tv.SelectedRow >= len(rows) {
		tv.SelectedRow = max(len(rows)-1, 0)
	}
	if tv.SelectedCol >= len(columns) {
		tv.SelectedCol = max(len(columns)-1, 0)
	}
	tv.calculateColumnWidths()
}

// SelectedColumn returns the name of the column under the cursor
func (tv *TableView) SelectedColumn() (string, bool) {
	if tv.SelectedCol < 0 || tv.SelectedCol >= len(tv.Columns) {
		return "", false
	}
	return tv.Columns[tv.SelectedCol], true
}

// CycleSort returns the sorting with the selected column moved through
// ascending, descending and unsorted
func (tv *TableView) CycleSort() (models.SortingState, bool) {
	col, ok := tv.SelectedColumn()
	if !ok {
		return tv.Sorting, false
	}
	return tv.Sorting.Cycle(col), true
}

// MoveColumn moves the column cursor left or right
func (tv *TableView) MoveColumn(delta int) {
	tv.SelectedCol += delta
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
	if tv.SelectedCol >= len(tv.Columns) {
		tv.SelectedCol = max(len(tv.Columns)-1, 0)
	}
}

func (tv *TableView) calculateColumnWidths() {
	tv.ColumnWidths = make([]int, len(tv.Columns))

	// Headers leave room for a sort indicator
	for i, col := range tv.Columns {
		tv.ColumnWidths[i] = runewidth.StringWidth(col) + 3
	}

	for _, row := range tv.Rows {
		for i, cell := range row {
			if i < len(tv.ColumnWidths) {
				tv.ColumnWidths[i] = max(tv.ColumnWidths[i], runewidth.StringWidth(cell))
			}
		}
	}

	for i := range tv.ColumnWidths {
		tv.ColumnWidths[i] = min(max(tv.ColumnWidths[i], minColumnWidth), maxColumnWidth)
	}
}

// SortIndicator returns the header marker for a column, numbered when more
// than one column is sorted
func (tv *TableView) SortIndicator(col string) string {
	for i, e := range tv.Sorting {
		if e.ID != col {
			continue
		}
		arrow := "▲"
		if e.Desc {
			arrow = "▼"
		}
		if len(tv.Sorting) > 1 {
			return fmt.Sprintf("%s%d", arrow, i+1)
		}
		return arrow
	}
	return ""
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render("No data")
	}

	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	// Header + separator + status
	tv.VisibleRows = max(tv.Height-3, 1)

	endRow := min(tv.TopRow+tv.VisibleRows, len(tv.Rows))
	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(tv.Rows[i], i == tv.SelectedRow))
		if i < endRow-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tv.renderStatus())

	return lipgloss.NewStyle().Width(tv.Width).Height(tv.Height).Render(b.String())
}

func (tv *TableView) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	selectedStyle := headerStyle.Underline(true)
	sortStyle := lipgloss.NewStyle().Foreground(tv.Theme.SortIndicator).Bold(true)

	parts := make([]string, len(tv.Columns))
	for i, col := range tv.Columns {
		width := tv.ColumnWidths[i]
		indicator := tv.SortIndicator(col)
		label := Pad(col, width-runewidth.StringWidth(indicator))

		style := headerStyle
		if i == tv.SelectedCol {
			style = selectedStyle
		}
		parts[i] = style.Render(label) + sortStyle.Render(indicator)
	}
	return " " + strings.Join(parts, " │ ") + " "
}

func (tv *TableView) renderSeparator() string {
	parts := make([]string, len(tv.ColumnWidths))
	for i, width := range tv.ColumnWidths {
		parts[i] = strings.Repeat("─", width)
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(row []string, selected bool) string {
	parts := make([]string, 0, len(tv.ColumnWidths))
	for i, cell := range row {
		if i >= len(tv.ColumnWidths) {
			break
		}
		parts = append(parts, Pad(cell, tv.ColumnWidths[i]))
	}

	line := " " + strings.Join(parts, " │ ") + " "
	if selected {
		return lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Foreground(tv.Theme.Foreground).
			Bold(true).
			Render(line)
	}
	return line
}

func (tv *TableView) renderStatus() string {
	if tv.TotalRows == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Italic(true).Render(" 0 rows")
	}
	endRow := min(tv.TopRow+tv.VisibleRows, len(tv.Rows))
	showing := fmt.Sprintf(" %d-%d of %d rows", tv.TopRow+1, endRow, tv.TotalRows)
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(showing)
}

// Pad fits s to exactly width display cells
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// MoveSelection moves the selection up or down
func (tv *TableView) MoveSelection(delta int) {
	if len(tv.Rows) == 0 {
		return
	}
	tv.SelectedRow = min(max(tv.SelectedRow+delta, 0), len(tv.Rows)-1)

	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// PageUp moves the selection one screen up
func (tv *TableView) PageUp() {
	tv.MoveSelection(-max(tv.VisibleRows, 1))
}

// PageDown moves the selection one screen down
func (tv *TableView) PageDown() {
	tv.MoveSelection(max(tv.VisibleRows, 1))
}
