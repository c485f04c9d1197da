package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/config"
	"github.com/rebeliceyang/lazytable/internal/db/metadata"
	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/history"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/components"
	"github.com/rebeliceyang/lazytable/internal/ui/components/filters"
	"github.com/rebeliceyang/lazytable/internal/ui/help"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
	"github.com/rebeliceyang/lazytable/internal/urlstate"
	"github.com/rebeliceyang/lazytable/internal/views"
)

const (
	pageSize     = 200
	loadTimeout  = 30 * time.Second
	noticeExpiry = 3 * time.Second
)

// Options wires an App to its data and stores
type Options struct {
	Config  *config.Config
	Logger  logger.Logger
	Adapter *adapter.Adapter
	Source  Source

	// Query is the starting query string. When empty the last query pushed
	// for the table is restored from History.
	Query string

	History *history.Store
	Views   *views.Manager
}

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	flags  models.FlagSet
	log    logger.Logger

	source    Source
	instance  *filter.Instance
	registry  *filters.Registry
	store     *urlstate.MemoryStore
	syncer    *urlstate.Syncer
	sortCodec codec.SortingCodec
	defaults  codec.Defaults
	pushes    chan string

	history *history.Store
	views   *views.Manager

	tablePanel  components.Panel
	tableView   *components.TableView
	filterList  *components.FilterList
	searchInput *components.SearchInput
	floatingBar *components.FloatingBar
	viewsDialog *components.ViewsDialog

	showError    bool
	errorOverlay *components.ErrorOverlay

	notice  string
	noticeN int
	loading bool
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// LoadTableDataMsg requests loading table data
type LoadTableDataMsg struct {
	Offset int
	Limit  int
}

// TableDataLoadedMsg is sent when table data is loaded
type TableDataLoadedMsg struct {
	Data   *metadata.TableData
	Offset int
	Err    error
}

// QueryPushedMsg is sent after the query string was saved
type QueryPushedMsg struct {
	Query string
}

type clearNoticeMsg struct {
	n int
}

// New builds the filter instance and query syncer for opts.Source and
// restores the starting query. Invalid query parameters fall back to their
// defaults and are logged.
func New(opts Options) (*App, error) {
	if opts.Source == nil {
		return nil, errors.New("app: source is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaults()
	}

	a := opts.Adapter
	if a == nil {
		var err error
		if a, err = presets.ByName(cfg.Filters.Adapter); err != nil {
			return nil, err
		}
	}

	table := opts.Source.Name()
	log := opts.Logger.WithTable(table)
	fields := opts.Source.Fields()

	in, err := filter.New(a, fields,
		filter.WithDefaultJoinOperator(cfg.JoinOperator()),
		filter.WithActiveFilters(cfg.Filters.UseActiveFilters),
		filter.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filters: %w", err)
	}

	sortCodec := codec.NewSortingCodec(opts.Source.Columns()...)
	defaults := codec.Defaults{
		Filters:      in.Filters(),
		JoinOperator: in.JoinOperator(),
		Sorting:      knownSorting(cfg.SortDefault(), sortCodec),
	}

	query := opts.Query
	if query == "" && opts.History != nil {
		entries, err := opts.History.GetRecent(table, 1)
		if err != nil {
			log.Warn().Err(err).Msg("failed to read query history")
		} else if len(entries) > 0 {
			query = entries[0].Query
			log.Debug().Str("query", query).Msg("restored last query")
		}
	}

	start, errs := codec.DecodeString(query, a, sortCodec, defaults, codec.WithKnownFields(fields))
	for _, err := range errs {
		log.Warn().Err(err).Msg("ignoring query parameter")
	}
	if err := in.SetState(start.Filters); err != nil {
		log.Warn().Err(err).Msg("falling back to default filters")
		start = defaults.State()
	}

	initial, _ := codec.Encode(start, defaults)
	store := urlstate.NewMemoryStore(initial)

	th := theme.GetTheme(cfg.UI.Theme)
	state := models.NewAppState()
	state.CurrentTable = table

	app := &App{
		state:        state,
		config:       cfg,
		theme:        th,
		flags:        cfg.FlagSet(),
		log:          log,
		source:       opts.Source,
		instance:     in,
		registry:     filters.NewRegistry(),
		store:        store,
		sortCodec:    sortCodec,
		defaults:     defaults,
		pushes:       make(chan string, 16),
		history:      opts.History,
		views:        opts.Views,
		tableView:    components.NewTableView(th),
		viewsDialog:  components.NewViewsDialog(th),
		errorOverlay: components.NewErrorOverlay(th),
		tablePanel: components.Panel{
			Title: table,
			Theme: th,
		},
	}

	app.syncer = urlstate.NewSyncer(in, store, defaults,
		urlstate.WithDebounce(cfg.Debounce()),
		urlstate.WithLogger(log),
		urlstate.WithSorting(start.Sorting),
		urlstate.WithOnPush(app.onPush),
	)

	app.filterList = components.NewFilterList(in, app.registry, th)
	app.searchInput = components.NewSearchInput(in, th)
	app.floatingBar = &components.FloatingBar{Theme: th}
	app.tableView.Sorting = start.Sorting

	app.updatePanelDimensions()

	return app, nil
}

// knownSorting drops entries for columns the table does not have
func knownSorting(s models.SortingState, c codec.SortingCodec) models.SortingState {
	known := c.KnownColumns()
	if len(known) == 0 {
		return s
	}
	var out models.SortingState
	for _, e := range s {
		for _, col := range known {
			if e.ID == col {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// onPush may run on the debounce goroutine, so it only hands the query over
func (a *App) onPush(query string) {
	select {
	case a.pushes <- query:
	default:
		a.log.Debug().Str("query", query).Msg("push queue full")
	}
}

func (a *App) waitForPush() tea.Cmd {
	return func() tea.Msg {
		q, ok := <-a.pushes
		if !ok {
			return nil
		}
		return QueryPushedMsg{Query: q}
	}
}

// Query returns the current share query
func (a *App) Query() string {
	return a.syncer.Query()
}

// Instance returns the filter instance of the table
func (a *App) Instance() *filter.Instance {
	return a.instance
}

// Sorting returns the current sort state
func (a *App) Sorting() models.SortingState {
	return a.syncer.Sorting()
}

// Flags returns the enabled feature flags
func (a *App) Flags() models.FlagSet {
	return a.flags
}

// Close pushes any pending edit and stops the syncer. The last saved query
// is recorded when anything was pushed during the session.
func (a *App) Close() {
	a.syncer.Flush()
	a.syncer.Close()
	if a.store.Saves() > 0 {
		a.recordHistory(a.store.Query())
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadTableData(LoadTableDataMsg{Offset: 0, Limit: pageSize}),
		a.waitForPush(),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case QueryPushedMsg:
		a.recordHistory(msg.Query)
		return a, a.waitForPush()

	case clearNoticeMsg:
		if msg.n == a.noticeN {
			a.notice = ""
		}
		return a, nil

	case LoadTableDataMsg:
		return a, a.loadTableData(msg)

	case TableDataLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.ShowError("Database Error", fmt.Sprintf("Failed to load table data:\n\n%v", msg.Err))
			return a, nil
		}

		if msg.Offset == 0 {
			a.tableView.SetData(msg.Data.Columns, msg.Data.Rows, int(msg.Data.TotalRows))
		} else {
			a.tableView.Rows = append(a.tableView.Rows, msg.Data.Rows...)
			a.tableView.TotalRows = int(msg.Data.TotalRows)
		}
		return a, nil

	case components.CloseFilterListMsg, components.CloseSearchMsg:
		a.focusTable()
		return a, nil

	case components.LoadViewMsg:
		return a, a.applyView(msg.View)

	case components.SaveViewMsg:
		return a, a.saveView(msg)

	case components.DeleteViewMsg:
		if a.views == nil {
			return a, nil
		}
		if err := a.views.Delete(msg.ID); err != nil {
			a.ShowError("Views Error", err.Error())
			return a, nil
		}
		a.viewsDialog.SetViews(a.views.ForTable(a.state.CurrentTable))
		return a, a.setNotice("View deleted")

	case components.ExportViewsMsg:
		return a, a.exportViews(msg.Format)

	case components.CloseViewsDialogMsg:
		a.state.ViewMode = models.NormalMode
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.showError {
		switch key {
		case "esc", "enter":
			a.DismissError()
		case "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		if key == "?" || key == "esc" || key == "q" {
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	case models.ViewsMode:
		var cmd tea.Cmd
		a.viewsDialog, cmd = a.viewsDialog.Update(msg)
		return a, cmd
	}

	if a.state.FocusedPanel == models.FilterPanel {
		if a.advanced() {
			if key == "tab" && !a.filterList.Editing() {
				a.focusTable()
				return a, nil
			}
			var cmd tea.Cmd
			a.filterList, cmd = a.filterList.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}

	return a.handleTableKey(key)
}

func (a *App) handleTableKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
	case "tab", "f", "/":
		return a, a.focusFilters()
	case "v":
		if a.views == nil {
			return a, a.setNotice("Saved views are unavailable")
		}
		a.viewsDialog.SetViews(a.views.ForTable(a.state.CurrentTable))
		a.state.ViewMode = models.ViewsMode
	case "y":
		query := "?" + a.syncer.Query()
		if err := clipboard.WriteAll(query); err != nil {
			a.log.Warn().Err(err).Msg("clipboard unavailable")
			return a, a.setNotice(query)
		}
		return a, a.setNotice("Copied " + query)
	case "f1":
		a.toggleFlag(models.FlagAdvancedTable)
	case "f2":
		a.toggleFlag(models.FlagFloatingBar)
	case "s":
		if next, ok := a.tableView.CycleSort(); ok {
			return a, a.setSorting(next)
		}
	case "S":
		return a, a.setSorting(a.defaults.Sorting)
	case "r", "f5":
		return a, a.reload()
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
		return a, a.loadMore()
	case "left", "h":
		a.tableView.MoveColumn(-1)
	case "right", "l":
		a.tableView.MoveColumn(1)
	case "pgup", "ctrl+u":
		a.tableView.PageUp()
	case "pgdown", "ctrl+d":
		a.tableView.PageDown()
		return a, a.loadMore()
	case "esc":
		a.notice = ""
	}
	return a, nil
}

func (a *App) advanced() bool {
	return a.flags.Enabled(models.FlagAdvancedTable)
}

func (a *App) toggleFlag(flag models.FeatureFlag) {
	on := !a.flags.Enabled(flag)
	a.flags = a.flags.With(flag, on)
	a.log.Debug().Str("flag", string(flag)).Bool("enabled", on).Msg("feature flag toggled")
	a.updatePanelDimensions()
}

func (a *App) focusFilters() tea.Cmd {
	a.state.FocusedPanel = models.FilterPanel
	a.tablePanel.Focused = false
	if a.advanced() {
		a.filterList.Refresh()
		return nil
	}
	a.searchInput.Refresh()
	return a.searchInput.Focus()
}

func (a *App) focusTable() {
	a.state.FocusedPanel = models.TablePanel
	a.tablePanel.Focused = true
	a.searchInput.Blur()
}

// setSorting pushes the new order and reloads the first page
func (a *App) setSorting(s models.SortingState) tea.Cmd {
	a.syncer.SetSorting(s)
	a.tableView.Sorting = a.syncer.Sorting()
	return a.reload()
}

func (a *App) reload() tea.Cmd {
	a.tableView.SelectedRow = 0
	a.tableView.TopRow = 0
	return a.loadTableData(LoadTableDataMsg{Offset: 0, Limit: pageSize})
}

// loadMore fetches the next page when the cursor nears the end of the rows
func (a *App) loadMore() tea.Cmd {
	if a.loading ||
		a.tableView.SelectedRow < len(a.tableView.Rows)-10 ||
		len(a.tableView.Rows) >= a.tableView.TotalRows {
		return nil
	}
	return a.loadTableData(LoadTableDataMsg{Offset: len(a.tableView.Rows), Limit: pageSize})
}

// loadTableData loads table data with pagination
func (a *App) loadTableData(msg LoadTableDataMsg) tea.Cmd {
	a.loading = true
	sorting := a.syncer.Sorting()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		data, err := a.source.Load(ctx, sorting, msg.Offset, msg.Limit)
		if err != nil {
			return TableDataLoadedMsg{Offset: msg.Offset, Err: err}
		}
		return TableDataLoadedMsg{Data: data, Offset: msg.Offset}
	}
}

func (a *App) recordHistory(query string) {
	if a.history == nil {
		return
	}

	count := 0
	if values, err := url.ParseQuery(query); err == nil {
		state, errs := codec.Decode(values, a.instance.Adapter(), a.sortCodec, a.defaults)
		if len(errs) == 0 {
			count = len(state.Filters.ActiveFilters())
		}
	}

	err := a.history.Add(history.Entry{
		Table:       a.state.CurrentTable,
		Query:       query,
		FilterCount: count,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to record query history")
	}
}

// applyView replaces filters and sorting with the view's query. A view whose
// filters no longer decode is rejected as a whole.
func (a *App) applyView(v models.SavedView) tea.Cmd {
	a.state.ViewMode = models.NormalMode

	values, err := url.ParseQuery(v.Query)
	if err != nil {
		a.ShowError("Views Error", fmt.Sprintf("View %q has an invalid query:\n\n%v", v.Name, err))
		return nil
	}

	state, errs := codec.Decode(values, a.instance.Adapter(), a.sortCodec, a.defaults,
		codec.WithKnownFields(a.instance.Fields()))
	if len(errs) > 0 {
		a.ShowError("Views Error", fmt.Sprintf("View %q no longer matches this table:\n\n%v", v.Name, errors.Join(errs...)))
		return nil
	}

	if err := a.instance.SetState(state.Filters); err != nil {
		a.ShowError("Views Error", err.Error())
		return nil
	}
	a.filterList.Refresh()
	a.searchInput.Refresh()

	if err := a.views.RecordUsage(v.ID); err != nil {
		a.log.Warn().Err(err).Msg("failed to record view usage")
	}

	return tea.Batch(a.setSorting(state.Sorting), a.setNotice("Loaded view "+v.Name))
}

func (a *App) saveView(msg components.SaveViewMsg) tea.Cmd {
	if a.views == nil {
		return nil
	}

	a.syncer.Flush()
	v, err := a.views.Add(msg.Name, msg.Description, a.state.CurrentTable, a.syncer.Query(), msg.Tags)
	if err != nil {
		a.ShowError("Views Error", err.Error())
		return nil
	}
	a.viewsDialog.SetViews(a.views.ForTable(a.state.CurrentTable))
	return a.setNotice("Saved view " + v.Name)
}

func (a *App) exportViews(format string) tea.Cmd {
	if a.views == nil {
		return nil
	}

	var (
		path string
		err  error
	)
	switch format {
	case "json":
		path, err = a.views.ExportToJSON()
	default:
		path, err = a.views.ExportToCSV()
	}
	if err != nil {
		a.ShowError("Export Error", err.Error())
		return nil
	}
	return a.setNotice("Exported to " + path)
}

func (a *App) setNotice(text string) tea.Cmd {
	a.noticeN++
	a.notice = text
	n := a.noticeN
	return tea.Tick(noticeExpiry, func(time.Time) tea.Msg {
		return clearNoticeMsg{n: n}
	})
}

// View implements tea.Model
func (a *App) View() string {
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		return help.Render(a.state.Width, a.state.Height, a.theme, a.flags)
	case models.ViewsMode:
		a.viewsDialog.Width = min(a.state.Width-4, 90)
		a.viewsDialog.Height = min(a.state.Height-4, 30)
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.viewsDialog.View(),
		)
	}

	return a.renderNormalView()
}

// renderNormalView renders the normal application view
func (a *App) renderNormalView() string {
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("lazytable", a.state.CurrentTable))

	sections := []string{topBar}

	if a.flags.Enabled(models.FlagFloatingBar) {
		a.floatingBar.Width = a.state.Width
		a.floatingBar.Filters = a.instance.State()
		a.floatingBar.Sorting = a.syncer.Sorting()
		a.floatingBar.Query = a.syncer.Query()
		a.floatingBar.Pending = a.syncer.Pending()
		a.floatingBar.Notice = a.notice
		sections = append(sections, a.floatingBar.View())
	}

	sections = append(sections, a.renderToolbar())

	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(a.keyHints(), a.statusRight()))

	used := 0
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	// Panel border takes two lines
	a.tablePanel.Height = max(a.state.Height-used-lipgloss.Height(bottomBar)-2, 3)
	a.tableView.Width = a.tablePanel.Width
	a.tableView.Height = a.tablePanel.Height - 1
	a.tablePanel.Content = a.tableView.View()

	sections = append(sections, a.tablePanel.View(), bottomBar)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderToolbar shows the filter editor when focused and a one-line
// summary of the filters otherwise
func (a *App) renderToolbar() string {
	if !a.advanced() {
		a.searchInput.Width = a.state.Width
		return a.searchInput.View()
	}

	if a.state.FocusedPanel == models.FilterPanel {
		a.filterList.Width = a.state.Width - 2
		a.filterList.Height = max(a.state.Height/2, 8)
		return a.filterList.View()
	}

	return a.renderFilterChips()
}

func (a *App) renderFilterChips() string {
	st := a.instance.State()
	if len(st.Filters) == 0 {
		return lipgloss.NewStyle().
			Foreground(a.theme.Placeholder).
			Padding(0, 1).
			Render("No filters. Press f to add one.")
	}

	chipStyle := lipgloss.NewStyle().Foreground(a.theme.FieldLabel)
	inactiveStyle := lipgloss.NewStyle().Foreground(a.theme.Inactive).Strikethrough(true)
	joinStyle := lipgloss.NewStyle().Foreground(a.theme.JoinOperator)

	var chips []string
	for _, f := range st.Filters {
		chip := a.describeFilter(f)
		if f.State.IsActive {
			chips = append(chips, chipStyle.Render(chip))
		} else {
			chips = append(chips, inactiveStyle.Render(chip))
		}
	}

	line := strings.Join(chips, joinStyle.Render(" "+string(st.JoinOperator)+" "))
	return lipgloss.NewStyle().Padding(0, 1).MaxWidth(a.state.Width).Render(line)
}

// describeFilter renders "Label operator value" for one filter
func (a *App) describeFilter(f models.Filter) string {
	label := f.FieldID
	field, ok := a.instance.Field(f.FieldID)
	if ok && field.Label != "" {
		label = field.Label
	}

	op := string(f.State.Operator)
	if def, err := a.instance.Adapter().Definition(f.Type); err == nil {
		op = def.OperatorLabel(f.State.Operator)
	}

	value := f.State.Value.String()
	if ok && field.Meta != nil {
		var labels []string
		for _, item := range f.State.Value.Strings() {
			labels = append(labels, field.Meta.OptionLabel(item))
		}
		if len(labels) > 0 {
			value = strings.Join(labels, ", ")
		}
	}
	if value == "" {
		value = "…"
	}

	return fmt.Sprintf("%s %s %s", label, op, value)
}

func (a *App) keyHints() string {
	if a.state.FocusedPanel == models.FilterPanel {
		if a.advanced() {
			return "[a] Add | [e] Edit | [o] Operator | [d] Delete | [esc] Table"
		}
		return "[tab] Column | [ctrl+r] Reset | [enter] Table"
	}
	return "[f] Filters | [s] Sort | [v] Views | [y] Copy | [?] Help | [q] Quit"
}

func (a *App) statusRight() string {
	var parts []string
	if a.loading {
		parts = append(parts, "loading…")
	}
	if a.syncer.Pending() {
		parts = append(parts, "syncing…")
	}
	if a.notice != "" && !a.flags.Enabled(models.FlagFloatingBar) {
		parts = append(parts, a.notice)
	}
	return strings.Join(parts, " ")
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Panel border is 2 chars wide
	a.tablePanel.Width = max(a.state.Width-2, 20)
	a.tablePanel.Focused = a.state.FocusedPanel == models.TablePanel
	a.errorOverlay.Width = min(a.state.Width-4, 70)
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(a.state.Width-4, 0)

	leftLen := runewidth.StringWidth(left)
	rightLen := runewidth.StringWidth(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return runewidth.Truncate(left, availableWidth-rightLen, "") + right
		}
		return runewidth.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.log.Error().Str("title", title).Msg(message)
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
