package app_test

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazytable/internal/app"
	"github.com/rebeliceyang/lazytable/internal/config"
	"github.com/rebeliceyang/lazytable/internal/history"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/components"
	"github.com/rebeliceyang/lazytable/internal/views"
)

func newApp(t *testing.T, opts app.Options) *app.App {
	t.Helper()

	if opts.Source == nil {
		opts.Source = app.NewDemoSource(40)
	}
	if opts.Config == nil {
		opts.Config = config.GetDefaults()
	}
	opts.Logger = logger.Nop()

	a, err := app.New(opts)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	data, err := opts.Source.Load(context.Background(), a.Sorting(), 0, 200)
	require.NoError(t, err)
	a.Update(app.TableDataLoadedMsg{Data: data})

	return a
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewStartsFromDefaults(t *testing.T) {
	t.Parallel()

	a := newApp(t, app.Options{})

	filters := a.Instance().Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, "status", filters[0].FieldID)
	assert.Empty(t, a.Query())
	assert.Empty(t, a.Sorting())
}

func TestNewRestoresQuery(t *testing.T) {
	t.Parallel()

	a := newApp(t, app.Options{
		Query: `?joinOperator=or&sort=[{"id":"title","desc":true}]`,
	})

	assert.Equal(t, models.JoinOr, a.Instance().JoinOperator())
	assert.Equal(t, models.SortingState{{ID: "title", Desc: true}}, a.Sorting())
}

func TestNewFallsBackPerParameter(t *testing.T) {
	t.Parallel()

	a := newApp(t, app.Options{
		Query: `filters=not-json&sort=[{"id":"missing","desc":true}]&joinOperator=or`,
	})

	filters := a.Instance().Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, "status", filters[0].FieldID)
	assert.Empty(t, a.Sorting())
	assert.Equal(t, models.JoinOr, a.Instance().JoinOperator())
}

func TestSortKeyCyclesSelectedColumn(t *testing.T) {
	t.Parallel()

	a := newApp(t, app.Options{})

	a.Update(key("s"))
	assert.Equal(t, models.SortingState{{ID: "id", Desc: false}}, a.Sorting())
	assert.Contains(t, a.Query(), "sort=")

	a.Update(key("s"))
	assert.Equal(t, models.SortingState{{ID: "id", Desc: true}}, a.Sorting())

	a.Update(key("S"))
	assert.Empty(t, a.Sorting())
	assert.Empty(t, a.Query())
}

func TestFeatureFlagKeys(t *testing.T) {
	t.Parallel()

	cfg := config.GetDefaults()
	cfg.Features.Enabled = []string{string(models.FlagAdvancedTable)}
	a := newApp(t, app.Options{Config: cfg})

	assert.True(t, a.Flags().Enabled(models.FlagAdvancedTable))
	assert.False(t, a.Flags().Enabled(models.FlagFloatingBar))

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	a.Update(tea.KeyMsg{Type: tea.KeyF2})

	assert.False(t, a.Flags().Enabled(models.FlagAdvancedTable))
	assert.True(t, a.Flags().Enabled(models.FlagFloatingBar))
}

func TestViewRenders(t *testing.T) {
	t.Parallel()

	cfg := config.GetDefaults()
	cfg.Features.Enabled = []string{string(models.FlagAdvancedTable), string(models.FlagFloatingBar)}
	a := newApp(t, app.Options{Config: cfg})

	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := a.View()
	assert.Contains(t, out, "lazytable")
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "TASK-")

	a.Update(key("?"))
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
}

func TestAdvancedFilterEditing(t *testing.T) {
	t.Parallel()

	cfg := config.GetDefaults()
	cfg.Features.Enabled = []string{string(models.FlagAdvancedTable)}
	a := newApp(t, app.Options{Config: cfg})

	a.Update(key("f"))
	a.Update(key("t"))
	assert.Equal(t, models.JoinOr, a.Instance().JoinOperator())
	assert.Contains(t, a.Query(), "joinOperator=or")

	a.Update(key("d"))
	assert.Empty(t, a.Instance().Filters())
}

func TestHistoryRestoresLastQuery(t *testing.T) {
	t.Parallel()

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	first := newApp(t, app.Options{Source: app.NewDemoSource(10), History: store})
	first.Update(key("l"))
	first.Update(key("s"))
	first.Close()

	entries, err := store.GetRecent("demo.tasks", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first.Query(), entries[0].Query)

	second := newApp(t, app.Options{Source: app.NewDemoSource(10), History: store})
	assert.Equal(t, models.SortingState{{ID: "title", Desc: false}}, second.Sorting())
}

func TestSaveAndLoadView(t *testing.T) {
	t.Parallel()

	mgr, err := views.NewManager(t.TempDir(), nil)
	require.NoError(t, err)

	a := newApp(t, app.Options{Views: mgr})

	a.Update(key("s"))
	a.Update(components.SaveViewMsg{Name: "By id", Tags: []string{"triage"}})

	saved := mgr.ForTable("demo.tasks")
	require.Len(t, saved, 1)
	assert.Equal(t, a.Query(), saved[0].Query)

	a.Update(key("S"))
	require.Empty(t, a.Sorting())

	a.Update(components.LoadViewMsg{View: saved[0]})
	assert.Equal(t, models.SortingState{{ID: "id", Desc: false}}, a.Sorting())
	assert.Equal(t, 1, mgr.ForTable("demo.tasks")[0].UsageCount)
}

func TestLoadViewRejectsStaleFilters(t *testing.T) {
	t.Parallel()

	mgr, err := views.NewManager(t.TempDir(), nil)
	require.NoError(t, err)
	a := newApp(t, app.Options{Views: mgr})

	before := a.Instance().State()
	a.Update(components.LoadViewMsg{View: models.SavedView{
		Name:  "stale",
		Table: "demo.tasks",
		Query: `filters=[{"id":"gone","type":"text","value":"x","operator":"iLike","rowId":"r1"}]`,
	}})

	assert.True(t, before.Equal(a.Instance().State()))
	assert.Contains(t, a.View(), "no longer matches")
}

func TestDemoSourceSortsAndPages(t *testing.T) {
	t.Parallel()

	src := app.NewDemoSource(40)
	data, err := src.Load(context.Background(), models.SortingState{{ID: "estimated_hours", Desc: true}}, 0, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(40), data.TotalRows)
	require.Len(t, data.Rows, 5)
	for i := 1; i < len(data.Rows); i++ {
		prev, err := strconv.Atoi(data.Rows[i-1][5])
		require.NoError(t, err)
		cur, err := strconv.Atoi(data.Rows[i][5])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prev, cur)
	}

	tail, err := src.Load(context.Background(), nil, 38, 5)
	require.NoError(t, err)
	assert.Len(t, tail.Rows, 2)
}
