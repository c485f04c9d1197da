package filter_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
)

func testAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()

	a, err := adapter.New("test", map[models.FilterType]adapter.Definition{
		models.TypeText: {
			Operators: []models.OperatorOption{
				{Value: "contains", Label: "Contains"},
				{Value: "eq", Label: "Is"},
			},
			DefaultOperator: "contains",
			DefaultValue:    models.StringValue(""),
		},
		models.TypeSelect: {
			Operators: []models.OperatorOption{
				{Value: "eq", Label: "Is"},
				{Value: "ne", Label: "Is not"},
			},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
		},
	})
	require.NoError(t, err)
	return a
}

func testFields() []models.FilterFieldConfig {
	return []models.FilterFieldConfig{
		{ID: "title", Type: models.TypeText, Label: "Title"},
		{
			ID:    "status",
			Type:  models.TypeSelect,
			Label: "Status",
			Meta: &models.FieldMeta{Options: []models.Option{
				{Label: "Todo", Value: "todo"},
				{Label: "Done", Value: "done"},
			}},
		},
	}
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("f%d", n)
	}
}

type recorder struct {
	calls []models.FiltersState
}

func (r *recorder) onChange(filters []models.Filter, join models.JoinOperator) {
	r.calls = append(r.calls, models.FiltersState{Filters: filters, JoinOperator: join})
}

func (r *recorder) last() models.FiltersState {
	return r.calls[len(r.calls)-1]
}

func newInstance(t *testing.T, opts ...filter.Option) (*filter.Instance, *recorder) {
	t.Helper()

	rec := &recorder{}
	opts = append([]filter.Option{
		filter.WithIDGenerator(counterIDs()),
		filter.WithOnChange(rec.onChange),
	}, opts...)

	in, err := filter.New(testAdapter(t), testFields(), opts...)
	require.NoError(t, err)
	return in, rec
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	a := testAdapter(t)

	_, err := filter.New(a, []models.FilterFieldConfig{
		{ID: "a", Type: models.TypeText},
		{ID: "a", Type: models.TypeSelect},
	})
	require.ErrorIs(t, err, filter.ErrInvalidConfig)

	_, err = filter.New(a, []models.FilterFieldConfig{{ID: "geom", Type: models.TypeGeometry}})
	require.ErrorIs(t, err, filter.ErrInvalidConfig)
	require.ErrorIs(t, err, adapter.ErrUnknownFilterType)

	_, err = filter.New(a, testFields(), filter.WithDefaultJoinOperator("xor"))
	require.ErrorIs(t, err, filter.ErrInvalidJoinOperator)

	_, err = filter.New(nil, testFields())
	require.ErrorIs(t, err, filter.ErrInvalidConfig)
}

func TestNewSeedsActiveFields(t *testing.T) {
	t.Parallel()

	fields := testFields()
	fields[1].IsActive = true

	in, err := filter.New(testAdapter(t), fields, filter.WithIDGenerator(counterIDs()))
	require.NoError(t, err)

	filters := in.Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, "status", filters[0].FieldID)
	assert.Equal(t, models.Operator("eq"), filters[0].State.Operator)
	assert.True(t, filters[0].State.IsActive)
	assert.Equal(t, []string{"status"}, in.DefaultActiveFieldIDs())

	off, err := filter.New(testAdapter(t), fields, filter.WithActiveFilters(false))
	require.NoError(t, err)
	assert.Empty(t, off.Filters())
}

func TestAddFieldUsesTypeDefaults(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	for _, field := range testFields() {
		f, err := in.AddField(field.ID)
		require.NoError(t, err)

		op, err := in.Adapter().GetDefaultOperator(field.Type)
		require.NoError(t, err)
		value, err := in.Adapter().GetDefaultValue(field.Type)
		require.NoError(t, err)

		assert.Equal(t, op, f.State.Operator)
		assert.True(t, value.Equal(f.State.Value))
		assert.Equal(t, field.Type, f.Type)
		assert.True(t, f.State.IsActive)
	}

	require.Len(t, rec.calls, 2)
	assert.Len(t, rec.last().Filters, 2)
}

func TestAddFieldAllowsSeveralFiltersPerField(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)

	a, err := in.AddField("title")
	require.NoError(t, err)
	b, err := in.AddField("title")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.FieldID, b.FieldID)
	assert.Len(t, in.Filters(), 2)
}

func TestAddFieldUnknown(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	_, err := in.AddField("missing")
	require.ErrorIs(t, err, filter.ErrUnknownField)
	assert.Empty(t, rec.calls)
}

func TestAddFilterExplicit(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)

	f, err := in.AddFilter(models.Filter{
		ID:      "saved",
		FieldID: "status",
		State: models.FilterState{
			Operator: "ne",
			Value:    models.StringValue("done"),
			IsActive: false,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "saved", f.ID)
	assert.Equal(t, models.TypeSelect, f.Type)
	assert.Equal(t, models.Operator("ne"), f.State.Operator)
	assert.False(t, f.State.IsActive)

	_, err = in.AddFilter(models.Filter{ID: "saved", FieldID: "title"})
	require.ErrorIs(t, err, filter.ErrDuplicateFilter)

	_, err = in.AddFilter(models.Filter{FieldID: "title", Type: models.TypeGeometry, State: models.FilterState{Operator: "eq"}})
	require.ErrorIs(t, err, adapter.ErrUnknownFilterType)

	_, err = in.AddFilter(models.Filter{FieldID: "title", Type: models.TypeSelect, State: models.FilterState{Operator: "eq"}})
	require.ErrorIs(t, err, filter.ErrTypeMismatch)

	_, err = in.AddFilter(models.Filter{FieldID: "title", State: models.FilterState{Operator: "ne"}})
	require.ErrorIs(t, err, adapter.ErrInvalidOperator)

	defaulted, err := in.AddFilter(models.Filter{FieldID: "title"})
	require.NoError(t, err)
	assert.Equal(t, models.Operator("contains"), defaulted.State.Operator)
	assert.True(t, defaulted.State.IsActive)

	assert.Len(t, in.Filters(), 2)
}

func TestUpdateFilterRejectsInvalidOperator(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	in, rec := newInstance(t, filter.WithLogger(logger.NewBufferedTestLogger(&buf)))

	f, err := in.AddField("status")
	require.NoError(t, err)
	calls := len(rec.calls)

	err = in.SetOperator(f.ID, "in")
	require.ErrorIs(t, err, adapter.ErrInvalidOperator)

	got, ok := in.Filter(f.ID)
	require.True(t, ok)
	assert.Equal(t, models.Operator("eq"), got.State.Operator)
	assert.Len(t, rec.calls, calls)
	assert.Contains(t, buf.String(), "rejected operator")
}

func TestUpdateFilterMerges(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	f, err := in.AddField("status")
	require.NoError(t, err)

	value := models.StringValue("todo")
	op := models.Operator("ne")
	require.NoError(t, in.UpdateFilter(f.ID, filter.Update{Value: &value, Operator: &op}))

	got, _ := in.Filter(f.ID)
	assert.Equal(t, "todo", got.State.Value.String())
	assert.Equal(t, op, got.State.Operator)
	assert.True(t, got.State.IsActive)

	require.NoError(t, in.SetActive(f.ID, false))
	got, _ = in.Filter(f.ID)
	assert.False(t, got.State.IsActive)
	assert.Equal(t, "todo", got.State.Value.String())

	assert.False(t, rec.last().Filters[0].State.IsActive)
}

func TestUpdateFilterNotFound(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	err := in.SetValue("gone", models.StringValue("x"))
	require.ErrorIs(t, err, filter.ErrFilterNotFound)
	assert.Empty(t, rec.calls)
}

func TestUpdateFilterRejectsInvalidValue(t *testing.T) {
	t.Parallel()

	in, err := filter.New(presets.Default(), []models.FilterFieldConfig{
		{ID: "amount", Type: models.TypeNumber, Label: "Amount"},
	})
	require.NoError(t, err)

	f, err := in.AddField("amount")
	require.NoError(t, err)

	require.NoError(t, in.SetValue(f.ID, models.StringValue("12")))
	require.ErrorIs(t, in.SetValue(f.ID, models.StringValue("twelve")), adapter.ErrInvalidValue)

	got, _ := in.Filter(f.ID)
	assert.Equal(t, "12", got.State.Value.String())
}

func TestRemoveFilterIsIdempotent(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	f, err := in.AddField("title")
	require.NoError(t, err)

	assert.True(t, in.RemoveFilter(f.ID))
	calls := len(rec.calls)

	assert.False(t, in.RemoveFilter(f.ID))
	assert.Len(t, rec.calls, calls)
	assert.Empty(t, in.Filters())
}

func TestSetJoinOperator(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)

	require.NoError(t, in.SetJoinOperator(models.JoinOr))
	assert.Equal(t, models.JoinOr, in.JoinOperator())
	assert.Equal(t, models.JoinOr, rec.last().JoinOperator)

	require.ErrorIs(t, in.SetJoinOperator("xor"), filter.ErrInvalidJoinOperator)
	assert.Equal(t, models.JoinOr, in.JoinOperator())
}

func TestClearFiltersResetsJoin(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t, filter.WithDefaultJoinOperator(models.JoinAnd))

	_, err := in.AddField("title")
	require.NoError(t, err)
	require.NoError(t, in.SetJoinOperator(models.JoinOr))

	in.ClearFilters()

	assert.Empty(t, in.Filters())
	assert.Equal(t, models.JoinAnd, in.JoinOperator())
	assert.Empty(t, rec.last().Filters)
	assert.Equal(t, models.JoinAnd, rec.last().JoinOperator)
}

func TestReorderIsStableMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "first to last", from: 0, to: 3, want: []string{"f2", "f3", "f4", "f1"}},
		{name: "last to first", from: 3, to: 0, want: []string{"f4", "f1", "f2", "f3"}},
		{name: "middle forward", from: 1, to: 2, want: []string{"f1", "f3", "f2", "f4"}},
		{name: "same index", from: 2, to: 2, want: []string{"f1", "f2", "f3", "f4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, _ := newInstance(t)
			for i := 0; i < 4; i++ {
				_, err := in.AddField("title")
				require.NoError(t, err)
			}

			require.NoError(t, in.Reorder(tt.from, tt.to))

			var ids []string
			for _, f := range in.Filters() {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestReorderOutOfRange(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)
	_, err := in.AddField("title")
	require.NoError(t, err)

	require.ErrorIs(t, in.Reorder(0, 1), filter.ErrIndexOutOfRange)
	require.ErrorIs(t, in.Reorder(-1, 0), filter.ErrIndexOutOfRange)
}

func TestSetStateFailsClosed(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)
	_, err := in.AddField("title")
	require.NoError(t, err)
	before := in.State()
	calls := len(rec.calls)

	err = in.SetState(models.FiltersState{
		JoinOperator: models.JoinOr,
		Filters: []models.Filter{
			{ID: "a", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "eq", IsActive: true}},
			{ID: "b", FieldID: "status", Type: models.TypeSelect, State: models.FilterState{Operator: "in", IsActive: true}},
		},
	})
	require.ErrorIs(t, err, adapter.ErrInvalidOperator)
	assert.True(t, before.Equal(in.State()))
	assert.Len(t, rec.calls, calls)

	require.NoError(t, in.SetState(models.FiltersState{
		JoinOperator: models.JoinOr,
		Filters: []models.Filter{
			{ID: "a", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "eq", Value: models.StringValue("x"), IsActive: true}},
		},
	}))
	assert.Equal(t, models.JoinOr, in.JoinOperator())
	assert.Len(t, in.Filters(), 1)
}

func TestSetStateGeneratedIDsSkipExplicitOnes(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)
	title := func(id, value string) models.Filter {
		return models.Filter{
			ID:      id,
			FieldID: "title",
			Type:    models.TypeText,
			State:   models.FilterState{Operator: "eq", Value: models.StringValue(value), IsActive: true},
		}
	}

	require.NoError(t, in.SetState(models.FiltersState{
		Filters: []models.Filter{title("", "first"), title("f1", "second")},
	}))

	got := in.Filters()
	require.Len(t, got, 2)
	assert.Equal(t, "f2", got[0].ID)
	assert.Equal(t, "first", got[0].State.Value.String())
	assert.Equal(t, "f1", got[1].ID)

	err := in.SetState(models.FiltersState{
		Filters: []models.Filter{title("a", "x"), title("a", "y")},
	})
	require.ErrorIs(t, err, filter.ErrDuplicateFilter)
}

func TestResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	fields := testFields()
	fields[0].IsActive = true

	in, err := filter.New(testAdapter(t), fields, filter.WithIDGenerator(counterIDs()))
	require.NoError(t, err)

	_, err = in.AddField("status")
	require.NoError(t, err)
	require.NoError(t, in.SetJoinOperator(models.JoinOr))

	require.NoError(t, in.Reset())

	filters := in.Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, "title", filters[0].FieldID)
	assert.Equal(t, models.JoinAnd, in.JoinOperator())
}

func TestFieldsReportsCurrentUse(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)
	_, err := in.AddField("status")
	require.NoError(t, err)

	fields := in.Fields()
	require.Len(t, fields, 2)
	assert.False(t, fields[0].IsActive)
	assert.True(t, fields[1].IsActive)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	in, _ := newInstance(t)

	var got []models.JoinOperator
	unsubscribe := in.Subscribe(func(_ []models.Filter, join models.JoinOperator) {
		got = append(got, join)
	})

	require.NoError(t, in.SetJoinOperator(models.JoinOr))
	unsubscribe()
	require.NoError(t, in.SetJoinOperator(models.JoinAnd))

	assert.Equal(t, []models.JoinOperator{models.JoinOr}, got)
}

func TestListenerReceivesCopy(t *testing.T) {
	t.Parallel()

	in, rec := newInstance(t)
	f, err := in.AddField("title")
	require.NoError(t, err)

	rec.last().Filters[0].State.Operator = "mutated"

	got, _ := in.Filter(f.ID)
	assert.Equal(t, models.Operator("contains"), got.State.Operator)
}

func TestWithInitialState(t *testing.T) {
	t.Parallel()

	a := testAdapter(t)
	state := models.FiltersState{
		JoinOperator: models.JoinOr,
		Filters: []models.Filter{
			{ID: "x", FieldID: "status", Type: models.TypeSelect, State: models.FilterState{Operator: "ne", Value: models.StringValue("done"), IsActive: true}},
		},
	}

	in, err := filter.New(a, testFields(), filter.WithInitialState(state))
	require.NoError(t, err)
	assert.True(t, state.Equal(in.State()))

	state.Filters[0].FieldID = "missing"
	_, err = filter.New(a, testFields(), filter.WithInitialState(state))
	require.ErrorIs(t, err, filter.ErrUnknownField)
}

func TestPropsAndRender(t *testing.T) {
	t.Parallel()

	defs := map[models.FilterType]adapter.Definition{
		models.TypeSelect: {
			Operators:       []models.OperatorOption{{Value: "eq", Label: "Is"}},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
			Render: func(p adapter.RenderProps) string {
				return fmt.Sprintf("%s %s %s (%d options)", p.Label, p.Operator, p.Value.String(), len(p.Meta.Options))
			},
		},
	}
	a, err := adapter.New("render", defs)
	require.NoError(t, err)

	in, err := filter.New(a, testFields()[1:])
	require.NoError(t, err)

	f, err := in.AddField("status")
	require.NoError(t, err)

	props, err := in.Props(f.ID)
	require.NoError(t, err)
	props.OnChange(models.StringValue("done"))

	out, err := in.Render(f.ID, adapter.RenderProps{Width: 20})
	require.NoError(t, err)
	assert.Equal(t, "Status eq done (2 options)", out)

	_, err = in.Render("missing", adapter.RenderProps{})
	require.ErrorIs(t, err, filter.ErrFilterNotFound)
}
