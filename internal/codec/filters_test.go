package codec_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

func scenarioAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()

	a, err := adapter.New("scenario", map[models.FilterType]adapter.Definition{
		models.TypeText: {
			Operators:       []models.OperatorOption{{Value: "contains", Label: "Contains"}, {Value: "eq", Label: "Is"}},
			DefaultOperator: "contains",
			DefaultValue:    models.StringValue(""),
		},
		models.TypeSelect: {
			Operators:       []models.OperatorOption{{Value: "eq", Label: "Is"}, {Value: "ne", Label: "Is not"}},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
		},
	})
	require.NoError(t, err)
	return a
}

func scenarioFields() []models.FilterFieldConfig {
	return []models.FilterFieldConfig{
		{ID: "title", Type: models.TypeText, Label: "Title"},
		{ID: "status", Type: models.TypeSelect, Label: "Status", Meta: &models.FieldMeta{Options: []models.Option{
			{Label: "Todo", Value: "todo"},
			{Label: "Done", Value: "done"},
		}}},
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	a := presets.Default()

	tests := []struct {
		name  string
		state models.FiltersState
	}{
		{
			name:  "empty",
			state: models.FiltersState{JoinOperator: models.JoinAnd},
		},
		{
			name: "mixed values",
			state: models.FiltersState{
				JoinOperator: models.JoinOr,
				Filters: []models.Filter{
					{ID: "r1", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "iLike", Value: models.StringValue("a&b=c"), IsActive: true}},
					{ID: "r2", FieldID: "tags", Type: models.TypeMultiSelect, State: models.FilterState{Operator: "containsAll", Value: models.ListValue("x", "y"), IsActive: true}},
					{ID: "r3", FieldID: "due", Type: models.TypeDate, State: models.FilterState{Operator: "isEmpty", Value: models.NullValue(), IsActive: false}},
					{ID: "r4", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "notILike", Value: models.StringValue("ünïcode"), IsActive: true}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := codec.Serialize(tt.state)
			require.NoError(t, err)

			got, err := codec.Deserialize(s, a)
			require.NoError(t, err)
			assert.True(t, codec.EqualState(tt.state, got), "got %+v", got)
		})
	}
}

func TestMarshalFiltersWireShape(t *testing.T) {
	t.Parallel()

	raw, err := codec.MarshalFilters([]models.Filter{
		{ID: "row-1", FieldID: "status", Type: models.TypeSelect, State: models.FilterState{Operator: "eq", Value: models.StringValue("done"), IsActive: true}},
		{ID: "row-2", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "iLike", Value: models.StringValue("x"), IsActive: false}},
	})
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, map[string]any{
		"id":       "status",
		"value":    "done",
		"type":     "select",
		"operator": "eq",
		"rowId":    "row-1",
	}, entries[0])
	assert.Equal(t, false, entries[1]["isActive"])
}

func TestUnmarshalFailsClosedOnUnknownType(t *testing.T) {
	t.Parallel()

	raw := `[
		{"id":"title","value":"a","type":"text","operator":"iLike","rowId":"1"},
		{"id":"shape","value":"POINT(1 2)","type":"geometry","operator":"_intersects","rowId":"2"},
		{"id":"status","value":"done","type":"select","operator":"eq","rowId":"3"}
	]`

	filters, err := codec.UnmarshalFilters(raw, presets.Default())
	require.ErrorIs(t, err, codec.ErrParseFailure)
	require.ErrorIs(t, err, adapter.ErrUnknownFilterType)
	assert.Nil(t, filters)

	values := url.Values{}
	values.Set(codec.ParamFilters, raw)
	values.Set(codec.ParamJoinOperator, "or")
	def := models.FiltersState{JoinOperator: models.JoinAnd}
	got := codec.DeserializeOr(values.Encode(), presets.Default(), def)
	assert.True(t, def.Equal(got))
	assert.Empty(t, got.Filters)
}

func TestUnmarshalRejects(t *testing.T) {
	t.Parallel()

	a := presets.Default()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{{`},
		{name: "not an array", raw: `{"id":"title"}`},
		{name: "invalid operator", raw: `[{"id":"status","value":"a","type":"select","operator":"iLike","rowId":"1"}]`},
		{name: "numeric value", raw: `[{"id":"title","value":3,"type":"text","operator":"iLike","rowId":"1"}]`},
		{name: "invalid number", raw: `[{"id":"n","value":"abc","type":"number","operator":"eq","rowId":"1"}]`},
		{name: "missing rowId", raw: `[{"id":"title","value":"a","type":"text","operator":"iLike"}]`},
		{name: "missing id", raw: `[{"value":"a","type":"text","operator":"iLike","rowId":"1"}]`},
		{name: "duplicate rowId", raw: `[{"id":"title","value":"a","type":"text","operator":"iLike","rowId":"1"},{"id":"title","value":"b","type":"text","operator":"iLike","rowId":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := codec.UnmarshalFilters(tt.raw, a)
			require.ErrorIs(t, err, codec.ErrParseFailure)
		})
	}
}

func TestUnmarshalWithKnownFields(t *testing.T) {
	t.Parallel()

	a := scenarioAdapter(t)
	fields := scenarioFields()

	_, err := codec.UnmarshalFilters(`[{"id":"owner","value":"a","type":"text","operator":"eq","rowId":"1"}]`, a, codec.WithKnownFields(fields))
	require.ErrorIs(t, err, codec.ErrParseFailure)

	_, err = codec.UnmarshalFilters(`[{"id":"title","value":"a","type":"select","operator":"eq","rowId":"1"}]`, a, codec.WithKnownFields(fields))
	require.ErrorIs(t, err, codec.ErrParseFailure)

	filters, err := codec.UnmarshalFilters(`[{"id":"title","value":"a","type":"text","operator":"eq","rowId":"1"}]`, a, codec.WithKnownFields(fields))
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.True(t, filters[0].State.IsActive)
}

func TestDeserializeRejectsBadJoin(t *testing.T) {
	t.Parallel()

	_, err := codec.Deserialize("filters=%5B%5D&joinOperator=xor", presets.Default())
	require.ErrorIs(t, err, codec.ErrParseFailure)

	_, err = codec.Deserialize("joinOperator=and", presets.Default())
	require.ErrorIs(t, err, codec.ErrParseFailure)
}

func TestTextSelectScenario(t *testing.T) {
	t.Parallel()

	a := scenarioAdapter(t)
	in, err := filter.New(a, scenarioFields())
	require.NoError(t, err)

	_, err = in.AddField("title")
	require.NoError(t, err)
	status, err := in.AddField("status")
	require.NoError(t, err)
	require.NoError(t, in.SetJoinOperator(models.JoinOr))

	s, err := codec.Serialize(in.State())
	require.NoError(t, err)

	got, err := codec.Deserialize(s, a, codec.WithKnownFields(scenarioFields()))
	require.NoError(t, err)
	require.Len(t, got.Filters, 2)
	assert.Equal(t, "title", got.Filters[0].FieldID)
	assert.Equal(t, "status", got.Filters[1].FieldID)
	assert.Equal(t, models.JoinOr, got.JoinOperator)
	assert.True(t, in.State().Equal(got))

	// An operator outside the select set is refused and the filter keeps "eq".
	err = in.SetOperator(status.ID, "in")
	require.ErrorIs(t, err, adapter.ErrInvalidOperator)
	current, ok := in.Filter(status.ID)
	require.True(t, ok)
	assert.Equal(t, models.Operator("eq"), current.State.Operator)
}

func TestEqualFiltersIgnoresInstanceIDs(t *testing.T) {
	t.Parallel()

	a := []models.Filter{{ID: "1", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "eq", Value: models.StringValue("x")}}}
	b := []models.Filter{{ID: "2", FieldID: "title", Type: models.TypeText, State: models.FilterState{Operator: "eq", Value: models.StringValue("x"), IsActive: true}}}

	assert.True(t, codec.EqualFilters(a, b))

	b[0].State.Value = models.ListValue("x")
	assert.False(t, codec.EqualFilters(a, b))
	assert.False(t, codec.EqualFilters(a, nil))
}
