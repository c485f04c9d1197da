// Package codec converts filter and sort state to and from URL query values.
//
// Decoding fails closed: one bad entry rejects the whole payload, and callers
// fall back to their defaults instead of applying part of it.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// ErrParseFailure wraps every decoding error
var ErrParseFailure = errors.New("failed to parse state")

// wireFilter is one entry of the filters query parameter.
// id is the column and rowId the filter instance; isActive is only written when false.
type wireFilter struct {
	ID       string            `json:"id"`
	Value    models.Value      `json:"value"`
	Type     models.FilterType `json:"type"`
	Operator models.Operator   `json:"operator"`
	RowID    string            `json:"rowId"`
	IsActive *bool             `json:"isActive,omitempty"`
}

type decodeOptions struct {
	knownFields map[string]models.FilterType
}

// DecodeOption tightens filter decoding
type DecodeOption func(*decodeOptions)

// WithKnownFields rejects filters on columns outside fields, or whose type
// differs from the field's declared type.
func WithKnownFields(fields []models.FilterFieldConfig) DecodeOption {
	return func(o *decodeOptions) {
		o.knownFields = make(map[string]models.FilterType, len(fields))
		for _, f := range fields {
			o.knownFields[f.ID] = f.Type
		}
	}
}

// MarshalFilters encodes filters as the JSON array carried in the filters parameter
func MarshalFilters(filters []models.Filter) (string, error) {
	out := make([]wireFilter, len(filters))
	for i, f := range filters {
		out[i] = wireFilter{
			ID:       f.FieldID,
			Value:    f.State.Value,
			Type:     f.Type,
			Operator: f.State.Operator,
			RowID:    f.ID,
		}
		if !f.State.IsActive {
			inactive := false
			out[i].IsActive = &inactive
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}
	return string(data), nil
}

// UnmarshalFilters decodes the filters parameter, validating every entry against a
func UnmarshalFilters(s string, a *adapter.Adapter, opts ...DecodeOption) ([]models.Filter, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var entries []wireFilter
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return nil, fmt.Errorf("%w: filters: %v", ErrParseFailure, err)
	}

	filters := make([]models.Filter, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		f, err := decodeFilter(e, a, o)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d: %w", ErrParseFailure, i, err)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%w: filter %d: duplicate rowId %q", ErrParseFailure, i, f.ID)
		}
		seen[f.ID] = true
		filters = append(filters, f)
	}
	return filters, nil
}

func decodeFilter(e wireFilter, a *adapter.Adapter, o decodeOptions) (models.Filter, error) {
	if e.ID == "" {
		return models.Filter{}, fmt.Errorf("missing id")
	}
	if e.RowID == "" {
		return models.Filter{}, fmt.Errorf("missing rowId")
	}
	if err := a.ValidateOperator(e.Type, e.Operator); err != nil {
		return models.Filter{}, err
	}
	if err := a.ValidateValue(e.Type, e.Value); err != nil {
		return models.Filter{}, err
	}
	if o.knownFields != nil {
		typ, ok := o.knownFields[e.ID]
		if !ok {
			return models.Filter{}, fmt.Errorf("unknown column %q", e.ID)
		}
		if typ != e.Type {
			return models.Filter{}, fmt.Errorf("column %q is %q, got %q", e.ID, typ, e.Type)
		}
	}

	active := true
	if e.IsActive != nil {
		active = *e.IsActive
	}

	return models.Filter{
		ID:      e.RowID,
		FieldID: e.ID,
		Type:    e.Type,
		State: models.FilterState{
			Value:    e.Value,
			Operator: e.Operator,
			IsActive: active,
		},
	}, nil
}

// Serialize encodes state as "filters=<json>&joinOperator=<and|or>"
func Serialize(state models.FiltersState) (string, error) {
	if !state.JoinOperator.Valid() {
		return "", fmt.Errorf("invalid join operator %q", state.JoinOperator)
	}

	filters, err := MarshalFilters(state.Filters)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set(ParamFilters, filters)
	values.Set(ParamJoinOperator, string(state.JoinOperator))
	return values.Encode(), nil
}

// Deserialize is the inverse of Serialize
func Deserialize(s string, a *adapter.Adapter, opts ...DecodeOption) (models.FiltersState, error) {
	values, err := url.ParseQuery(s)
	if err != nil {
		return models.FiltersState{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	join, err := models.ParseJoinOperator(values.Get(ParamJoinOperator))
	if err != nil {
		return models.FiltersState{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	raw := values.Get(ParamFilters)
	if raw == "" {
		return models.FiltersState{}, fmt.Errorf("%w: missing %s", ErrParseFailure, ParamFilters)
	}

	filters, err := UnmarshalFilters(raw, a, opts...)
	if err != nil {
		return models.FiltersState{}, err
	}

	return models.FiltersState{Filters: filters, JoinOperator: join}, nil
}

// DeserializeOr returns def when s cannot be decoded
func DeserializeOr(s string, a *adapter.Adapter, def models.FiltersState, opts ...DecodeOption) models.FiltersState {
	state, err := Deserialize(s, a, opts...)
	if err != nil {
		return def.Clone()
	}
	return state
}

// EqualFilters compares column, value, type and operator position by position.
// Instance ids and activation are ignored, matching how two URLs describe the same query.
func EqualFilters(a, b []models.Filter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].FieldID != b[i].FieldID ||
			a[i].Type != b[i].Type ||
			a[i].State.Operator != b[i].State.Operator ||
			!a[i].State.Value.Equal(b[i].State.Value) {
			return false
		}
	}
	return true
}

// EqualState compares everything that is serialized, including ids and activation
func EqualState(a, b models.FiltersState) bool {
	return a.Equal(b)
}
