package models

import "fmt"

// Operator is the value of a filter comparison operator (e.g. "iLike", "_eq")
type Operator string

// OperatorOption pairs an operator with its display label
type OperatorOption struct {
	Value Operator `json:"value" yaml:"value"`
	Label string   `json:"label" yaml:"label"`
}

// FilterType names a category of comparable value
type FilterType string

const (
	TypeText        FilterType = "text"
	TypeNumber      FilterType = "number"
	TypeDate        FilterType = "date"
	TypeBoolean     FilterType = "boolean"
	TypeSelect      FilterType = "select"
	TypeMultiSelect FilterType = "multi-select"
	TypeGeometry    FilterType = "geometry"
)

// ComponentName identifies a filter input renderer
type ComponentName string

const (
	ComponentTextInput        ComponentName = "text-input"
	ComponentNumberInput      ComponentName = "number-input"
	ComponentDatePicker       ComponentName = "date-picker"
	ComponentBooleanSelect    ComponentName = "boolean-select"
	ComponentSelectInput      ComponentName = "select-input"
	ComponentMultiSelectInput ComponentName = "multi-select-input"
)

// JoinOperator is the single combinator applied between all filters
type JoinOperator string

const (
	JoinAnd JoinOperator = "and"
	JoinOr  JoinOperator = "or"
)

// Valid reports whether j is "and" or "or"
func (j JoinOperator) Valid() bool {
	return j == JoinAnd || j == JoinOr
}

// ParseJoinOperator converts a raw string into a JoinOperator
func ParseJoinOperator(s string) (JoinOperator, error) {
	j := JoinOperator(s)
	if !j.Valid() {
		return "", fmt.Errorf("invalid join operator %q", s)
	}
	return j, nil
}

// Option is a selectable choice for select and multi-select fields
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// FieldMeta holds type-specific field options
type FieldMeta struct {
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// OptionLabel returns the label for an option value, or the value itself
func (m *FieldMeta) OptionLabel(value string) string {
	if m == nil {
		return value
	}
	for _, opt := range m.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// FilterFieldConfig declares a filterable column
type FilterFieldConfig struct {
	ID        string        `json:"id" yaml:"id"`
	Type      FilterType    `json:"type" yaml:"type"`
	Label     string        `json:"label" yaml:"label"`
	Meta      *FieldMeta    `json:"meta,omitempty" yaml:"meta,omitempty"`
	IsActive  bool          `json:"isActive,omitempty" yaml:"is_active,omitempty"`
	Component ComponentName `json:"component,omitempty" yaml:"component,omitempty"`
}

// FilterState is the mutable part of a filter
type FilterState struct {
	Value    Value
	Operator Operator
	IsActive bool
}

// Filter is an active filter instance.
// ID is unique per instance; FieldID references the column being filtered,
// so several filters may target the same field.
type Filter struct {
	ID      string
	FieldID string
	Type    FilterType
	State   FilterState
}

// Clone returns a deep copy of the filter
func (f Filter) Clone() Filter {
	f.State.Value = f.State.Value.Clone()
	return f
}

// Equal reports whether two filters are identical
func (f Filter) Equal(other Filter) bool {
	return f.ID == other.ID &&
		f.FieldID == other.FieldID &&
		f.Type == other.Type &&
		f.State.Operator == other.State.Operator &&
		f.State.IsActive == other.State.IsActive &&
		f.State.Value.Equal(other.State.Value)
}

// FiltersState is the ordered filter list plus the global join operator
type FiltersState struct {
	Filters      []Filter
	JoinOperator JoinOperator
}

// Clone returns a deep copy of the state
func (s FiltersState) Clone() FiltersState {
	out := FiltersState{JoinOperator: s.JoinOperator}
	if s.Filters != nil {
		out.Filters = make([]Filter, len(s.Filters))
		for i, f := range s.Filters {
			out.Filters[i] = f.Clone()
		}
	}
	return out
}

// ActiveFilters returns the filters that contribute to the query
func (s FiltersState) ActiveFilters() []Filter {
	var active []Filter
	for _, f := range s.Filters {
		if f.State.IsActive {
			active = append(active, f.Clone())
		}
	}
	return active
}

// Equal compares filters in order and the join operator
func (s FiltersState) Equal(other FiltersState) bool {
	if s.JoinOperator != other.JoinOperator || len(s.Filters) != len(other.Filters) {
		return false
	}
	for i := range s.Filters {
		if !s.Filters[i].Equal(other.Filters[i]) {
			return false
		}
	}
	return true
}
