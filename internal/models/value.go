package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ValueKind tags the shape held by a Value
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueString:
		return "string"
	case ValueList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a filter value as it travels on the wire: null, a string, or a list of strings.
// Numbers, dates and booleans are carried in their canonical string form.
type Value struct {
	kind ValueKind
	str  string
	list []string
}

// NullValue returns the empty value
func NullValue() Value {
	return Value{}
}

// StringValue wraps a scalar string
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// ListValue wraps a list of strings. A nil list becomes an empty list.
func ListValue(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{kind: ValueList, list: list}
}

// Kind returns the value shape
func (v Value) Kind() ValueKind {
	return v.kind
}

// String returns the scalar string; lists are joined with ", "
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Strings returns the value as a list; a scalar becomes a one-element list
func (v Value) Strings() []string {
	switch v.kind {
	case ValueString:
		return []string{v.str}
	case ValueList:
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	default:
		return nil
	}
}

// IsEmpty reports null, "" or an empty list
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueString:
		return v.str == ""
	case ValueList:
		return len(v.list) == 0
	default:
		return true
	}
}

// Contains reports whether a list value holds item
func (v Value) Contains(item string) bool {
	if v.kind == ValueString {
		return v.str == item
	}
	for _, s := range v.list {
		if s == item {
			return true
		}
	}
	return false
}

// Toggle adds item to a list value or removes it when present
func (v Value) Toggle(item string) Value {
	items := v.Strings()
	for i, s := range items {
		if s == item {
			return ListValue(append(items[:i], items[i+1:]...)...)
		}
	}
	return ListValue(append(items, item)...)
}

// Equal compares kind and contents
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == other.str
	case ValueList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
	}
	return true
}

// Clone returns a copy that shares no backing array
func (v Value) Clone() Value {
	if v.kind == ValueList {
		return ListValue(v.list...)
	}
	return v
}

// Float parses a scalar value as a number
func (v Value) Float() (float64, error) {
	if v.kind != ValueString {
		return 0, fmt.Errorf("cannot read %s value as number", v.kind)
	}
	return cast.ToFloat64E(strings.TrimSpace(v.str))
}

// Bool parses a scalar value as a boolean
func (v Value) Bool() (bool, error) {
	if v.kind != ValueString {
		return false, fmt.Errorf("cannot read %s value as boolean", v.kind)
	}
	return cast.ToBoolE(strings.TrimSpace(v.str))
}

// Time parses a scalar value as a date or timestamp
func (v Value) Time() (time.Time, error) {
	if v.kind != ValueString {
		return time.Time{}, fmt.Errorf("cannot read %s value as date", v.kind)
	}
	return cast.ToTimeE(strings.TrimSpace(v.str))
}

// MarshalJSON encodes null, a string, or an array of strings
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string, or an array of strings
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case 'n':
		if string(trimmed) != "null" {
			return fmt.Errorf("invalid value %s", trimmed)
		}
		*v = NullValue()
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		*v = StringValue(s)
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("invalid list value: %w", err)
		}
		*v = ListValue(list...)
	default:
		return fmt.Errorf("value must be a string, a list of strings or null, got %s", trimmed)
	}
	return nil
}
