package filter

import "errors"

var (
	// ErrFilterNotFound is returned when a mutation names an id that is no longer present.
	ErrFilterNotFound = errors.New("filter not found")

	// ErrUnknownField is returned when a field id is not in the table's field config.
	ErrUnknownField = errors.New("unknown filter field")

	// ErrTypeMismatch is returned when a filter's type differs from its field's type.
	ErrTypeMismatch = errors.New("filter type does not match field type")

	// ErrDuplicateFilter is returned when an explicit filter reuses an existing id.
	ErrDuplicateFilter = errors.New("duplicate filter id")

	// ErrInvalidJoinOperator is returned for a join operator other than "and" or "or".
	ErrInvalidJoinOperator = errors.New("invalid join operator")

	// ErrIndexOutOfRange is returned when Reorder is given a position outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidConfig is returned by New for a bad field config or option.
	ErrInvalidConfig = errors.New("invalid filter config")
)
