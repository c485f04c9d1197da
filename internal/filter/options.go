package filter

import (
	"github.com/google/uuid"

	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// ChangeFunc receives the complete state after every successful mutation
type ChangeFunc func(filters []models.Filter, joinOperator models.JoinOperator)

// Option configures an Instance.
type Option func(*Instance)

// WithOnChange registers a listener at construction time.
func WithOnChange(fn ChangeFunc) Option {
	return func(in *Instance) {
		in.subscribe(fn)
	}
}

// WithDefaultJoinOperator sets the join operator used initially and after ClearFilters.
func WithDefaultJoinOperator(op models.JoinOperator) Option {
	return func(in *Instance) {
		in.defaultJoin = op
	}
}

// WithIDGenerator replaces the uuid-based filter id generator.
func WithIDGenerator(fn func() string) Option {
	return func(in *Instance) {
		in.newID = fn
	}
}

// WithLogger sets the logger used for rejected mutations.
func WithLogger(log logger.Logger) Option {
	return func(in *Instance) {
		in.log = log.Component("filters")
	}
}

// WithInitialState seeds the instance from decoded state instead of field defaults.
func WithInitialState(state models.FiltersState) Option {
	return func(in *Instance) {
		s := state.Clone()
		in.initial = &s
	}
}

// WithActiveFilters controls whether fields marked active start with a filter.
// It is on by default.
func WithActiveFilters(on bool) Option {
	return func(in *Instance) {
		in.useActive = on
	}
}

func newUUID() string {
	return uuid.NewString()
}
