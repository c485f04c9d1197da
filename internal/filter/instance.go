// Package filter holds the live filter list of one table view.
//
// An Instance is owned by a single view and is not safe for concurrent use.
// Every successful mutation calls the registered listeners synchronously with
// the complete new state before returning.
package filter

import (
	"fmt"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// Update is a partial filter state; nil fields are left unchanged
type Update struct {
	Value    *models.Value
	Operator *models.Operator
	IsActive *bool
}

type listener struct {
	id int
	fn ChangeFunc
}

// Instance owns the ordered filters and join operator of one table view
type Instance struct {
	adapter    *adapter.Adapter
	fields     []models.FilterFieldConfig
	fieldIndex map[string]int

	state       models.FiltersState
	defaultJoin models.JoinOperator
	useActive   bool
	initial     *models.FiltersState

	newID        func() string
	listeners    []listener
	nextListener int

	log logger.Logger
}

// New builds an instance for the given fields.
// Field ids must be unique and every field type must be known to a.
func New(a *adapter.Adapter, fields []models.FilterFieldConfig, opts ...Option) (*Instance, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: adapter is required", ErrInvalidConfig)
	}

	in := &Instance{
		adapter:     a,
		fieldIndex:  make(map[string]int, len(fields)),
		defaultJoin: models.JoinAnd,
		useActive:   true,
		newID:       newUUID,
		log:         logger.Nop(),
	}

	for i, f := range fields {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: field %d has no id", ErrInvalidConfig, i)
		}
		if _, dup := in.fieldIndex[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate field id %q", ErrInvalidConfig, f.ID)
		}
		if !a.Has(f.Type) {
			return nil, fmt.Errorf("%w: field %q: %w %q", ErrInvalidConfig, f.ID, adapter.ErrUnknownFilterType, f.Type)
		}
		in.fieldIndex[f.ID] = i
		in.fields = append(in.fields, f)
	}

	for _, opt := range opts {
		opt(in)
	}

	if !in.defaultJoin.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJoinOperator, in.defaultJoin)
	}

	if in.initial != nil {
		state, err := in.validateState(*in.initial)
		if err != nil {
			return nil, fmt.Errorf("invalid initial state: %w", err)
		}
		in.state = state
		in.initial = nil
	} else {
		state, err := in.defaultState()
		if err != nil {
			return nil, err
		}
		in.state = state
	}

	return in, nil
}

// Adapter returns the adapter the instance validates against
func (in *Instance) Adapter() *adapter.Adapter {
	return in.adapter
}

// State returns a copy of the current state
func (in *Instance) State() models.FiltersState {
	return in.state.Clone()
}

// Filters returns a copy of the ordered filter list
func (in *Instance) Filters() []models.Filter {
	return in.state.Clone().Filters
}

// JoinOperator returns the global join operator
func (in *Instance) JoinOperator() models.JoinOperator {
	return in.state.JoinOperator
}

// DefaultJoinOperator returns the join operator restored by ClearFilters and Reset
func (in *Instance) DefaultJoinOperator() models.JoinOperator {
	return in.defaultJoin
}

// Filter returns the filter with the given id
func (in *Instance) Filter(id string) (models.Filter, bool) {
	i := in.indexOf(id)
	if i < 0 {
		return models.Filter{}, false
	}
	return in.state.Filters[i].Clone(), true
}

// Field returns the config of a field
func (in *Instance) Field(id string) (models.FilterFieldConfig, bool) {
	i, ok := in.fieldIndex[id]
	if !ok {
		return models.FilterFieldConfig{}, false
	}
	return in.fields[i], true
}

// Fields returns the field config with IsActive set for fields that currently have a filter
func (in *Instance) Fields() []models.FilterFieldConfig {
	used := make(map[string]bool, len(in.state.Filters))
	for _, f := range in.state.Filters {
		used[f.FieldID] = true
	}

	out := make([]models.FilterFieldConfig, len(in.fields))
	for i, f := range in.fields {
		f.IsActive = used[f.ID]
		out[i] = f
	}
	return out
}

// DefaultActiveFieldIDs returns the ids of fields configured as active
func (in *Instance) DefaultActiveFieldIDs() []string {
	var ids []string
	for _, f := range in.fields {
		if f.IsActive {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Subscribe registers fn for change notifications and returns a function that removes it
func (in *Instance) Subscribe(fn ChangeFunc) (unsubscribe func()) {
	id := in.subscribe(fn)
	return func() {
		for i, l := range in.listeners {
			if l.id == id {
				in.listeners = append(in.listeners[:i], in.listeners[i+1:]...)
				return
			}
		}
	}
}

func (in *Instance) subscribe(fn ChangeFunc) int {
	in.nextListener++
	in.listeners = append(in.listeners, listener{id: in.nextListener, fn: fn})
	return in.nextListener
}

// AddField appends a filter for fieldID using its type's default operator and value
func (in *Instance) AddField(fieldID string) (models.Filter, error) {
	field, ok := in.Field(fieldID)
	if !ok {
		return models.Filter{}, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}

	f, err := in.generate(field)
	if err != nil {
		return models.Filter{}, err
	}

	in.state.Filters = append(in.state.Filters, f)
	in.notify()
	return f.Clone(), nil
}

// AddFilter appends an explicit filter.
// An empty ID gets a fresh one and an empty Type is taken from the field.
// An empty operator selects the type's default operator and value; otherwise
// the given operator and value are validated and kept as they are.
func (in *Instance) AddFilter(f models.Filter) (models.Filter, error) {
	if f.ID == "" {
		f.ID = in.uniqueID()
	} else if in.indexOf(f.ID) >= 0 {
		return models.Filter{}, fmt.Errorf("%w: %q", ErrDuplicateFilter, f.ID)
	}

	if f.State.Operator == "" {
		field, ok := in.Field(f.FieldID)
		if !ok {
			return models.Filter{}, fmt.Errorf("%w: %q", ErrUnknownField, f.FieldID)
		}
		if f.Type == "" {
			f.Type = field.Type
		}
		op, err := in.adapter.GetDefaultOperator(f.Type)
		if err != nil {
			return models.Filter{}, err
		}
		value, err := in.adapter.GetDefaultValue(f.Type)
		if err != nil {
			return models.Filter{}, err
		}
		f.State = models.FilterState{Operator: op, Value: value, IsActive: true}
	}

	f, err := in.validateFilter(f)
	if err != nil {
		in.log.Warn().Err(err).Str("field", f.FieldID).Msg("rejected filter")
		return models.Filter{}, err
	}

	in.state.Filters = append(in.state.Filters, f)
	in.notify()
	return f.Clone(), nil
}

// UpdateFilter merges u into the filter with the given id.
// A rejected operator or value leaves the filter unchanged.
func (in *Instance) UpdateFilter(id string, u Update) error {
	i := in.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFilterNotFound, id)
	}

	f := in.state.Filters[i].Clone()

	if u.Operator != nil {
		if err := in.adapter.ValidateOperator(f.Type, *u.Operator); err != nil {
			in.log.Warn().Err(err).Str("filter", id).Msg("rejected operator")
			return err
		}
		f.State.Operator = *u.Operator
	}
	if u.Value != nil {
		if err := in.adapter.ValidateValue(f.Type, *u.Value); err != nil {
			in.log.Warn().Err(err).Str("filter", id).Msg("rejected value")
			return err
		}
		f.State.Value = u.Value.Clone()
	}
	if u.IsActive != nil {
		f.State.IsActive = *u.IsActive
	}

	in.state.Filters[i] = f
	in.notify()
	return nil
}

// SetValue is shorthand for an update that only changes the value
func (in *Instance) SetValue(id string, v models.Value) error {
	return in.UpdateFilter(id, Update{Value: &v})
}

// SetOperator is shorthand for an update that only changes the operator
func (in *Instance) SetOperator(id string, op models.Operator) error {
	return in.UpdateFilter(id, Update{Operator: &op})
}

// SetActive is shorthand for an update that only changes query inclusion
func (in *Instance) SetActive(id string, active bool) error {
	return in.UpdateFilter(id, Update{IsActive: &active})
}

// RemoveFilter deletes the filter with the given id and reports whether it existed
func (in *Instance) RemoveFilter(id string) bool {
	i := in.indexOf(id)
	if i < 0 {
		return false
	}

	in.state.Filters = append(in.state.Filters[:i:i], in.state.Filters[i+1:]...)
	in.notify()
	return true
}

// SetJoinOperator sets the join operator applied between all filters
func (in *Instance) SetJoinOperator(op models.JoinOperator) error {
	if !op.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidJoinOperator, op)
	}

	in.state.JoinOperator = op
	in.notify()
	return nil
}

// ClearFilters removes every filter and restores the default join operator
func (in *Instance) ClearFilters() {
	in.state = models.FiltersState{JoinOperator: in.defaultJoin}
	in.notify()
}

// Reorder moves the filter at from to position to, keeping the others in order
func (in *Instance) Reorder(from, to int) error {
	n := len(in.state.Filters)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d filters", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	moved := in.state.Filters[from]
	rest := make([]models.Filter, 0, n)
	rest = append(rest, in.state.Filters[:from]...)
	rest = append(rest, in.state.Filters[from+1:]...)

	out := make([]models.Filter, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	in.state.Filters = out
	in.notify()
	return nil
}

// SetState replaces the whole state after validating every filter.
// Nothing is applied when any filter is rejected.
func (in *Instance) SetState(state models.FiltersState) error {
	valid, err := in.validateState(state)
	if err != nil {
		in.log.Warn().Err(err).Msg("rejected filter state")
		return err
	}

	in.state = valid
	in.notify()
	return nil
}

// Reset restores the filters seeded from field defaults
func (in *Instance) Reset() error {
	state, err := in.defaultState()
	if err != nil {
		return err
	}

	in.state = state
	in.notify()
	return nil
}

// Props builds the renderer props of a filter.
// OnChange applies the new value through UpdateFilter.
func (in *Instance) Props(id string) (adapter.RenderProps, error) {
	f, ok := in.Filter(id)
	if !ok {
		return adapter.RenderProps{}, fmt.Errorf("%w: %q", ErrFilterNotFound, id)
	}

	props := adapter.RenderProps{
		Value:    f.State.Value,
		Operator: f.State.Operator,
		OnChange: func(v models.Value) {
			if err := in.SetValue(id, v); err != nil {
				in.log.Debug().Err(err).Str("filter", id).Msg("render change dropped")
			}
		},
	}
	if field, ok := in.Field(f.FieldID); ok {
		props.Label = field.Label
		props.Meta = field.Meta
	}
	return props, nil
}

// Render draws a filter with its type's own renderer.
// Width, focus and theme are taken from base.
func (in *Instance) Render(id string, base adapter.RenderProps) (string, error) {
	props, err := in.Props(id)
	if err != nil {
		return "", err
	}
	props.Width = base.Width
	props.Focused = base.Focused
	props.Theme = base.Theme

	f, _ := in.Filter(id)
	return in.adapter.Render(f.Type, props)
}

func (in *Instance) notify() {
	if len(in.listeners) == 0 {
		return
	}

	// Listeners may unsubscribe while being called.
	listeners := make([]listener, len(in.listeners))
	copy(listeners, in.listeners)

	for _, l := range listeners {
		snapshot := in.state.Clone()
		l.fn(snapshot.Filters, snapshot.JoinOperator)
	}
}

func (in *Instance) indexOf(id string) int {
	for i, f := range in.state.Filters {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (in *Instance) uniqueID() string {
	for {
		id := in.newID()
		if id != "" && in.indexOf(id) < 0 {
			return id
		}
	}
}

func (in *Instance) generate(field models.FilterFieldConfig) (models.Filter, error) {
	op, err := in.adapter.GetDefaultOperator(field.Type)
	if err != nil {
		return models.Filter{}, err
	}
	value, err := in.adapter.GetDefaultValue(field.Type)
	if err != nil {
		return models.Filter{}, err
	}

	return models.Filter{
		ID:      in.uniqueID(),
		FieldID: field.ID,
		Type:    field.Type,
		State: models.FilterState{
			Value:    value,
			Operator: op,
			IsActive: true,
		},
	}, nil
}

func (in *Instance) defaultState() (models.FiltersState, error) {
	state := models.FiltersState{JoinOperator: in.defaultJoin}
	if !in.useActive {
		return state, nil
	}

	for _, field := range in.fields {
		if !field.IsActive {
			continue
		}
		f, err := in.generate(field)
		if err != nil {
			return models.FiltersState{}, err
		}
		state.Filters = append(state.Filters, f)
	}
	return state, nil
}

func (in *Instance) validateFilter(f models.Filter) (models.Filter, error) {
	field, ok := in.Field(f.FieldID)
	if !ok {
		return f, fmt.Errorf("%w: %q", ErrUnknownField, f.FieldID)
	}
	if f.Type == "" {
		f.Type = field.Type
	}
	if !in.adapter.Has(f.Type) {
		return f, fmt.Errorf("%w: %q", adapter.ErrUnknownFilterType, f.Type)
	}
	if f.Type != field.Type {
		return f, fmt.Errorf("%w: field %q is %q, got %q", ErrTypeMismatch, f.FieldID, field.Type, f.Type)
	}
	if err := in.adapter.ValidateOperator(f.Type, f.State.Operator); err != nil {
		return f, err
	}
	if err := in.adapter.ValidateValue(f.Type, f.State.Value); err != nil {
		return f, err
	}
	return f.Clone(), nil
}

func (in *Instance) validateState(state models.FiltersState) (models.FiltersState, error) {
	join := state.JoinOperator
	if join == "" {
		join = in.defaultJoin
	}
	if !join.Valid() {
		return models.FiltersState{}, fmt.Errorf("%w: %q", ErrInvalidJoinOperator, join)
	}

	// Explicit ids are reserved first so generated ones cannot take them.
	taken := make(map[string]bool, len(state.Filters))
	for _, f := range state.Filters {
		if f.ID == "" {
			continue
		}
		if taken[f.ID] {
			return models.FiltersState{}, fmt.Errorf("%w: %q", ErrDuplicateFilter, f.ID)
		}
		taken[f.ID] = true
	}

	out := models.FiltersState{JoinOperator: join}
	for _, f := range state.Filters {
		if f.ID == "" {
			for f.ID == "" || taken[f.ID] {
				f.ID = in.newID()
			}
			taken[f.ID] = true
		}

		valid, err := in.validateFilter(f)
		if err != nil {
			return models.FiltersState{}, err
		}
		out.Filters = append(out.Filters, valid)
	}
	return out, nil
}
