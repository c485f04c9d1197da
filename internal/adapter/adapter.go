// Package adapter maps filter type names to their operators, defaults and renderers.
//
// An Adapter is built once with New and never mutated afterwards, so a single
// value can be shared by every filter instance that uses it. Lookups for a type
// that is not registered fail with ErrUnknownFilterType; there is no fallback
// to another type.
package adapter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

var (
	// ErrUnknownFilterType is returned when a type is absent from the adapter.
	ErrUnknownFilterType = errors.New("unknown filter type")

	// ErrInvalidOperator is returned when an operator is not in a type's operator set.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidValue is returned when a value is rejected by a type's validator.
	ErrInvalidValue = errors.New("invalid filter value")

	// ErrInvalidDefinition is returned by New for malformed definitions.
	ErrInvalidDefinition = errors.New("invalid filter type definition")

	// ErrNilAdapter is returned when Extend or Merge is given a nil adapter.
	ErrNilAdapter = errors.New("nil filter adapter")
)

// RenderProps is what a filter renderer receives
type RenderProps struct {
	Label    string
	Value    models.Value
	OnChange func(models.Value)
	Operator models.Operator
	Meta     *models.FieldMeta
	Width    int
	Focused  bool
	Theme    theme.Theme
}

// RenderFunc draws a filter input
type RenderFunc func(RenderProps) string

// Definition describes one filter type
type Definition struct {
	Operators       []models.OperatorOption
	DefaultOperator models.Operator
	DefaultValue    models.Value

	// Component names the renderer used when Render is nil
	Component models.ComponentName
	Render    RenderFunc

	// Validate rejects values that cannot be represented by this type
	Validate func(models.Value) error
}

// HasOperator reports whether op is in the definition's operator set
func (d Definition) HasOperator(op models.Operator) bool {
	for _, o := range d.Operators {
		if o.Value == op {
			return true
		}
	}
	return false
}

// OperatorLabel returns the display label of op
func (d Definition) OperatorLabel(op models.Operator) string {
	for _, o := range d.Operators {
		if o.Value == op {
			return o.Label
		}
	}
	return string(op)
}

func (d Definition) clone() Definition {
	ops := make([]models.OperatorOption, len(d.Operators))
	copy(ops, d.Operators)
	d.Operators = ops
	d.DefaultValue = d.DefaultValue.Clone()
	return d
}

func (d Definition) check() error {
	if len(d.Operators) == 0 {
		return fmt.Errorf("no operators")
	}
	seen := make(map[models.Operator]bool, len(d.Operators))
	for _, o := range d.Operators {
		if o.Value == "" {
			return fmt.Errorf("empty operator value")
		}
		if seen[o.Value] {
			return fmt.Errorf("duplicate operator %q", o.Value)
		}
		seen[o.Value] = true
	}
	if !seen[d.DefaultOperator] {
		return fmt.Errorf("default operator %q is not in the operator set", d.DefaultOperator)
	}
	if d.Validate != nil {
		if err := d.Validate(d.DefaultValue); err != nil {
			return fmt.Errorf("default value rejected: %w", err)
		}
	}
	return nil
}

// Adapter is an immutable registry of filter type definitions
type Adapter struct {
	name string
	defs map[models.FilterType]Definition
}

// New validates defs and returns an adapter
func New(name string, defs map[models.FilterType]Definition) (*Adapter, error) {
	a := &Adapter{
		name: name,
		defs: make(map[models.FilterType]Definition, len(defs)),
	}
	for t, def := range defs {
		if t == "" {
			return nil, fmt.Errorf("%w: empty type name", ErrInvalidDefinition)
		}
		if err := def.check(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, t, err)
		}
		a.defs[t] = def.clone()
	}
	return a, nil
}

// MustNew is New that panics on error, for package-level presets
func MustNew(name string, defs map[models.FilterType]Definition) *Adapter {
	a, err := New(name, defs)
	if err != nil {
		panic(err)
	}
	return a
}

// Extend returns a new adapter holding a's types plus ext.
// On a name collision the definition from ext replaces the one from a.
func (a *Adapter) Extend(name string, ext map[models.FilterType]Definition) (*Adapter, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	merged := make(map[models.FilterType]Definition, len(a.defs)+len(ext))
	for t, def := range a.defs {
		merged[t] = def
	}
	for t, def := range ext {
		merged[t] = def
	}
	return New(name, merged)
}

// Merge combines two adapters; types in ext override types in base.
func Merge(name string, base, ext *Adapter) (*Adapter, error) {
	if base == nil || ext == nil {
		return nil, ErrNilAdapter
	}
	merged := &Adapter{
		name: name,
		defs: make(map[models.FilterType]Definition, len(base.defs)+len(ext.defs)),
	}
	for t, def := range base.defs {
		merged.defs[t] = def.clone()
	}
	for t, def := range ext.defs {
		merged.defs[t] = def.clone()
	}
	return merged, nil
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return a.name
}

// Has reports whether t is registered
func (a *Adapter) Has(t models.FilterType) bool {
	_, ok := a.defs[t]
	return ok
}

// Types returns the registered type names in sorted order
func (a *Adapter) Types() []models.FilterType {
	types := make([]models.FilterType, 0, len(a.defs))
	for t := range a.defs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Definition returns a copy of the definition for t
func (a *Adapter) Definition(t models.FilterType) (Definition, error) {
	def, ok := a.defs[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	return def.clone(), nil
}

// Operators returns the ordered operator set of t
func (a *Adapter) Operators(t models.FilterType) ([]models.OperatorOption, error) {
	def, err := a.Definition(t)
	if err != nil {
		return nil, err
	}
	return def.Operators, nil
}

// GetDefaultOperator returns the default operator of t
func (a *Adapter) GetDefaultOperator(t models.FilterType) (models.Operator, error) {
	def, ok := a.defs[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	return def.DefaultOperator, nil
}

// GetDefaultValue returns a fresh copy of the default value of t
func (a *Adapter) GetDefaultValue(t models.FilterType) (models.Value, error) {
	def, ok := a.defs[t]
	if !ok {
		return models.Value{}, fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	return def.DefaultValue.Clone(), nil
}

// ValidateOperator checks that op belongs to t's operator set
func (a *Adapter) ValidateOperator(t models.FilterType, op models.Operator) error {
	def, ok := a.defs[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	if !def.HasOperator(op) {
		return fmt.Errorf("%w: %q is not valid for type %q", ErrInvalidOperator, op, t)
	}
	return nil
}

// ValidateValue runs t's value validator, if any
func (a *Adapter) ValidateValue(t models.FilterType, v models.Value) error {
	def, ok := a.defs[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	if def.Validate == nil {
		return nil
	}
	if err := def.Validate(v); err != nil {
		return fmt.Errorf("%w for type %q: %v", ErrInvalidValue, t, err)
	}
	return nil
}

// Component returns the renderer name declared by t
func (a *Adapter) Component(t models.FilterType) (models.ComponentName, error) {
	def, ok := a.defs[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	return def.Component, nil
}

// Render draws t's input with props using the type's own render function.
// Types without a render function return an empty string; callers resolve
// those through the component dispatcher.
func (a *Adapter) Render(t models.FilterType, props RenderProps) (string, error) {
	def, ok := a.defs[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterType, t)
	}
	if def.Render == nil {
		return "", nil
	}
	return def.Render(props), nil
}

// HasRenderer reports whether t carries its own render function
func (a *Adapter) HasRenderer(t models.FilterType) bool {
	def, ok := a.defs[t]
	return ok && def.Render != nil
}
