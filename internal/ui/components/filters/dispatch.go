// Package filters draws filter value inputs and resolves which renderer a filter uses.
package filters

import (
	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// typeComponents is the renderer inferred from a column type
var typeComponents = map[models.FilterType]models.ComponentName{
	models.TypeText:        models.ComponentTextInput,
	models.TypeNumber:      models.ComponentNumberInput,
	models.TypeDate:        models.ComponentDatePicker,
	models.TypeBoolean:     models.ComponentBooleanSelect,
	models.TypeSelect:      models.ComponentSelectInput,
	models.TypeMultiSelect: models.ComponentMultiSelectInput,
	models.TypeGeometry:    models.ComponentTextInput,
}

// ComponentForType returns the renderer name inferred from a column type
func ComponentForType(t models.FilterType) (models.ComponentName, bool) {
	c, ok := typeComponents[t]
	return c, ok
}

// Registry maps component names to renderers
type Registry struct {
	renderers map[models.ComponentName]adapter.RenderFunc
}

// NewRegistry returns a registry holding the built-in renderers
func NewRegistry() *Registry {
	return &Registry{
		renderers: map[models.ComponentName]adapter.RenderFunc{
			models.ComponentTextInput:        TextInput,
			models.ComponentNumberInput:      NumberInput,
			models.ComponentDatePicker:       DatePicker,
			models.ComponentBooleanSelect:    BooleanSelect,
			models.ComponentSelectInput:      SelectInput,
			models.ComponentMultiSelectInput: MultiSelectInput,
		},
	}
}

// Register adds or replaces a renderer
func (r *Registry) Register(name models.ComponentName, fn adapter.RenderFunc) {
	r.renderers[name] = fn
}

// Lookup returns the renderer registered under name
func (r *Registry) Lookup(name models.ComponentName) (adapter.RenderFunc, bool) {
	fn, ok := r.renderers[name]
	return fn, ok
}

// Resolve picks a renderer: the exact component name, then the one inferred
// from the column type, then the text input.
func (r *Registry) Resolve(component models.ComponentName, columnType models.FilterType) adapter.RenderFunc {
	if fn, ok := r.renderers[component]; ok && component != "" {
		return fn
	}
	if inferred, ok := ComponentForType(columnType); ok {
		if fn, ok := r.renderers[inferred]; ok {
			return fn
		}
	}
	return r.renderers[models.ComponentTextInput]
}

// Render draws a filter of type t on field.
// A component set on the field wins, then the type's own render function,
// then the component the type declares, then inference from the type.
// The type itself must be known to a.
func (r *Registry) Render(a *adapter.Adapter, field models.FilterFieldConfig, t models.FilterType, props adapter.RenderProps) (string, error) {
	if !a.Has(t) {
		_, err := a.Definition(t)
		return "", err
	}

	if fn, ok := r.renderers[field.Component]; ok && field.Component != "" {
		return fn(props), nil
	}
	if a.HasRenderer(t) {
		return a.Render(t, props)
	}

	declared, err := a.Component(t)
	if err != nil {
		return "", err
	}
	return r.Resolve(declared, t)(props), nil
}
