// Package presets provides ready-made filter adapters.
package presets

import (
	"fmt"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

const (
	NameDefault  = "default"
	NameDirectus = "directus"
)

var (
	opIs         = models.OperatorOption{Value: "eq", Label: "Is"}
	opIsNot      = models.OperatorOption{Value: "ne", Label: "Is not"}
	opIsEmpty    = models.OperatorOption{Value: "isEmpty", Label: "Is empty"}
	opIsNotEmpty = models.OperatorOption{Value: "isNotEmpty", Label: "Is not empty"}
)

// DefaultDefinitions returns the generic comparison vocabulary used by the table
func DefaultDefinitions() map[models.FilterType]adapter.Definition {
	return map[models.FilterType]adapter.Definition{
		models.TypeText: {
			Operators: []models.OperatorOption{
				{Value: "iLike", Label: "Contains"},
				{Value: "notILike", Label: "Does not contain"},
				opIs, opIsNot, opIsEmpty, opIsNotEmpty,
			},
			DefaultOperator: "iLike",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentTextInput,
			Validate:        scalar,
		},
		models.TypeNumber: {
			Operators: []models.OperatorOption{
				opIs, opIsNot,
				{Value: "lt", Label: "Is less than"},
				{Value: "lte", Label: "Is less than or equal to"},
				{Value: "gt", Label: "Is greater than"},
				{Value: "gte", Label: "Is greater than or equal to"},
				opIsEmpty, opIsNotEmpty,
			},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentNumberInput,
			Validate:        number,
		},
		models.TypeDate: {
			Operators: []models.OperatorOption{
				opIs, opIsNot,
				{Value: "lt", Label: "Is before"},
				{Value: "gt", Label: "Is after"},
				{Value: "lte", Label: "Is on or before"},
				{Value: "gte", Label: "Is on or after"},
				{Value: "isBetween", Label: "Is between"},
				{Value: "isRelativeToToday", Label: "Is relative to today"},
				opIsEmpty, opIsNotEmpty,
			},
			DefaultOperator: "eq",
			DefaultValue:    models.NullValue(),
			Component:       models.ComponentDatePicker,
			Validate:        date,
		},
		models.TypeBoolean: {
			Operators:       []models.OperatorOption{opIs, opIsNot},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentBooleanSelect,
			Validate:        boolean,
		},
		models.TypeSelect: {
			Operators:       []models.OperatorOption{opIs, opIsNot, opIsEmpty, opIsNotEmpty},
			DefaultOperator: "eq",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentSelectInput,
			Validate:        scalar,
		},
		models.TypeMultiSelect: {
			Operators: []models.OperatorOption{
				{Value: "containsAll", Label: "Contains all"},
				{Value: "containsAny", Label: "Contains any"},
				{Value: "notContains", Label: "Does not contain"},
				opIsEmpty, opIsNotEmpty,
			},
			DefaultOperator: "containsAny",
			DefaultValue:    models.ListValue(),
			Component:       models.ComponentMultiSelectInput,
			Validate:        list,
		},
	}
}

// Default returns the generic adapter
func Default() *adapter.Adapter {
	return adapter.MustNew(NameDefault, DefaultDefinitions())
}

// ByName returns a preset adapter by its config name
func ByName(name string) (*adapter.Adapter, error) {
	switch name {
	case "", NameDefault:
		return Default(), nil
	case NameDirectus:
		return Directus(), nil
	default:
		return nil, fmt.Errorf("unknown adapter preset %q (want %q or %q)", name, NameDefault, NameDirectus)
	}
}

// Names lists the available presets
func Names() []string {
	return []string{NameDefault, NameDirectus}
}
