package presets

import (
	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/models"
)

var (
	opEq       = models.OperatorOption{Value: "_eq", Label: "Equals"}
	opNeq      = models.OperatorOption{Value: "_neq", Label: "Doesn't equal"}
	opNull     = models.OperatorOption{Value: "_null", Label: "Is null"}
	opNNull    = models.OperatorOption{Value: "_nnull", Label: "Isn't null"}
	opEmpty    = models.OperatorOption{Value: "_empty", Label: "Is empty"}
	opNEmpty   = models.OperatorOption{Value: "_nempty", Label: "Isn't empty"}
	opBetween  = models.OperatorOption{Value: "_between", Label: "Is between"}
	opNBetween = models.OperatorOption{Value: "_nbetween", Label: "Isn't between"}
)

// DirectusDefinitions returns the Directus operator vocabulary
func DirectusDefinitions() map[models.FilterType]adapter.Definition {
	return map[models.FilterType]adapter.Definition{
		models.TypeText: {
			Operators: []models.OperatorOption{
				opEq, opNeq,
				{Value: "_contains", Label: "Contains"},
				{Value: "_ncontains", Label: "Doesn't contain"},
				{Value: "_icontains", Label: "Contains (case-insensitive)"},
				{Value: "_starts_with", Label: "Starts with"},
				{Value: "_nstarts_with", Label: "Doesn't start with"},
				{Value: "_istarts_with", Label: "Starts with (case-insensitive)"},
				{Value: "_nistarts_with", Label: "Doesn't start with (case-insensitive)"},
				{Value: "_ends_with", Label: "Ends with"},
				{Value: "_nends_with", Label: "Doesn't end with"},
				{Value: "_iends_with", Label: "Ends with (case-insensitive)"},
				{Value: "_niends_with", Label: "Doesn't end with (case-insensitive)"},
				opEmpty, opNEmpty, opNull, opNNull,
			},
			DefaultOperator: "_contains",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentTextInput,
			Validate:        scalar,
		},
		models.TypeNumber: {
			Operators: []models.OperatorOption{
				opEq, opNeq,
				{Value: "_lt", Label: "Less than"},
				{Value: "_lte", Label: "Less than or equal to"},
				{Value: "_gt", Label: "Greater than"},
				{Value: "_gte", Label: "Greater than or equal to"},
				opBetween, opNBetween, opNull, opNNull, opEmpty, opNEmpty,
			},
			DefaultOperator: "_eq",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentNumberInput,
			Validate:        number,
		},
		models.TypeDate: {
			Operators: []models.OperatorOption{
				opEq, opNeq,
				{Value: "_lt", Label: "Before"},
				{Value: "_lte", Label: "Before or on"},
				{Value: "_gt", Label: "After"},
				{Value: "_gte", Label: "After or on"},
				opBetween, opNBetween, opNull, opNNull, opEmpty, opNEmpty,
			},
			DefaultOperator: "_eq",
			DefaultValue:    models.NullValue(),
			Component:       models.ComponentDatePicker,
			Validate:        date,
		},
		models.TypeSelect: {
			Operators:       []models.OperatorOption{opEq, opNeq, opNull, opNNull, opEmpty, opNEmpty},
			DefaultOperator: "_eq",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentSelectInput,
			Validate:        scalar,
		},
		models.TypeMultiSelect: {
			Operators: []models.OperatorOption{
				{Value: "_in", Label: "Is one of"},
				{Value: "_nin", Label: "Is not one of"},
				opNull, opNNull, opEmpty, opNEmpty,
			},
			DefaultOperator: "_in",
			DefaultValue:    models.ListValue(),
			Component:       models.ComponentMultiSelectInput,
			Validate:        list,
		},
		models.TypeGeometry: {
			Operators: []models.OperatorOption{
				{Value: "_intersects", Label: "Intersects"},
				{Value: "_nintersects", Label: "Doesn't intersect"},
				{Value: "_intersects_bbox", Label: "Intersects bounding box"},
				{Value: "_nintersects_bbox", Label: "Doesn't intersect bounding box"},
			},
			DefaultOperator: "_intersects",
			DefaultValue:    models.StringValue(""),
			Component:       models.ComponentTextInput,
			Validate:        geometry,
		},
	}
}

// Directus returns an adapter speaking the Directus filter vocabulary.
// Extending it replaces colliding types with the extension's definitions.
func Directus() *adapter.Adapter {
	return adapter.MustNew(NameDirectus, DirectusDefinitions())
}
