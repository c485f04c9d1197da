package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/db/connection"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// GetTableColumns retrieves column metadata for a table
func GetTableColumns(ctx context.Context, pool *connection.Pool, schema, table string) ([]models.ColumnInfo, error) {
	query := `
		SELECT
			column_name,
			data_type,
			udt_name,
			is_nullable = 'YES' AS nullable,
			data_type = 'ARRAY' AS is_array
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := pool.Query(ctx, query, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	columns := make([]models.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, models.ColumnInfo{
			Name:     cast.ToString(row["column_name"]),
			DataType: cast.ToString(row["data_type"]),
			UDTName:  cast.ToString(row["udt_name"]),
			Nullable: cast.ToBool(row["nullable"]),
			IsArray:  cast.ToBool(row["is_array"]),
		})
	}

	return columns, nil
}

// InferFilterType maps a Postgres column type to a filter type. enums holds
// the enum type names of the schema.
func InferFilterType(dataType, udtName string, isArray bool, enums map[string][]string) models.FilterType {
	if isArray {
		return models.TypeMultiSelect
	}

	switch strings.ToLower(dataType) {
	case "boolean":
		return models.TypeBoolean
	case "smallint", "integer", "bigint", "numeric", "decimal", "real", "double precision", "money":
		return models.TypeNumber
	case "date", "timestamp without time zone", "timestamp with time zone":
		return models.TypeDate
	case "user-defined":
		switch udtName {
		case "geometry", "geography":
			return models.TypeGeometry
		}
		if _, ok := enums[udtName]; ok {
			return models.TypeSelect
		}
	}
	return models.TypeText
}

// FieldConfigs builds filter fields for columns. Columns whose inferred type
// the adapter does not know are skipped and returned by name.
func FieldConfigs(columns []models.ColumnInfo, enums map[string][]string, a *adapter.Adapter) ([]models.FilterFieldConfig, []string) {
	var (
		fields  []models.FilterFieldConfig
		skipped []string
	)

	for _, col := range columns {
		t := InferFilterType(col.DataType, col.UDTName, col.IsArray, enums)
		if !a.Has(t) {
			skipped = append(skipped, col.Name)
			continue
		}

		field := models.FilterFieldConfig{
			ID:    col.Name,
			Type:  t,
			Label: Humanize(col.Name),
		}

		// Arrays of enums are named with a leading underscore
		labels, ok := enums[strings.TrimPrefix(col.UDTName, "_")]
		if ok && (t == models.TypeSelect || t == models.TypeMultiSelect) {
			meta := &models.FieldMeta{Options: make([]models.Option, len(labels))}
			for i, l := range labels {
				meta.Options[i] = models.Option{Label: Humanize(l), Value: l}
			}
			field.Meta = meta
		}

		fields = append(fields, field)
	}

	return fields, skipped
}

// Humanize turns a snake_case or camelCase name into a label
func Humanize(name string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z' && i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z':
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	if len(words) == 0 {
		return name
	}
	first := []rune(words[0])
	first[0] = []rune(strings.ToUpper(string(first[0])))[0]
	words[0] = string(first)
	return strings.Join(words, " ")
}
