package metadata

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/db/connection"
)

// EnumType is a Postgres enum and its labels in sort order
type EnumType struct {
	Schema string
	Name   string
	Labels []string
}

// ListEnumTypes returns all enum types in a schema
func ListEnumTypes(ctx context.Context, pool *connection.Pool, schema string) ([]EnumType, error) {
	query := `
		SELECT t.typname,
		       array_agg(e.enumlabel ORDER BY e.enumsortorder) AS labels
		FROM pg_type t
		JOIN pg_namespace n ON t.typnamespace = n.oid
		JOIN pg_enum e ON t.oid = e.enumtypid
		WHERE n.nspname = $1
		  AND t.typtype = 'e'
		GROUP BY t.typname
		ORDER BY t.typname
	`

	rows, err := pool.Query(ctx, query, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list enum types: %w", err)
	}

	types := make([]EnumType, 0, len(rows))
	for _, row := range rows {
		types = append(types, EnumType{
			Schema: schema,
			Name:   cast.ToString(row["typname"]),
			Labels: cast.ToStringSlice(row["labels"]),
		})
	}

	return types, nil
}

// EnumLabels indexes enum labels by type name
func EnumLabels(types []EnumType) map[string][]string {
	out := make(map[string][]string, len(types))
	for _, t := range types {
		out[t.Name] = t.Labels
	}
	return out
}
