package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/db/connection"
)

// Table represents a PostgreSQL table
type Table struct {
	Schema string
	Name   string
	Size   string
}

// QualifiedName returns "schema.name"
func (t Table) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// SplitTableName splits "schema.table", defaulting the schema to public
func SplitTableName(name string) (schema, table string) {
	if s, t, ok := strings.Cut(name, "."); ok {
		return s, t
	}
	return "public", name
}

// ListSchemas returns all user schemas in the current database
func ListSchemas(ctx context.Context, pool *connection.Pool) ([]string, error) {
	query := `
		SELECT schema_name AS name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY schema_name
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	schemas := make([]string, 0, len(rows))
	for _, row := range rows {
		schemas = append(schemas, cast.ToString(row["name"]))
	}
	return schemas, nil
}

// ListTables returns all tables in a schema
func ListTables(ctx context.Context, pool *connection.Pool, schema string) ([]Table, error) {
	query := `
		SELECT
			schemaname AS schema,
			tablename AS name,
			pg_catalog.pg_size_pretty(pg_catalog.pg_total_relation_size(quote_ident(schemaname) || '.' || quote_ident(tablename))) AS size
		FROM pg_catalog.pg_tables
		WHERE schemaname = $1
		ORDER BY tablename
	`

	rows, err := pool.Query(ctx, query, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	tables := make([]Table, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, Table{
			Schema: cast.ToString(row["schema"]),
			Name:   cast.ToString(row["name"]),
			Size:   cast.ToString(row["size"]),
		})
	}
	return tables, nil
}
