package metadata

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rebeliceyang/lazytable/internal/db/connection"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// TableData is one page of rows with raw values kept for sort validation
type TableData struct {
	Columns   []string
	Rows      [][]string
	Raw       []map[string]any
	TotalRows int64
}

// OrderBy renders a sort list as an ORDER BY clause. Columns not in known
// are dropped.
func OrderBy(sorting models.SortingState, known []string) string {
	var parts []string
	for _, e := range sorting {
		if !slices.Contains(known, e.ID) {
			continue
		}
		dir := "ASC"
		if e.Desc {
			dir = "DESC"
		}
		parts = append(parts, pgx.Identifier{e.ID}.Sanitize()+" "+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// QueryTableData fetches one page of rows. Filters are never applied here.
func QueryTableData(ctx context.Context, pool *connection.Pool, schema, table string, columns []string, sorting models.SortingState, offset, limit int) (*TableData, error) {
	ident := pgx.Identifier{schema, table}.Sanitize()

	countRow, err := pool.QueryRow(ctx, "SELECT COUNT(*) AS count FROM "+ident)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	totalRows := int64(0)
	if count, ok := countRow["count"].(int64); ok {
		totalRows = count
	}

	query := fmt.Sprintf("SELECT * FROM %s%s LIMIT %d OFFSET %d", ident, OrderBy(sorting, columns), limit, offset)
	res, err := pool.QueryWithColumns(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table data: %w", err)
	}

	data := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for j, col := range res.Columns {
			val := row[col]
			if val == nil {
				cells[j] = "NULL"
			} else {
				cells[j] = fmt.Sprintf("%v", val)
			}
		}
		data[i] = cells
	}

	return &TableData{
		Columns:   res.Columns,
		Rows:      data,
		Raw:       res.Rows,
		TotalRows: totalRows,
	}, nil
}
