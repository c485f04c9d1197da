package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/db/connection"
	"github.com/rebeliceyang/lazytable/internal/db/metadata"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// Source supplies the filterable fields and the rows of one table
type Source interface {
	Name() string
	Columns() []string
	Fields() []models.FilterFieldConfig
	Load(ctx context.Context, sorting models.SortingState, offset, limit int) (*metadata.TableData, error)
}

// PostgresSource reads a Postgres table. Fields are inferred once from the
// column types.
type PostgresSource struct {
	pool    *connection.Pool
	schema  string
	table   string
	columns []string
	fields  []models.FilterFieldConfig
}

// NewPostgresSource loads the column metadata of name ("schema.table")
func NewPostgresSource(ctx context.Context, pool *connection.Pool, name string, a *adapter.Adapter, log logger.Logger) (*PostgresSource, error) {
	schema, table := metadata.SplitTableName(name)

	cols, err := metadata.GetTableColumns(ctx, pool, schema, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", schema, table)
	}

	enumTypes, err := metadata.ListEnumTypes(ctx, pool, schema)
	if err != nil {
		return nil, err
	}

	fields, skipped := metadata.FieldConfigs(cols, metadata.EnumLabels(enumTypes), a)
	if len(skipped) > 0 {
		log.Info().Strs("columns", skipped).Str("adapter", a.Name()).Msg("columns without a filter type")
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	return &PostgresSource{
		pool:    pool,
		schema:  schema,
		table:   table,
		columns: names,
		fields:  fields,
	}, nil
}

func (s *PostgresSource) Name() string {
	return s.schema + "." + s.table
}

func (s *PostgresSource) Columns() []string {
	return s.columns
}

func (s *PostgresSource) Fields() []models.FilterFieldConfig {
	return s.fields
}

func (s *PostgresSource) Load(ctx context.Context, sorting models.SortingState, offset, limit int) (*metadata.TableData, error) {
	return metadata.QueryTableData(ctx, s.pool, s.schema, s.table, s.columns, sorting, offset, limit)
}

// DemoSource is an in-memory task list used when no database is configured
type DemoSource struct {
	columns []string
	rows    []map[string]any
}

var demoStatuses = []models.Option{
	{Label: "Backlog", Value: "backlog"},
	{Label: "Todo", Value: "todo"},
	{Label: "In Progress", Value: "in-progress"},
	{Label: "Done", Value: "done"},
	{Label: "Canceled", Value: "canceled"},
}

var demoPriorities = []models.Option{
	{Label: "Low", Value: "low"},
	{Label: "Medium", Value: "medium"},
	{Label: "High", Value: "high"},
}

var demoLabels = []models.Option{
	{Label: "Bug", Value: "bug"},
	{Label: "Feature", Value: "feature"},
	{Label: "Documentation", Value: "documentation"},
}

var demoTitles = []string{
	"Fix login redirect",
	"Add CSV export",
	"Write onboarding guide",
	"Speed up search",
	"Support dark mode",
	"Handle expired sessions",
	"Refresh API docs",
	"Paginate audit log",
	"Cache avatar images",
	"Retry failed webhooks",
}

// NewDemoSource builds a deterministic task list of n rows
func NewDemoSource(n int) *DemoSource {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{
			"id":              fmt.Sprintf("TASK-%04d", 1000+i*7),
			"title":           demoTitles[i%len(demoTitles)],
			"status":          demoStatuses[(i*3)%len(demoStatuses)].Value,
			"priority":        demoPriorities[(i*5)%len(demoPriorities)].Value,
			"labels":          []string{demoLabels[i%len(demoLabels)].Value},
			"estimated_hours": (i*37)%24 + 1,
			"created_at":      base.Add(time.Duration(i*29) * time.Hour).Format("2006-01-02"),
			"archived":        i%6 == 0,
		}
	}

	return &DemoSource{
		columns: []string{"id", "title", "status", "priority", "labels", "estimated_hours", "created_at", "archived"},
		rows:    rows,
	}
}

func (s *DemoSource) Name() string {
	return "demo.tasks"
}

func (s *DemoSource) Columns() []string {
	return s.columns
}

func (s *DemoSource) Fields() []models.FilterFieldConfig {
	return []models.FilterFieldConfig{
		{ID: "title", Type: models.TypeText, Label: "Title", Meta: &models.FieldMeta{Placeholder: "Filter titles..."}},
		{ID: "status", Type: models.TypeSelect, Label: "Status", Meta: &models.FieldMeta{Options: demoStatuses}, IsActive: true},
		{ID: "priority", Type: models.TypeSelect, Label: "Priority", Meta: &models.FieldMeta{Options: demoPriorities}},
		{ID: "labels", Type: models.TypeMultiSelect, Label: "Labels", Meta: &models.FieldMeta{Options: demoLabels}},
		{ID: "estimated_hours", Type: models.TypeNumber, Label: "Est. Hours"},
		{ID: "created_at", Type: models.TypeDate, Label: "Created At"},
		{ID: "archived", Type: models.TypeBoolean, Label: "Archived"},
	}
}

// Load sorts in memory; like the Postgres source it never filters
func (s *DemoSource) Load(_ context.Context, sorting models.SortingState, offset, limit int) (*metadata.TableData, error) {
	rows := make([]map[string]any, len(s.rows))
	copy(rows, s.rows)

	sort.SliceStable(rows, func(i, j int) bool {
		for _, e := range sorting {
			c := compareCells(rows[i][e.ID], rows[j][e.ID])
			if c == 0 {
				continue
			}
			if e.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	end := min(offset+limit, len(rows))
	if offset > end {
		offset = end
	}
	page := rows[offset:end]

	data := &metadata.TableData{
		Columns:   s.columns,
		Rows:      make([][]string, len(page)),
		Raw:       page,
		TotalRows: int64(len(rows)),
	}
	for i, row := range page {
		cells := make([]string, len(s.columns))
		for j, col := range s.columns {
			if list, ok := row[col].([]string); ok {
				cells[j] = strings.Join(list, ", ")
				continue
			}
			cells[j] = cast.ToString(row[col])
		}
		data.Rows[i] = cells
	}
	return data, nil
}

func compareCells(a, b any) int {
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}
