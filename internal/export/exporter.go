package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// CSVHeader is the first row written by ExportToCSV
var CSVHeader = []string{"Name", "Description", "Table", "Query", "Filters", "Join", "Sort", "Tags", "Created", "Updated", "Last Used", "Usage Count"}

// ExportToCSV exports saved views to a CSV file. The query is written whole
// and split into its filter, join and sort parameters.
func ExportToCSV(views []models.SavedView, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range views {
		// Undecodable queries are still exported verbatim
		params, _ := url.ParseQuery(v.Query)

		lastUsed := ""
		if !v.LastUsed.IsZero() {
			lastUsed = v.LastUsed.Format(timeLayout)
		}

		row := []string{
			v.Name,
			v.Description,
			v.Table,
			v.Query,
			params.Get(codec.ParamFilters),
			params.Get(codec.ParamJoinOperator),
			params.Get(codec.ParamSort),
			strings.Join(v.Tags, ", "),
			v.CreatedAt.Format(timeLayout),
			v.UpdatedAt.Format(timeLayout),
			lastUsed,
			fmt.Sprintf("%d", v.UsageCount),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON exports saved views to a JSON file
func ExportToJSON(views []models.SavedView, path string) error {
	if views == nil {
		views = []models.SavedView{}
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal views to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
