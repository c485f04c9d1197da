package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rebeliceyang/lazytable/internal/models"
)

func testViews() []models.SavedView {
	return []models.SavedView{
		{
			ID:          "view-1",
			Name:        "Open tasks",
			Description: "Tasks with commas, quotes \"and\" special chars",
			Table:       "public.tasks",
			Query:       `filters=%5B%7B%22id%22%3A%22status%22%7D%5D&joinOperator=or&sort=%5B%7B%22id%22%3A%22createdAt%22%2C%22desc%22%3Atrue%7D%5D`,
			Tags:        []string{"triage", "tasks"},
			CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			LastUsed:    time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
			UsageCount:  5,
		},
		{
			ID:         "view-2",
			Name:       "Everything",
			Table:      "public.tasks",
			Query:      "",
			Tags:       []string{"tasks"},
			CreatedAt:  time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC),
			UsageCount: 2,
		},
	}
}

func TestExportToCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "views.csv")

	if err := ExportToCSV(testViews(), csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	info, err := os.Stat(csvPath)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("Expected a non-empty file")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if !slices.Equal(records[0], CSVHeader) {
		t.Errorf("Header mismatch.\nExpected: %v\nGot: %v", CSVHeader, records[0])
	}

	row1 := records[1]
	if row1[0] != "Open tasks" {
		t.Errorf("Expected name 'Open tasks', got '%s'", row1[0])
	}
	if row1[4] != `[{"id":"status"}]` {
		t.Errorf("Expected decoded filters, got '%s'", row1[4])
	}
	if row1[5] != "or" {
		t.Errorf("Expected join 'or', got '%s'", row1[5])
	}
	if row1[6] != `[{"id":"createdAt","desc":true}]` {
		t.Errorf("Expected decoded sort, got '%s'", row1[6])
	}
	if row1[7] != "triage, tasks" {
		t.Errorf("Expected tags 'triage, tasks', got '%s'", row1[7])
	}
	if row1[11] != "5" {
		t.Errorf("Expected usage count '5', got '%s'", row1[11])
	}

	row2 := records[2]
	if row2[4] != "" || row2[10] != "" {
		t.Errorf("Expected empty filters and last used for default view, got %v", row2)
	}
}

func TestExportToJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "views.json")

	if err := ExportToJSON(testViews(), jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var parsed []models.SavedView
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if len(parsed) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(parsed))
	}
	if parsed[0].Query != testViews()[0].Query {
		t.Errorf("Query did not survive export: %q", parsed[0].Query)
	}
	if !parsed[0].LastUsed.Equal(testViews()[0].LastUsed) {
		t.Errorf("LastUsed mismatch: %v", parsed[0].LastUsed)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("JSON should be indented")
	}
}

func TestExportEmptyViews(t *testing.T) {
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "empty.csv")
	if err := ExportToCSV(nil, csvPath); err != nil {
		t.Fatalf("ExportToCSV with empty list failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 1 { // Only header
		t.Errorf("Expected 1 record (header), got %d", len(records))
	}

	jsonPath := filepath.Join(tmpDir, "empty.json")
	if err := ExportToJSON(nil, jsonPath); err != nil {
		t.Fatalf("ExportToJSON with empty list failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", data)
	}
}
