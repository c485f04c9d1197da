// Package views stores named query strings per table in a YAML file.
package views

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazytable/internal/export"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// FileName is the views file inside the configured directory
const FileName = "views.yaml"

var ErrViewNotFound = errors.New("view not found")

// QueryCheck validates a query string before it is stored
type QueryCheck func(query string) error

// Manager manages saved views
type Manager struct {
	path  string
	views []models.SavedView
	check QueryCheck
	now   func() time.Time
}

// NewManager loads dir/views.yaml if it exists. check may be nil.
func NewManager(dir string, check QueryCheck) (*Manager, error) {
	path := filepath.Join(dir, FileName)

	m := &Manager{
		path:  path,
		views: []models.SavedView{},
		check: check,
		now:   time.Now,
	}

	if _, err := os.Stat(path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load views: %w", err)
		}
	}

	return m, nil
}

// Path returns the views file path
func (m *Manager) Path() string {
	return m.path
}

// Load loads views from the YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read views file: %w", err)
	}

	var views []models.SavedView
	if err := yaml.Unmarshal(data, &views); err != nil {
		return fmt.Errorf("failed to parse views: %w", err)
	}
	m.views = views
	return nil
}

// Save writes views to the YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.views)
	if err != nil {
		return fmt.Errorf("failed to marshal views: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create views directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write views file: %w", err)
	}

	return nil
}

func (m *Manager) validate(id, name, table, query string) error {
	if name == "" {
		return fmt.Errorf("view name cannot be empty")
	}
	if _, err := url.ParseQuery(query); err != nil {
		return fmt.Errorf("view query is not a query string: %w", err)
	}
	if m.check != nil {
		if err := m.check(query); err != nil {
			return fmt.Errorf("view query rejected: %w", err)
		}
	}

	// Names are unique per table, ignoring case
	for _, v := range m.views {
		if v.ID != id && v.Table == table && strings.EqualFold(v.Name, name) {
			return fmt.Errorf("a view named '%s' already exists for %s", name, table)
		}
	}
	return nil
}

// Add stores a new view. An empty query is the default view of the table.
func (m *Manager) Add(name, description, table, query string, tags []string) (*models.SavedView, error) {
	name = strings.TrimSpace(name)
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")

	if err := m.validate("", name, table, query); err != nil {
		return nil, err
	}

	now := m.now()
	view := models.SavedView{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Table:       table,
		Query:       query,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.views = append(m.views, view)

	if err := m.Save(); err != nil {
		return nil, fmt.Errorf("failed to save view: %w", err)
	}

	return &view, nil
}

// Update replaces the editable fields of a view
func (m *Manager) Update(id, name, description, query string, tags []string) error {
	name = strings.TrimSpace(name)
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")

	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	if err := m.validate(id, name, m.views[i].Table, query); err != nil {
		return err
	}

	m.views[i].Name = name
	m.views[i].Description = strings.TrimSpace(description)
	m.views[i].Query = query
	m.views[i].Tags = tags
	m.views[i].UpdatedAt = m.now()

	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

// Delete removes a view by ID
func (m *Manager) Delete(id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}

	m.views = append(m.views[:i], m.views[i+1:]...)
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save views after deletion: %w", err)
	}
	return nil
}

// Get returns a view by ID
func (m *Manager) Get(id string) (*models.SavedView, error) {
	i := m.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	v := m.views[i]
	return &v, nil
}

// GetAll returns all views
func (m *Manager) GetAll() []models.SavedView {
	out := make([]models.SavedView, len(m.views))
	copy(out, m.views)
	return out
}

// ForTable returns the views saved for table, by name
func (m *Manager) ForTable(table string) []models.SavedView {
	var out []models.SavedView
	for _, v := range m.views {
		if v.Table == table {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Search matches name, description, table or tags
func (m *Manager) Search(query string) []models.SavedView {
	if query == "" {
		return m.GetAll()
	}

	query = strings.ToLower(query)
	var results []models.SavedView

	for _, v := range m.views {
		if strings.Contains(strings.ToLower(v.Name), query) ||
			strings.Contains(strings.ToLower(v.Description), query) ||
			strings.Contains(strings.ToLower(v.Table), query) {
			results = append(results, v)
			continue
		}

		for _, tag := range v.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				results = append(results, v)
				break
			}
		}
	}

	return results
}

// RecordUsage updates usage statistics for a view
func (m *Manager) RecordUsage(id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}

	m.views[i].UsageCount++
	m.views[i].LastUsed = m.now()
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save usage statistics: %w", err)
	}
	return nil
}

// GetMostUsed returns the most frequently used views
func (m *Manager) GetMostUsed(limit int) []models.SavedView {
	sorted := m.GetAll()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsageCount > sorted[j].UsageCount
	})
	return truncate(sorted, limit)
}

// GetRecent returns the most recently used views
func (m *Manager) GetRecent(limit int) []models.SavedView {
	sorted := m.GetAll()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUsed.After(sorted[j].LastUsed)
	})
	return truncate(sorted, limit)
}

// ExportToCSV writes all views next to the views file, or to customPath
func (m *Manager) ExportToCSV(customPath ...string) (string, error) {
	if len(m.views) == 0 {
		return "", fmt.Errorf("no views to export")
	}

	path := filepath.Join(filepath.Dir(m.path), "views.csv")
	if len(customPath) > 0 && customPath[0] != "" {
		path = customPath[0]
	}

	if err := export.ExportToCSV(m.views, path); err != nil {
		return "", fmt.Errorf("failed to export views to CSV: %w", err)
	}
	return path, nil
}

// ExportToJSON writes all views next to the views file, or to customPath
func (m *Manager) ExportToJSON(customPath ...string) (string, error) {
	if len(m.views) == 0 {
		return "", fmt.Errorf("no views to export")
	}

	path := filepath.Join(filepath.Dir(m.path), "views.json")
	if len(customPath) > 0 && customPath[0] != "" {
		path = customPath[0]
	}

	if err := export.ExportToJSON(m.views, path); err != nil {
		return "", fmt.Errorf("failed to export views to JSON: %w", err)
	}
	return path, nil
}

func (m *Manager) indexOf(id string) int {
	for i, v := range m.views {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func truncate(views []models.SavedView, limit int) []models.SavedView {
	if limit > 0 && limit < len(views) {
		return views[:limit]
	}
	return views
}
