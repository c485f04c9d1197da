// Package history keeps a sqlite log of the query strings pushed for each table.
package history

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one pushed query string
type Entry struct {
	ID          int64
	Table       string
	Query       string
	FilterCount int
	RecordedAt  time.Time
}

// Store manages query history persistence
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the history database at path
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Add records a query for table. Repeating the latest query of the same
// table is a no-op.
func (s *Store) Add(e Entry) error {
	var last string
	err := s.db.QueryRow(`
		SELECT query FROM query_history
		WHERE table_name = ?
		ORDER BY id DESC
		LIMIT 1`, e.Table).Scan(&last)
	switch {
	case err == nil && last == e.Query:
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return err
	}

	at := e.RecordedAt
	if at.IsZero() {
		at = s.now()
	}

	_, err = s.db.Exec(`
		INSERT INTO query_history (table_name, query, filter_count, recorded_at)
		VALUES (?, ?, ?, ?)`,
		e.Table,
		e.Query,
		e.FilterCount,
		at.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetRecent returns the newest entries for table, or for every table when
// table is empty
func (s *Store) GetRecent(table string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, table_name, query, filter_count, recorded_at
		FROM query_history
		WHERE ? = '' OR table_name = ?
		ORDER BY id DESC
		LIMIT ?`, table, table, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Search matches query text across all tables
func (s *Store) Search(text string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, table_name, query, filter_count, recorded_at
		FROM query_history
		WHERE query LIKE ?
		ORDER BY id DESC
		LIMIT ?`, "%"+text+"%", limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string

		if err := rows.Scan(&e.ID, &e.Table, &e.Query, &e.FilterCount, &recordedAt); err != nil {
			return nil, err
		}
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)

		entries = append(entries, e)
	}
	return entries, rows.Err()
}
