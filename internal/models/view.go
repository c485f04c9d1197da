package models

import "time"

// SavedView is a named, shareable filter and sort query for one table
type SavedView struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Table       string    `yaml:"table" json:"table"`
	Query       string    `yaml:"query" json:"query"`
	Tags        []string  `yaml:"tags" json:"tags"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
	UsageCount  int       `yaml:"usage_count" json:"usage_count"`
	LastUsed    time.Time `yaml:"last_used" json:"last_used"`
}
