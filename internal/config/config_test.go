package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazytable/internal/config"
	"github.com/rebeliceyang/lazytable/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()

	cfg := config.GetDefaults()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, models.JoinAnd, cfg.JoinOperator())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Nil(t, cfg.SortDefault())
	assert.False(t, cfg.FlagSet().Enabled(models.FlagAdvancedTable))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
filters:
  adapter: directus
  default_join_operator: or
  debounce_ms: 50
sort:
  default: "-createdAt,title"
ui:
  theme: light
features:
  enabled: [advancedTable, floatingBar]
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "directus", cfg.Filters.Adapter)
	assert.Equal(t, models.JoinOr, cfg.JoinOperator())
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
	assert.True(t, cfg.Filters.UseActiveFilters)
	assert.Equal(t, models.SortingState{{ID: "createdAt", Desc: true}, {ID: "title"}}, cfg.SortDefault())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.True(t, cfg.FlagSet().Enabled(models.FlagAdvancedTable))
	assert.True(t, cfg.FlagSet().Enabled(models.FlagFloatingBar))
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
filters:
  adapter: graphql
  default_join_operator: xor
  debounce_ms: -1
sort:
  default: "title,title"
ui:
  theme: neon
features:
  enabled: [darkMode]
log:
  level: loud
`)

	_, err := config.Load(path)
	require.Error(t, err)

	var errs config.ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{
		"filters.adapter",
		"filters.default_join_operator",
		"filters.debounce_ms",
		"sort.default",
		"ui.theme",
		"features.enabled",
		"log.level",
	}, fields)
	assert.Contains(t, err.Error(), "7 validation errors")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "filters:\n  adapter: default\n")
	t.Setenv("LAZYTABLE_FILTERS_ADAPTER", "directus")
	t.Setenv("LAZYTABLE_FEATURES_ENABLED", "advancedTable floatingBar")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "directus", cfg.Filters.Adapter)
	assert.True(t, cfg.FlagSet().Enabled(models.FlagFloatingBar))
}

func TestValidationErrorFormat(t *testing.T) {
	t.Parallel()

	err := config.ValidationError{Field: "filters.debounce_ms", Value: -1, Message: "must be non-negative"}
	assert.Equal(t, "filters.debounce_ms: must be non-negative (got: -1)", err.Error())
	assert.Empty(t, config.ValidationErrors{}.Error())
}
