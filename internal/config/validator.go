package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
	"github.com/rebeliceyang/lazytable/internal/ui/theme"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config key (e.g. "filters.debounce_ms")
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{
		logger.LogLevelDebug,
		logger.LogLevelInfo,
		logger.LogLevelWarn,
		logger.LogLevelWarning,
		logger.LogLevelError,
		logger.LogLevelDisable,
	}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"console", logger.JSONLoggingFormat}
}

// Validate checks the Config and returns every problem found
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, c.validateFilters()...)
	errs = append(errs, c.validateSort()...)
	errs = append(errs, c.validateUI()...)
	errs = append(errs, c.validateFeatures()...)
	errs = append(errs, c.validateLog()...)
	return errs
}

func (c *Config) validateFilters() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(presets.Names(), c.Filters.Adapter) {
		errs = append(errs, ValidationError{
			Field:   "filters.adapter",
			Value:   c.Filters.Adapter,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(presets.Names(), ", ")),
		})
	}
	if !models.JoinOperator(c.Filters.DefaultJoinOperator).Valid() {
		errs = append(errs, ValidationError{
			Field:   "filters.default_join_operator",
			Value:   c.Filters.DefaultJoinOperator,
			Message: "must be and or or",
		})
	}
	if c.Filters.DebounceMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "filters.debounce_ms",
			Value:   c.Filters.DebounceMS,
			Message: "must be non-negative",
		})
	}
	return errs
}

func (c *Config) validateSort() []ValidationError {
	if _, err := codec.ParseSortShorthand(c.Sort.Default); err != nil {
		return []ValidationError{{
			Field:   "sort.default",
			Value:   c.Sort.Default,
			Message: err.Error(),
		}}
	}
	return nil
}

func (c *Config) validateUI() []ValidationError {
	if !slices.Contains(theme.Names(), c.UI.Theme) {
		return []ValidationError{{
			Field:   "ui.theme",
			Value:   c.UI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(theme.Names(), ", ")),
		}}
	}
	return nil
}

func (c *Config) validateFeatures() []ValidationError {
	_, unknown := models.NewFlagSet(c.Features.Enabled)
	if len(unknown) == 0 {
		return nil
	}
	names := make([]string, len(models.FeatureFlags))
	for i, f := range models.FeatureFlags {
		names[i] = string(f.Value)
	}
	return []ValidationError{{
		Field:   "features.enabled",
		Value:   unknown,
		Message: fmt.Sprintf("unknown feature flags, want any of: %s", strings.Join(names, ", ")),
	}}
}

func (c *Config) validateLog() []ValidationError {
	var errs []ValidationError
	if c.Log.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Log.Format != "" && !slices.Contains(ValidLogFormats(), c.Log.Format) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}
	return errs
}
