package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// AppName is used for the config directory and the environment prefix
const AppName = "lazytable"

// Config holds all application configuration
type Config struct {
	Filters  FiltersConfig  `mapstructure:"filters"`
	Sort     SortConfig     `mapstructure:"sort"`
	UI       UIConfig       `mapstructure:"ui"`
	Features FeaturesConfig `mapstructure:"features"`
	History  HistoryConfig  `mapstructure:"history"`
	Views    ViewsConfig    `mapstructure:"views"`
	Log      LogConfig      `mapstructure:"log"`
}

type FiltersConfig struct {
	Adapter             string `mapstructure:"adapter"`
	DefaultJoinOperator string `mapstructure:"default_join_operator"`
	DebounceMS          int    `mapstructure:"debounce_ms"`
	UseActiveFilters    bool   `mapstructure:"use_active_filters"`
}

type SortConfig struct {
	// Default is a shorthand list such as "-createdAt,title"
	Default string `mapstructure:"default"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
}

type FeaturesConfig struct {
	Enabled []string `mapstructure:"enabled"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ViewsConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		Filters: FiltersConfig{
			Adapter:             "default",
			DefaultJoinOperator: string(models.JoinAnd),
			DebounceMS:          300,
			UseActiveFilters:    true,
		},
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("filters.adapter", d.Filters.Adapter)
	v.SetDefault("filters.default_join_operator", d.Filters.DefaultJoinOperator)
	v.SetDefault("filters.debounce_ms", d.Filters.DebounceMS)
	v.SetDefault("filters.use_active_filters", d.Filters.UseActiveFilters)
	v.SetDefault("sort.default", d.Sort.Default)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("features.enabled", []string{})
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("views.dir", d.Views.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads configuration from path, or from the search paths when path is
// empty. A missing file in the search paths is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	return LoadWith(v, path)
}

// LoadWith is Load on a caller supplied viper instance, so flags bound to v
// take precedence.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 1. User config directory
		if dir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(dir)
		}
		// 2. Current directory
		v.AddConfigPath(".")
		// 3. Default config directory
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// AutomaticEnv gives a single space separated string for lists
	if len(cfg.Features.Enabled) == 1 && strings.ContainsAny(cfg.Features.Enabled[0], " ,") {
		cfg.Features.Enabled = strings.FieldsFunc(cfg.Features.Enabled[0], func(r rune) bool {
			return r == ' ' || r == ','
		})
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// DataPath returns a path inside the user config directory
func DataPath(name string) (string, error) {
	dir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// JoinOperator returns the configured default join operator
func (c *Config) JoinOperator() models.JoinOperator {
	return models.JoinOperator(c.Filters.DefaultJoinOperator)
}

// Debounce returns the value edit debounce window
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Filters.DebounceMS) * time.Millisecond
}

// SortDefault parses the default sort shorthand
func (c *Config) SortDefault() models.SortingState {
	s, err := codec.ParseSortShorthand(c.Sort.Default)
	if err != nil {
		return nil
	}
	return s
}

// FlagSet returns the enabled feature flags, ignoring unknown names
func (c *Config) FlagSet() models.FlagSet {
	set, _ := models.NewFlagSet(c.Features.Enabled)
	return set
}
