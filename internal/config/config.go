// Package config provides configuration types and defaults for almanac.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/almanac/internal/filter"
	"github.com/zjrosen/almanac/internal/flags"
	"github.com/zjrosen/almanac/internal/i18n"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/paths"
	"github.com/zjrosen/almanac/internal/tracing"
)

// Config holds all configuration options for almanac.
type Config struct {
	// DataDirs are extra data pack directories loaded after the built-in pack.
	DataDirs  []string        `mapstructure:"data_dirs"`
	Locale    string          `mapstructure:"locale"`
	LangDir   string          `mapstructure:"lang_dir"` // extra <locale>.yaml translation files
	Debug     bool            `mapstructure:"debug"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// FilterConfig holds ingredient search settings.
type FilterConfig struct {
	// Modes maps a search field (mod, tooltip, tag, category, resource) to
	// "enabled", "require_prefix" or "disabled".
	Modes map[string]string `mapstructure:"modes"`
	// Sort is "created", "name" or "mod", with a leading "-" for descending.
	Sort         string   `mapstructure:"sort"`
	HidePatterns []string `mapstructure:"hide_patterns"`
	Blacklist    []string `mapstructure:"blacklist"`
	EditMode     bool     `mapstructure:"edit_mode"`
}

// BookmarksConfig holds bookmark storage settings.
type BookmarksConfig struct {
	// Path of the SQLite database. Empty keeps bookmarks in memory.
	Path string `mapstructure:"path"`
}

// WatchConfig holds data pack hot reload settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// DefaultTracesFilePath returns ~/.config/almanac/traces/traces.jsonl, or
// an empty string when the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "almanac", "traces", "traces.jsonl")
}

// DefaultBookmarksPath returns ~/.almanac/bookmarks.db, or an empty string
// when the home directory is unavailable.
func DefaultBookmarksPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".almanac", "bookmarks.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	modes := make(map[string]string)
	for k, m := range filter.DefaultModes() {
		modes[k.String()] = m.String()
	}
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Locale: i18n.DefaultLocale,
		Filter: FilterConfig{
			Modes: modes,
			Sort:  "created",
		},
		Bookmarks: BookmarksConfig{Path: DefaultBookmarksPath()},
		Tracing:   tr,
		Watch:     WatchConfig{Debounce: 250 * time.Millisecond},
		Metrics:   MetricsConfig{Listen: ":9464"},
		Flags:     flags.Defaults(),
	}
}

// ExpandPaths resolves "~" and environment variables in every path setting.
func (c *Config) ExpandPaths() {
	c.DataDirs = paths.ExpandAll(c.DataDirs)
	c.LangDir = paths.Expand(c.LangDir)
	c.Bookmarks.Path = paths.Expand(c.Bookmarks.Path)
	c.Tracing.FilePath = paths.Expand(c.Tracing.FilePath)
}

// Validate checks every section.
func (c Config) Validate() error {
	return errors.Join(
		ValidateFilter(c.Filter),
		ValidateTracing(c.Tracing),
		ValidateWatch(c.Watch),
		ValidateDataDirs(c.DataDirs),
	)
}

// ValidateFilter checks search modes, sort order and hide patterns.
func ValidateFilter(f FilterConfig) error {
	_, err := f.ToFilterConfig()
	return err
}

// ToFilterConfig converts f to the filter package's configuration.
func (f FilterConfig) ToFilterConfig() (filter.Config, error) {
	cfg := filter.DefaultConfig()
	for field, value := range f.Modes {
		kind, err := filter.ParseKind(field)
		if err != nil || kind == filter.KindName {
			return filter.Config{}, fmt.Errorf("filter.modes: unknown field %q", field)
		}
		mode, err := filter.ParseMode(value)
		if err != nil {
			return filter.Config{}, fmt.Errorf("filter.modes.%s: %w", field, err)
		}
		cfg.Modes[kind] = mode
	}

	sort := strings.TrimSpace(f.Sort)
	desc := strings.HasPrefix(sort, "-")
	field, err := filter.ParseSortField(strings.TrimPrefix(sort, "-"))
	if err != nil {
		return filter.Config{}, fmt.Errorf("filter.sort: %w", err)
	}
	cfg.Sort = filter.SortOrder{Field: field, Descending: desc}

	if err := filter.ValidatePatterns(f.HidePatterns); err != nil {
		return filter.Config{}, fmt.Errorf("filter.hide_patterns: %w", err)
	}
	cfg.HidePatterns = f.HidePatterns
	cfg.Blacklist = f.Blacklist
	cfg.EditMode = f.EditMode
	return cfg, nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// ValidateWatch checks the reload debounce.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", w.Debounce)
	}
	return nil
}

// ValidateDataDirs checks that every configured data pack directory exists.
func ValidateDataDirs(dirs []string) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("data_dirs: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data_dirs: %s is not a directory", dir)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Almanac Configuration

# Extra data pack directories, loaded after the built-in pack.
# Later packs override items, fluids and recipes with the same id.
# data_dirs:
#   - ~/packs/create

# Active translation locale (default: en_us)
locale: en_us

# Directory with extra <locale>.yaml translation files
# lang_dir: ~/packs/lang

# Ingredient search
filter:
  # Search mode per prefixed field:
  #   enabled         searched with and without the prefix
  #   require_prefix  searched only with the prefix
  #   disabled        the prefix is matched literally
  #
  # Prefixes: @mod  #tooltip  $tag  %category  &resource
  modes:
    mod: require_prefix
    tooltip: enabled
    tag: require_prefix
    category: disabled
    resource: disabled

  # Result order: created, name or mod. Prefix with - for descending.
  sort: created

  # Ingredient uids hidden from results (doublestar globs)
  # hide_patterns:
  #   - "minecraft:potion:*"

  # Individually hidden ingredient uids (managed by 'almanac hide')
  # blacklist: []

  # Show hidden ingredients
  edit_mode: false

# Bookmark storage
# bookmarks:
#   path: ~/.almanac/bookmarks.db

# Data pack hot reload ('almanac watch')
watch:
  debounce: 250ms

# Prometheus endpoint ('almanac serve')
metrics:
  listen: ":9464"

# Feature flags
flags:
  bookmark-persistence: true     # Store bookmarks in SQLite (off: in memory)
  state-metrics: true            # Export per-type ingredient and recipe gauges

# Distributed tracing of plugin loading and recipe lookups
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/almanac/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
