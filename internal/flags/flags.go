// Package flags provides feature flag support for behavior that is still
// being rolled out. Flags are read-only after initialization and unknown
// flags are disabled.
package flags

import (
	"maps"

	"github.com/zjrosen/almanac/internal/log"
)

const (
	// FlagBookmarkPersistence controls whether bookmarks are written to SQLite.
	// When disabled the list lives in memory and is lost on exit.
	FlagBookmarkPersistence = "bookmark-persistence"

	// FlagStateMetrics controls whether per-type ingredient and per-category
	// recipe gauges are exported alongside the counters.
	FlagStateMetrics = "state-metrics"
)

// Defaults returns the flag values used when the config file sets none.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagBookmarkPersistence: true,
		FlagStateMetrics:        true,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. A nil map disables every flag.
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}
