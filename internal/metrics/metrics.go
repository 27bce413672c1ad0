// Package metrics exposes registry state and runtime activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/plugin"
	"github.com/zjrosen/almanac/internal/recipe"
)

const namespace = "almanac"

// Metrics holds the activity counters. It observes the ingredient manager,
// the recipe registry and the plugin loader.
type Metrics struct {
	registry *prometheus.Registry

	IngredientsAdded    *prometheus.CounterVec
	IngredientsRemoved  *prometheus.CounterVec
	IngredientsRejected *prometheus.CounterVec
	RecipeLookups       *prometheus.CounterVec
	LookupFocuses       prometheus.Histogram
	ManagerPluginFails  *prometheus.CounterVec
	PluginFailures      *prometheus.CounterVec
	Reloads             *prometheus.CounterVec
}

var (
	_ ingredient.Observer    = (*Metrics)(nil)
	_ recipe.LookupObserver  = (*Metrics)(nil)
	_ plugin.FailureObserver = (*Metrics)(nil)
)

// New creates the metrics on a fresh registry, together with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		IngredientsAdded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredients_added_total",
			Help:      "Ingredients added at runtime",
		}, []string{"type"}),
		IngredientsRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredients_removed_total",
			Help:      "Ingredients removed at runtime",
		}, []string{"type"}),
		IngredientsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredients_invalid_total",
			Help:      "Ingredients rejected by their helper's validity check",
		}, []string{"type"}),
		RecipeLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_lookups_total",
			Help:      "Recipe lookups evaluated, by recipe type",
		}, []string{"recipe_type"}),
		LookupFocuses: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_lookup_focuses",
			Help:      "Number of focuses per evaluated lookup",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		}),
		ManagerPluginFails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_manager_plugin_failures_total",
			Help:      "Recipe manager plugins that failed during a lookup",
		}, []string{"plugin"}),
		PluginFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plugin_failures_total",
			Help:      "Plugin registration calls that failed during load",
		}, []string{"plugin", "phase"}),
		Reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_pack_reloads_total",
			Help:      "Data pack reloads, by result",
		}, []string{"result"}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Track registers a collector reporting the current state of src.
func (m *Metrics) Track(src StateSource) error {
	return m.registry.Register(newStateCollector(src))
}

func (m *Metrics) IngredientsChanged(typeUID string, added, removed, rejected int) {
	if added > 0 {
		m.IngredientsAdded.WithLabelValues(typeUID).Add(float64(added))
	}
	if removed > 0 {
		m.IngredientsRemoved.WithLabelValues(typeUID).Add(float64(removed))
	}
	if rejected > 0 {
		m.IngredientsRejected.WithLabelValues(typeUID).Add(float64(rejected))
	}
}

func (m *Metrics) RecipeLookup(recipeTypeUID string, focuses int) {
	m.RecipeLookups.WithLabelValues(recipeTypeUID).Inc()
	m.LookupFocuses.Observe(float64(focuses))
}

func (m *Metrics) ManagerPluginFailed(plugin string) {
	m.ManagerPluginFails.WithLabelValues(plugin).Inc()
}

func (m *Metrics) PluginFailed(pluginUID, phase string) {
	m.PluginFailures.WithLabelValues(pluginUID, phase).Inc()
}

// ReloadFinished counts a data pack reload.
func (m *Metrics) ReloadFinished(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Reloads.WithLabelValues(result).Inc()
}
