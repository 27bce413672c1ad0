package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StateSource reports the sizes of the live registries.
type StateSource interface {
	// IngredientCounts maps ingredient type uids to the number of known ingredients.
	IngredientCounts() map[string]int
	// RecipeCounts maps recipe type uids to the number of registered recipes.
	RecipeCounts() map[string]int
}

// stateCollector reads counts at scrape time instead of mirroring them in gauges.
type stateCollector struct {
	src         StateSource
	ingredients *prometheus.Desc
	recipes     *prometheus.Desc
}

func newStateCollector(src StateSource) *stateCollector {
	return &stateCollector{
		src: src,
		ingredients: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "ingredients"),
			"Known ingredients, by ingredient type",
			[]string{"type"}, nil,
		),
		recipes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "recipes"),
			"Registered recipes, by recipe category",
			[]string{"category"}, nil,
		),
	}
}

func (c *stateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ingredients
	ch <- c.recipes
}

func (c *stateCollector) Collect(ch chan<- prometheus.Metric) {
	for uid, n := range c.src.IngredientCounts() {
		ch <- prometheus.MustNewConstMetric(c.ingredients, prometheus.GaugeValue, float64(n), uid)
	}
	for uid, n := range c.src.RecipeCounts() {
		ch <- prometheus.MustNewConstMetric(c.recipes, prometheus.GaugeValue, float64(n), uid)
	}
}
