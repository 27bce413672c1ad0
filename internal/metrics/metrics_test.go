package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixedState struct {
	ingredients map[string]int
	recipes     map[string]int
}

func (s fixedState) IngredientCounts() map[string]int { return s.ingredients }
func (s fixedState) RecipeCounts() map[string]int     { return s.recipes }

func TestIngredientsChanged(t *testing.T) {
	m := New()

	m.IngredientsChanged("item_stack", 3, 0, 1)
	m.IngredientsChanged("item_stack", 0, 2, 0)
	m.IngredientsChanged("fluid_stack", 0, 0, 0)

	require.Equal(t, 3.0, testutil.ToFloat64(m.IngredientsAdded.WithLabelValues("item_stack")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.IngredientsRemoved.WithLabelValues("item_stack")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.IngredientsRejected.WithLabelValues("item_stack")))
	// zero deltas create no series
	require.Equal(t, 1, testutil.CollectAndCount(m.IngredientsAdded))
}

func TestRecipeLookup(t *testing.T) {
	m := New()

	m.RecipeLookup("minecraft:crafting", 1)
	m.RecipeLookup("minecraft:crafting", 2)
	m.RecipeLookup("minecraft:smelting", 0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.RecipeLookups.WithLabelValues("minecraft:crafting")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RecipeLookups.WithLabelValues("minecraft:smelting")))
	require.Equal(t, 1, testutil.CollectAndCount(m.LookupFocuses))
}

func TestFailures(t *testing.T) {
	m := New()

	m.ManagerPluginFailed("hide-everything")
	m.PluginFailed("minecraft:vanilla", "recipes")
	m.PluginFailed("minecraft:vanilla", "recipes")

	require.Equal(t, 1.0, testutil.ToFloat64(m.ManagerPluginFails.WithLabelValues("hide-everything")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.PluginFailures.WithLabelValues("minecraft:vanilla", "recipes")))
}

func TestReloadFinished(t *testing.T) {
	m := New()

	m.ReloadFinished(nil)
	m.ReloadFinished(errors.New("bad yaml"))
	m.ReloadFinished(nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Reloads.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Reloads.WithLabelValues("error")))
}

func TestTrack(t *testing.T) {
	m := New()
	state := fixedState{
		ingredients: map[string]int{"item_stack": 12, "fluid_stack": 2},
		recipes:     map[string]int{"minecraft:crafting": 4},
	}
	require.NoError(t, m.Track(state))

	expected := `
# HELP almanac_ingredients Known ingredients, by ingredient type
# TYPE almanac_ingredients gauge
almanac_ingredients{type="fluid_stack"} 2
almanac_ingredients{type="item_stack"} 12
# HELP almanac_recipes Registered recipes, by recipe category
# TYPE almanac_recipes gauge
almanac_recipes{category="minecraft:crafting"} 4
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "almanac_ingredients", "almanac_recipes"))
}

func TestTrack_ReadsAtScrapeTime(t *testing.T) {
	m := New()
	state := fixedState{ingredients: map[string]int{"item_stack": 1}, recipes: map[string]int{}}
	require.NoError(t, m.Track(state))

	state.ingredients["item_stack"] = 5

	n, err := testutil.GatherAndCount(m.Registry(), "almanac_ingredients")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	expected := `
# HELP almanac_ingredients Known ingredients, by ingredient type
# TYPE almanac_ingredients gauge
almanac_ingredients{type="item_stack"} 5
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "almanac_ingredients"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.PluginFailed("p", "ingredients")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, 200, resp.StatusCode)
	require.Contains(t, string(body), `almanac_plugin_failures_total{phase="ingredients",plugin="p"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}
