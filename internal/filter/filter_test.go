package filter_test

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/filter"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/testutil"
)

func newFilter(t *testing.T, opts ...filter.Option) (*testutil.Fixture, *filter.Filter) {
	t.Helper()
	fx := testutil.Woodworking(t)
	f, err := filter.New(context.Background(), fx.Manager, opts...)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return fx, f
}

func search(t *testing.T, f *filter.Filter, query string) []string {
	t.Helper()
	got, err := f.Search(query)
	require.NoError(t, err)
	out := make([]string, len(got))
	for i, typed := range got {
		out[i] = typed.UID()
	}
	return out
}

func TestSearch_EmptyQueryListsEverythingInCreatedOrder(t *testing.T) {
	_, f := newFilter(t)

	got := search(t, f, "")
	require.Len(t, got, 9)
	require.Equal(t, "minecraft:oak_log", got[0])
	require.Equal(t, "create:brass_ingot", got[8])
	require.Equal(t, 9, f.Len())
}

func TestSearch_Terms(t *testing.T) {
	_, f := newFilter(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"oak", []string{"minecraft:oak_log", "minecraft:oak_planks"}},
		{"OAK pla", []string{"minecraft:oak_planks"}},
		{"iron | stick", []string{"minecraft:stick", "minecraft:iron_ore", "minecraft:iron_ingot"}},
		{"ingot -@create", []string{"minecraft:iron_ingot"}},
		{"@create", []string{"create:brass_ingot"}},
		{"$logs", []string{"minecraft:oak_log"}},
		{"burns", []string{"minecraft:charcoal"}},
		{`"oak pl"`, []string{"minecraft:oak_planks"}},
		{"%functional", []string{}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			require.Equal(t, tt.want, search(t, f, tt.query))
		})
	}
}

func TestSearch_OnlyNegatedTerms(t *testing.T) {
	_, f := newFilter(t)

	got := search(t, f, "-oak -iron")
	require.Len(t, got, 5)
	require.NotContains(t, got, "minecraft:oak_log")
}

func TestSearch_EnabledModeSearchesWithoutPrefix(t *testing.T) {
	cfg := filter.DefaultConfig()
	cfg.Modes[filter.KindCategory] = filter.ModeEnabled
	_, f := newFilter(t, filter.WithConfig(cfg))

	require.Equal(t, []string{"minecraft:crafting_table", "minecraft:furnace"}, search(t, f, "functional"))
	require.Equal(t, []string{"minecraft:crafting_table", "minecraft:furnace"}, search(t, f, "%functional"))
}

func TestSearch_SortOverride(t *testing.T) {
	_, f := newFilter(t)

	require.Equal(t, []string{"create:brass_ingot", "minecraft:iron_ingot"}, search(t, f, "ingot sort:mod"))
	require.Equal(t, []string{
		"minecraft:stick", "minecraft:oak_planks", "minecraft:oak_log",
	}, search(t, f, "oak | stick sort:-name"))
}

func TestSearch_ConfiguredSortSetsSortedIndex(t *testing.T) {
	cfg := filter.DefaultConfig()
	cfg.Sort = filter.SortOrder{Field: filter.SortName}
	fx, f := newFilter(t, filter.WithConfig(cfg))

	got := search(t, f, "")
	require.Equal(t, "create:brass_ingot", got[0])
	require.Equal(t, "minecraft:stick", got[8])

	e, ok := f.Element(fx.Typed("minecraft:charcoal"))
	require.True(t, ok)
	require.Equal(t, 1, e.SortedIndex)
	require.Equal(t, 5, e.CreatedIndex)

	elements := f.Elements()
	require.Equal(t, "minecraft:charcoal", elements[1].Ingredient.UID())
}

func TestSearch_InvalidQuery(t *testing.T) {
	_, f := newFilter(t)
	_, err := f.Search("sort:color")
	require.Error(t, err)
}

func TestVisibility_HidePatternsAndEditMode(t *testing.T) {
	cfg := filter.DefaultConfig()
	cfg.HidePatterns = []string{"minecraft:iron_*"}
	fx, f := newFilter(t, filter.WithConfig(cfg))

	require.Empty(t, search(t, f, "iron"))
	require.False(t, f.IsVisible(fx.Typed("minecraft:iron_ore")))

	require.NoError(t, f.SetEditMode(true))
	require.Len(t, search(t, f, "iron"), 2)

	require.NoError(t, f.SetEditMode(false))
	require.NoError(t, f.SetHidePatterns(nil))
	require.Len(t, search(t, f, "iron"), 2)

	require.ErrorIs(t, f.SetHidePatterns([]string{"[x"}), filter.ErrInvalidPattern)
}

func TestVisibility_Blacklist(t *testing.T) {
	fx, f := newFilter(t)

	require.NoError(t, f.Hide(fx.Typed("minecraft:stick")))
	require.Equal(t, []string{"minecraft:stick"}, f.Blacklist())
	require.Empty(t, search(t, f, "stick"))

	require.NoError(t, f.Unhide(fx.Typed("minecraft:stick")))
	require.Equal(t, []string{"minecraft:stick"}, search(t, f, "stick"))
}

func TestNew_InvalidPattern(t *testing.T) {
	fx := testutil.Woodworking(t)
	cfg := filter.DefaultConfig()
	cfg.HidePatterns = []string{"[x"}
	_, err := filter.New(context.Background(), fx.Manager, filter.WithConfig(cfg))
	require.ErrorIs(t, err, filter.ErrInvalidPattern)
}

func TestFilter_FollowsRuntimeChanges(t *testing.T) {
	fx, f := newFilter(t)
	require.Len(t, search(t, f, "log"), 1)

	birch := testutil.Item{ID: "minecraft:birch_log", Name: "Birch Log", Count: 1}
	require.NoError(t, ingredient.AddAtRuntime(fx.Manager, testutil.ItemType, []testutil.Item{birch}))
	require.Equal(t, []string{"minecraft:oak_log", "minecraft:birch_log"}, search(t, f, "log"))

	require.NoError(t, ingredient.RemoveAtRuntime(fx.Manager, testutil.ItemType, []testutil.Item{fx.Items["minecraft:oak_log"]}))
	require.Equal(t, []string{"minecraft:birch_log"}, search(t, f, "log"))
	require.Equal(t, []string{"minecraft:oak_planks"}, search(t, f, "oak"))
	require.Equal(t, 9, f.Len())
}

func TestFilter_CloseStopsFollowing(t *testing.T) {
	fx, f := newFilter(t)
	f.Close()

	birch := testutil.Item{ID: "minecraft:birch_log", Name: "Birch Log", Count: 1}
	require.NoError(t, ingredient.AddAtRuntime(fx.Manager, testutil.ItemType, []testutil.Item{birch}))
	require.Equal(t, 9, f.Len())
}

func TestFilter_ModNames(t *testing.T) {
	_, f := newFilter(t, filter.WithModNames(func(id string) string {
		if id == "create" {
			return "Create"
		}
		return ""
	}))

	got := search(t, f, "@crea")
	require.Equal(t, []string{"create:brass_ingot"}, got)
}

func TestSuggest(t *testing.T) {
	_, f := newFilter(t)

	require.Equal(t, []string{"stick"}, f.Suggest("stik", 0))
	require.Nil(t, f.Suggest("stick", 0))

	got := f.Suggest("ingt", 3)
	require.True(t, slices.Contains(got, "ingot"), got)
}

func TestSearch_MatchesInsideWords(t *testing.T) {
	_, f := newFilter(t)

	require.Equal(t, []string{"minecraft:oak_planks"}, search(t, f, "lanks"))
	require.Equal(t, []string{"minecraft:charcoal"}, search(t, f, "coal"))
	require.Equal(t, []string{"minecraft:oak_planks"}, search(t, f, "oak anks"))
}

func TestSearch_SortOverrideDiffersFromConfiguredSort(t *testing.T) {
	cfg := filter.DefaultConfig()
	cfg.Sort = filter.SortOrder{Field: filter.SortName}
	_, f := newFilter(t, filter.WithConfig(cfg))

	require.Equal(t, []string{"minecraft:iron_ingot", "create:brass_ingot"}, search(t, f, "ingot sort:-name"))
	require.Equal(t, []string{"create:brass_ingot", "minecraft:iron_ingot"}, search(t, f, "ingot"))
}

func TestSearch_ConcurrentReaders(t *testing.T) {
	_, f := newFilter(t)
	queries := map[string]int{"oak": 2, "lanks": 1, "iron | stick": 3, "-oak": 7, "": 9}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				for query, want := range queries {
					got, err := f.Search(query)
					if err != nil || len(got) != want {
						t.Errorf("Search(%q) = %d results, %v; want %d", query, len(got), err, want)
						return
					}
				}
				_ = f.Elements()
			}
		}()
	}
	wg.Wait()
}
