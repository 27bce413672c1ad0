package plugin_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/plugin"
	"github.com/zjrosen/almanac/internal/recipe"
	"github.com/zjrosen/almanac/internal/testutil"
)

// recordingPlugin takes part in every phase and records its calls.
type recordingPlugin struct {
	uid   string
	calls *[]string
	fail  map[plugin.Phase]func() error

	items   []testutil.Item
	recipes []testutil.Recipe
	info    map[string][]string
}

func (p *recordingPlugin) UID() string { return p.uid }

func (p *recordingPlugin) run(phase plugin.Phase, fn func() error) error {
	*p.calls = append(*p.calls, p.uid+":"+phase.String())
	if f, ok := p.fail[phase]; ok {
		return f()
	}
	if fn == nil {
		return nil
	}
	return fn()
}

func (p *recordingPlugin) RegisterItemSubtypes(*ingredient.SubtypeRegistry) error {
	return p.run(plugin.PhaseSubtypes, nil)
}

func (p *recordingPlugin) RegisterIngredients(r *ingredient.Registration) error {
	return p.run(plugin.PhaseIngredients, func() error {
		if p.items == nil {
			return nil
		}
		return ingredient.Register[testutil.Item](r, testutil.ItemType, p.items, testutil.ItemHelper{}, testutil.ItemRenderer{})
	})
}

func (p *recordingPlugin) RegisterCategories(r *recipe.CategoryRegistry) error {
	return p.run(plugin.PhaseCategories, func() error {
		if p.recipes == nil {
			return nil
		}
		items := make(map[string]testutil.Item, len(p.items))
		for _, it := range p.items {
			items[it.ID] = it
		}
		return recipe.RegisterCategory[testutil.Recipe](r, testutil.RecipeCategory{Type: testutil.CraftingType, Items: items})
	})
}

func (p *recordingPlugin) RegisterRecipes(r *plugin.RecipeRegistration) error {
	return p.run(plugin.PhaseRecipes, func() error {
		if len(p.recipes) > 0 {
			if err := recipe.AddRecipes(r.Registry, testutil.CraftingType, p.recipes...); err != nil {
				return err
			}
		}
		for id, lines := range p.info {
			item := testutil.Item{ID: id, Count: 1}
			if err := plugin.AddIngredientInfo(r, testutil.ItemType, []testutil.Item{item}, lines...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *recordingPlugin) RegisterRecipeCatalysts(*recipe.Registry) error {
	return p.run(plugin.PhaseCatalysts, nil)
}

func (p *recordingPlugin) RegisterAdvanced(*recipe.Registry) error {
	return p.run(plugin.PhaseAdvanced, nil)
}

// uidOnly implements no phase at all.
type uidOnly string

func (u uidOnly) UID() string { return string(u) }

type mapTranslator map[string]string

func (m mapTranslator) Translate(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

type failureCounter struct{ failures []string }

func (c *failureCounter) PluginFailed(uid, phase string) {
	c.failures = append(c.failures, uid+":"+phase)
}

func woodItems() []testutil.Item {
	return []testutil.Item{
		{ID: "minecraft:oak_log", Name: "Oak Log", Count: 1},
		{ID: "minecraft:oak_planks", Name: "Oak Planks", Count: 1},
	}
}

func TestLoader_RunsPhasesInOrder(t *testing.T) {
	var calls []string
	a := &recordingPlugin{uid: "a", calls: &calls}
	b := &recordingPlugin{uid: "b", calls: &calls}

	res, err := plugin.NewLoader([]plugin.Plugin{a, uidOnly("c"), b}).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.NotNil(t, res.Manager)
	require.NotNil(t, res.Registry)

	var want []string
	for _, phase := range plugin.Phases {
		want = append(want, "a:"+phase.String(), "b:"+phase.String())
	}
	require.Equal(t, want, calls)
}

func TestLoader_RegistersInfoCategory(t *testing.T) {
	res, err := plugin.NewLoader(nil).Load(context.Background())
	require.NoError(t, err)

	_, ok := res.Categories.Lookup(recipe.InfoType.UID())
	require.True(t, ok)
}

func TestLoader_FailuresAreIsolated(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	failing := &recordingPlugin{uid: "failing", calls: &calls, fail: map[plugin.Phase]func() error{
		plugin.PhaseSubtypes: func() error { return boom },
		plugin.PhaseRecipes:  func() error { panic("bad recipe") },
	}}
	healthy := &recordingPlugin{
		uid:     "healthy",
		calls:   &calls,
		items:   woodItems(),
		recipes: []testutil.Recipe{{ID: "planks", Inputs: []string{"minecraft:oak_log"}, Outputs: []string{"minecraft:oak_planks"}}},
	}
	counter := &failureCounter{}

	res, err := plugin.NewLoader([]plugin.Plugin{failing, healthy}, plugin.WithFailureObserver(counter)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Failures, 2)

	require.Equal(t, "failing", res.Failures[0].PluginUID)
	require.Equal(t, plugin.PhaseSubtypes, res.Failures[0].Phase)
	require.ErrorIs(t, res.Failures[0], boom)

	require.Equal(t, plugin.PhaseRecipes, res.Failures[1].Phase)
	require.ErrorIs(t, res.Failures[1], plugin.ErrPanic)
	require.ErrorContains(t, res.Failures[1], "bad recipe")

	require.Equal(t, []string{"failing:subtypes", "failing:recipes"}, counter.failures)

	// The healthy plugin still ran every phase and its recipe is there.
	require.True(t, slices.Contains(calls, "healthy:advanced"))
	require.Equal(t, 1, res.Registry.RecipeCount(testutil.CraftingType.UID()))

	planks, err := ingredient.AllIngredients(res.Manager, testutil.ItemType)
	require.NoError(t, err)
	require.Len(t, planks, 2)
}

func TestLoader_AddIngredientInfoTranslatesLines(t *testing.T) {
	var calls []string
	p := &recordingPlugin{
		uid:   "info",
		calls: &calls,
		items: woodItems(),
		info: map[string][]string{
			"minecraft:oak_log":    {"info.oak_log"},
			"minecraft:oak_planks": nil,
		},
	}
	tr := mapTranslator{"info.oak_log": "Drops from oak trees."}

	res, err := plugin.NewLoader([]plugin.Plugin{p}, plugin.WithTranslator(tr)).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Equal(t, 1, res.Registry.RecipeCount(recipe.InfoType.UID()))

	log, ok := ingredient.CreateTyped(res.Manager, testutil.ItemType, testutil.Item{ID: "minecraft:oak_log", Count: 1})
	require.True(t, ok)
	pages := slices.Collect(recipe.CreateLookup(res.Registry, recipe.InfoType).
		LimitFocus(recipe.NewFocus(recipe.RoleOutput, log)).
		Get())
	require.Len(t, pages, 1)
	require.Equal(t, []string{"Drops from oak trees."}, pages[0].Lines)
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []string
	_, err := plugin.NewLoader([]plugin.Plugin{&recordingPlugin{uid: "a", calls: &calls}}).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, calls)
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "catalysts", plugin.PhaseCatalysts.String())
	require.Equal(t, "unknown", plugin.Phase(42).String())
}
