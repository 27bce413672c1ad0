// Package testutil builds small ingredient and recipe fixtures for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/recipe"
)

// ItemType is the ingredient type of Item.
var ItemType = ingredient.NewType[Item]("test:item")

// Recipe is a minimal recipe record over item ids.
type Recipe struct {
	ID      string
	Inputs  []string
	Outputs []string
}

var (
	CraftingType = recipe.NewRecipeType[Recipe]("test:crafting")
	SmeltingType = recipe.NewRecipeType[Recipe]("test:smelting")
)

// ItemHelper implements ingredient.Helper for Item.
type ItemHelper struct{}

func (ItemHelper) UID(i Item, _ ingredient.UIDContext) string { return i.ID }
func (ItemHelper) DisplayName(i Item) string                  { return i.Name }
func (ItemHelper) ModID(i Item) string                        { return i.mod() }
func (ItemHelper) ResourceID(i Item) string                   { return i.ID }
func (ItemHelper) Tags(i Item) []string                       { return i.Tags }
func (ItemHelper) Categories(i Item) []string                 { return []string{i.Tab} }
func (ItemHelper) IsValid(i Item) bool                        { return i.ID != "" && i.Count > 0 }
func (ItemHelper) IsOnServer(Item) bool                       { return true }
func (ItemHelper) ErrorInfo(i Item) string                    { return fmt.Sprintf("%dx %s", i.Count, i.ID) }
func (ItemHelper) Normalize(i Item) Item {
	i.Count = 1
	return i
}

// ItemRenderer exposes Item tooltips.
type ItemRenderer struct{}

func (ItemRenderer) Tooltip(i Item) []string { return i.Tooltip }

// RecipeCategory lays out Recipe records by resolving ids through the known items.
type RecipeCategory struct {
	Type  *recipe.RecipeType[Recipe]
	Items map[string]Item
}

func (c RecipeCategory) RecipeType() *recipe.RecipeType[Recipe] { return c.Type }
func (c RecipeCategory) Title() string                          { return c.Type.UID() }

func (c RecipeCategory) RegistryName(r Recipe) (string, bool) { return r.ID, r.ID != "" }

func (c RecipeCategory) SetRecipe(b *recipe.LayoutBuilder, r Recipe, _ recipe.FocusGroup) error {
	for _, id := range r.Inputs {
		item, ok := c.Items[id]
		if !ok {
			return fmt.Errorf("unknown input %s", id)
		}
		recipe.AddIngredients(b.AddSlot(recipe.RoleInput), ItemType, item)
	}
	for _, id := range r.Outputs {
		item, ok := c.Items[id]
		if !ok {
			return fmt.Errorf("unknown output %s", id)
		}
		recipe.AddIngredients(b.AddSlot(recipe.RoleOutput), ItemType, item)
	}
	return nil
}

// Fixture is a built manager and recipe registry.
type Fixture struct {
	t        *testing.T
	Manager  *ingredient.Manager
	Registry *recipe.Registry
	Items    map[string]Item
}

// Typed returns the typed ingredient of a known item id.
func (f *Fixture) Typed(id string) ingredient.Typed[Item] {
	f.t.Helper()
	typed, ok := ingredient.TypedByUID(f.Manager, ItemType, id)
	require.True(f.t, ok, "unknown item %s", id)
	return typed
}

type recipeData struct {
	recipeType *recipe.RecipeType[Recipe]
	recipe     Recipe
}

type catalystData struct {
	recipeType *recipe.RecipeType[Recipe]
	itemID     string
}

// Builder accumulates items, recipes and catalysts.
type Builder struct {
	t         *testing.T
	items     []Item
	recipes   []recipeData
	catalysts []catalystData
	mgrOpts   []ingredient.Option
	regOpts   []recipe.Option
}

// NewBuilder creates an empty fixture builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithItem adds an item with optional configuration.
func (b *Builder) WithItem(id string, opts ...ItemOption) *Builder {
	item := defaultItem(id)
	for _, opt := range opts {
		opt(&item)
	}
	b.items = append(b.items, item)
	return b
}

// WithRecipe adds a recipe of the given type.
func (b *Builder) WithRecipe(t *recipe.RecipeType[Recipe], id string, inputs, outputs []string) *Builder {
	b.recipes = append(b.recipes, recipeData{recipeType: t, recipe: Recipe{ID: id, Inputs: inputs, Outputs: outputs}})
	return b
}

// WithCatalyst registers a known item as catalyst of a recipe type.
func (b *Builder) WithCatalyst(t *recipe.RecipeType[Recipe], itemID string) *Builder {
	b.catalysts = append(b.catalysts, catalystData{recipeType: t, itemID: itemID})
	return b
}

// WithManagerOptions passes options to the ingredient manager.
func (b *Builder) WithManagerOptions(opts ...ingredient.Option) *Builder {
	b.mgrOpts = append(b.mgrOpts, opts...)
	return b
}

// WithRegistryOptions passes options to the recipe registry.
func (b *Builder) WithRegistryOptions(opts ...recipe.Option) *Builder {
	b.regOpts = append(b.regOpts, opts...)
	return b
}

// Build registers everything and returns the fixture.
func (b *Builder) Build() *Fixture {
	b.t.Helper()

	items := make(map[string]Item, len(b.items))
	for _, it := range b.items {
		items[it.ID] = it
	}

	reg := ingredient.NewRegistration(nil)
	require.NoError(b.t, ingredient.Register[Item](reg, ItemType, b.items, ItemHelper{}, ItemRenderer{}))
	m := reg.Build(b.mgrOpts...)

	categories := recipe.NewCategoryRegistry()
	require.NoError(b.t, recipe.RegisterCategory[Recipe](categories, RecipeCategory{Type: CraftingType, Items: items}))
	require.NoError(b.t, recipe.RegisterCategory[Recipe](categories, RecipeCategory{Type: SmeltingType, Items: items}))
	r := recipe.NewRegistry(categories, m, b.regOpts...)

	for _, rd := range b.recipes {
		require.NoError(b.t, recipe.AddRecipes(r, rd.recipeType, rd.recipe))
	}
	f := &Fixture{t: b.t, Manager: m, Registry: r, Items: items}
	for _, c := range b.catalysts {
		require.NoError(b.t, r.AddCatalysts(c.recipeType, f.Typed(c.itemID)))
	}
	return f
}
