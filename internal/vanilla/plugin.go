package vanilla

import (
	"errors"
	"sync/atomic"

	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/plugin"
	"github.com/zjrosen/almanac/internal/recipe"
)

// PluginUID identifies the vanilla plugin.
const PluginUID = "minecraft:vanilla"

// Catalyst item ids.
const (
	CraftingTableID = "minecraft:crafting_table"
	FurnaceID       = "minecraft:furnace"
	AnvilID         = "minecraft:anvil"
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithEnchantChecker replaces the check deciding which books apply to which items.
func WithEnchantChecker(c EnchantChecker) Option {
	return func(p *Plugin) { p.canEnchant = c }
}

// Plugin registers the base game content described by a data pack catalog.
// The catalog can be swapped on reload; helpers always read the current one.
type Plugin struct {
	catalog    atomic.Pointer[gamedata.Catalog]
	translator Translator
	canEnchant EnchantChecker
}

var (
	_ plugin.SubtypeRegistrar    = (*Plugin)(nil)
	_ plugin.IngredientRegistrar = (*Plugin)(nil)
	_ plugin.CategoryRegistrar   = (*Plugin)(nil)
	_ plugin.RecipeRegistrar     = (*Plugin)(nil)
	_ plugin.CatalystRegistrar   = (*Plugin)(nil)
)

// NewPlugin creates the plugin for catalog c. tr may be nil.
func NewPlugin(c *gamedata.Catalog, tr Translator, opts ...Option) *Plugin {
	p := &Plugin{translator: tr}
	p.catalog.Store(c)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plugin) UID() string { return PluginUID }

// Catalog returns the current catalog.
func (p *Plugin) Catalog() *gamedata.Catalog { return p.catalog.Load() }

// SetCatalog swaps the catalog helpers and renderers read from.
func (p *Plugin) SetCatalog(c *gamedata.Catalog) { p.catalog.Store(c) }

func (p *Plugin) RegisterItemSubtypes(r *ingredient.SubtypeRegistry) error {
	return RegisterItemSubtypes(r)
}

func (p *Plugin) RegisterIngredients(r *ingredient.Registration) error {
	c := p.Catalog()
	items := &ItemHelper{source: p, subtypes: r.Subtypes(), translator: p.translator}
	if err := ingredient.Register[ItemStack](r, ItemType, ItemStacks(c), items, newItemRenderer(p, p.translator)); err != nil {
		return err
	}
	fluids := &FluidHelper{source: p, translator: p.translator}
	if err := ingredient.Register[FluidStack](r, FluidType, FluidStacks(c), fluids, FluidRenderer{}); err != nil {
		return err
	}

	var errs []error
	for _, def := range c.Pack().Items {
		if len(def.Aliases) == 0 {
			continue
		}
		if err := ingredient.AddAlias(r, ItemType, NewItemStack(def.ID, 1), def.Aliases...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Plugin) RegisterCategories(r *recipe.CategoryRegistry) error {
	return errors.Join(
		recipe.RegisterCategory[CraftingRecipe](r, CraftingCategory{}),
		recipe.RegisterCategory[SmeltingRecipe](r, SmeltingCategory{}),
		recipe.RegisterCategory[AnvilRecipe](r, AnvilCategory{}),
	)
}

func (p *Plugin) RegisterRecipes(r *plugin.RecipeRegistration) error {
	c := p.Catalog()
	if err := recipe.AddRecipes(r.Registry, CraftingType, CraftingRecipes(c)...); err != nil {
		return err
	}
	if err := recipe.AddRecipes(r.Registry, SmeltingType, SmeltingRecipes(c)...); err != nil {
		return err
	}

	anvil, err := NewAnvilMaker(c, r.Manager, p.canEnchant).Recipes()
	if err != nil {
		return err
	}
	if err := recipe.AddRecipes(r.Registry, AnvilType, anvil...); err != nil {
		return err
	}

	for _, info := range c.Pack().Info {
		if len(info.Items) > 0 {
			if err := plugin.AddIngredientInfo(r, ItemType, stacks(info.Items), info.Lines...); err != nil {
				return err
			}
		}
		if len(info.Fluids) > 0 {
			fluids := make([]FluidStack, len(info.Fluids))
			for i, id := range info.Fluids {
				fluids[i] = FluidStack{ID: id, Amount: BucketAmount}
			}
			if err := plugin.AddIngredientInfo(r, FluidType, fluids, info.Lines...); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Plugin) RegisterRecipeCatalysts(r *recipe.Registry) error {
	catalysts := []struct {
		recipeType recipe.AnyRecipeType
		itemID     string
	}{
		{CraftingType, CraftingTableID},
		{SmeltingType, FurnaceID},
		{AnvilType, AnvilID},
	}
	c := p.Catalog()
	for _, cat := range catalysts {
		if _, ok := c.Item(cat.itemID); !ok {
			log.Warn(log.CatGameData, "Catalyst item missing from data packs", "item", cat.itemID, "type", cat.recipeType.UID())
			continue
		}
		typed, ok := ingredient.CreateTyped(r.Manager(), ItemType, NewItemStack(cat.itemID, 1))
		if !ok {
			continue
		}
		if err := r.AddCatalysts(cat.recipeType, typed); err != nil {
			return err
		}
	}
	return nil
}
