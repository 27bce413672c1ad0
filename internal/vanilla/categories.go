package vanilla

import (
	"github.com/zjrosen/almanac/internal/recipe"
)

// CraftingRecipe is a crafting table recipe. Each input slot lists the
// stacks accepted in it.
type CraftingRecipe struct {
	ID        string
	Inputs    [][]ItemStack
	Output    ItemStack
	Shapeless bool
}

// SmeltingRecipe is a furnace recipe.
type SmeltingRecipe struct {
	ID          string
	Input       []ItemStack
	Output      ItemStack
	Experience  float64
	CookingTime int
}

// AnvilRecipe combines a left and a right stack. Left, Right and Outputs are
// parallel lists: Left[i] with Right[i] gives Outputs[i].
type AnvilRecipe struct {
	ID      string
	Left    []ItemStack
	Right   []ItemStack
	Outputs []ItemStack
}

var (
	CraftingType = recipe.NewRecipeType[CraftingRecipe]("minecraft:crafting")
	SmeltingType = recipe.NewRecipeType[SmeltingRecipe]("minecraft:smelting")
	AnvilType    = recipe.NewRecipeType[AnvilRecipe]("minecraft:anvil")
)

type CraftingCategory struct{}

func (CraftingCategory) RecipeType() *recipe.RecipeType[CraftingRecipe] { return CraftingType }
func (CraftingCategory) Title() string                                  { return "Crafting" }

func (CraftingCategory) RegistryName(r CraftingRecipe) (string, bool) { return r.ID, r.ID != "" }

func (CraftingCategory) SetRecipe(b *recipe.LayoutBuilder, r CraftingRecipe, _ recipe.FocusGroup) error {
	for _, slot := range r.Inputs {
		recipe.AddIngredients(b.AddSlot(recipe.RoleInput), ItemType, slot...)
	}
	recipe.AddIngredients(b.AddSlot(recipe.RoleOutput), ItemType, r.Output)
	return nil
}

type SmeltingCategory struct{}

func (SmeltingCategory) RecipeType() *recipe.RecipeType[SmeltingRecipe] { return SmeltingType }
func (SmeltingCategory) Title() string                                  { return "Smelting" }

func (SmeltingCategory) RegistryName(r SmeltingRecipe) (string, bool) { return r.ID, r.ID != "" }

func (SmeltingCategory) SetRecipe(b *recipe.LayoutBuilder, r SmeltingRecipe, _ recipe.FocusGroup) error {
	recipe.AddIngredients(b.AddSlot(recipe.RoleInput), ItemType, r.Input...)
	recipe.AddIngredients(b.AddSlot(recipe.RoleOutput), ItemType, r.Output)
	return nil
}

type AnvilCategory struct{}

func (AnvilCategory) RecipeType() *recipe.RecipeType[AnvilRecipe] { return AnvilType }
func (AnvilCategory) Title() string                               { return "Anvil" }

func (AnvilCategory) RegistryName(r AnvilRecipe) (string, bool) { return r.ID, r.ID != "" }

func (AnvilCategory) SetRecipe(b *recipe.LayoutBuilder, r AnvilRecipe, _ recipe.FocusGroup) error {
	recipe.AddIngredients(b.AddSlot(recipe.RoleInput), ItemType, r.Left...)
	recipe.AddIngredients(b.AddSlot(recipe.RoleInput), ItemType, r.Right...)
	recipe.AddIngredients(b.AddSlot(recipe.RoleOutput), ItemType, r.Outputs...)
	return nil
}
