package testutil

import "testing"

// Woodworking builds a fixture with a handful of wood and smelting recipes:
//
//	crafting: planks (oak_log -> oak_planks), sticks (oak_planks -> stick),
//	          table (oak_planks -> crafting_table)
//	smelting: charcoal (oak_log -> charcoal), iron (iron_ore -> iron_ingot)
//
// crafting_table catalyzes crafting and furnace catalyzes smelting.
func Woodworking(t *testing.T) *Fixture {
	t.Helper()
	return WoodworkingBuilder(t).Build()
}

// WoodworkingBuilder returns the Woodworking builder so tests can extend it.
func WoodworkingBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(t).
		WithItem("minecraft:oak_log", Tags("minecraft:logs", "minecraft:logs_that_burn"), Tab("building_blocks")).
		WithItem("minecraft:oak_planks", Tags("minecraft:planks"), Tab("building_blocks")).
		WithItem("minecraft:stick", Tab("ingredients")).
		WithItem("minecraft:crafting_table", Tab("functional")).
		WithItem("minecraft:furnace", Tab("functional")).
		WithItem("minecraft:charcoal", Tab("ingredients"), Tooltip("Burns for 80 seconds")).
		WithItem("minecraft:iron_ore", Tags("minecraft:iron_ores"), Tab("natural")).
		WithItem("minecraft:iron_ingot", Tab("ingredients")).
		WithItem("create:brass_ingot", Tab("create")).
		WithRecipe(CraftingType, "minecraft:oak_planks", []string{"minecraft:oak_log"}, []string{"minecraft:oak_planks"}).
		WithRecipe(CraftingType, "minecraft:stick", []string{"minecraft:oak_planks", "minecraft:oak_planks"}, []string{"minecraft:stick"}).
		WithRecipe(CraftingType, "minecraft:crafting_table", []string{"minecraft:oak_planks"}, []string{"minecraft:crafting_table"}).
		WithRecipe(SmeltingType, "minecraft:charcoal", []string{"minecraft:oak_log"}, []string{"minecraft:charcoal"}).
		WithRecipe(SmeltingType, "minecraft:iron_ingot", []string{"minecraft:iron_ore"}, []string{"minecraft:iron_ingot"}).
		WithCatalyst(CraftingType, "minecraft:crafting_table").
		WithCatalyst(SmeltingType, "minecraft:furnace")
}
