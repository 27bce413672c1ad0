package vanilla

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/ingredient"
)

func defaultCatalog(t *testing.T) *gamedata.Catalog {
	t.Helper()
	pack, err := gamedata.Load(context.Background(), gamedata.Default())
	require.NoError(t, err)
	return gamedata.NewCatalog(pack)
}

func itemManager(t *testing.T, c *gamedata.Catalog) *ingredient.Manager {
	t.Helper()
	p := NewPlugin(c, nil)
	reg := ingredient.NewRegistration(nil)
	require.NoError(t, p.RegisterItemSubtypes(reg.Subtypes()))
	require.NoError(t, p.RegisterIngredients(reg))
	return reg.Build()
}

func TestAnvilMaker_PanickingCheckerProducesNoBooks(t *testing.T) {
	c := defaultCatalog(t)
	m := itemManager(t, c)

	recipes, err := NewAnvilMaker(c, m, func(gamedata.ItemDef, gamedata.EnchantmentDef) bool {
		panic("checker exploded")
	}).Recipes()
	require.NoError(t, err)
	require.NotEmpty(t, recipes)

	for _, r := range recipes {
		require.False(t, strings.HasPrefix(r.ID, "minecraft:enchantment."), r.ID)
	}
}

func TestAnvilMaker_RepairDamage(t *testing.T) {
	c := defaultCatalog(t)
	m := itemManager(t, c)

	recipes, err := NewAnvilMaker(c, m, nil).Recipes()
	require.NoError(t, err)

	byID := make(map[string]AnvilRecipe)
	for _, r := range recipes {
		byID[r.ID] = r
	}

	self, ok := byID["minecraft:self_repair.minecraft_iron_sword"]
	require.True(t, ok)
	require.Equal(t, 187, self.Left[0].Damage)
	require.Equal(t, 187, self.Right[0].Damage)
	require.Equal(t, 125, self.Outputs[0].Damage)

	materials, ok := byID["minecraft:materials_repair.minecraft_wooden_sword"]
	require.True(t, ok)
	// repaired with any plank
	require.Len(t, materials.Right, 2)
	require.Equal(t, "minecraft:oak_planks", materials.Right[0].ID)
	require.Equal(t, 59, materials.Left[0].Damage)
	require.Equal(t, 44, materials.Outputs[0].Damage)
}

func TestAnvilMaker_BookLevels(t *testing.T) {
	c := defaultCatalog(t)
	m := itemManager(t, c)

	recipes, err := NewAnvilMaker(c, m, func(item gamedata.ItemDef, e gamedata.EnchantmentDef) bool {
		return item.ID == "minecraft:diamond_pickaxe" && e.ID == "minecraft:efficiency"
	}).Recipes()
	require.NoError(t, err)

	var books []AnvilRecipe
	for _, r := range recipes {
		if strings.HasPrefix(r.ID, "minecraft:enchantment.") {
			books = append(books, r)
		}
	}
	require.Len(t, books, 1)
	require.Equal(t, "minecraft:enchantment.minecraft_diamond_pickaxe", books[0].ID)
	require.Len(t, books[0].Outputs, 5)
	require.Equal(t, []Enchantment{{ID: "minecraft:efficiency", Level: 3}}, books[0].Outputs[2].Enchantments)
	require.Equal(t, EnchantedBookID, books[0].Right[2].ID)
}

func TestItemRenderer_Tooltip(t *testing.T) {
	c := defaultCatalog(t)
	p := NewPlugin(c, nil)
	r := newItemRenderer(p, nil)

	sword := NewItemStack("minecraft:iron_sword", 1).WithDamage(50).
		WithEnchantments(Enchantment{ID: "minecraft:sharpness", Level: 4})
	require.Equal(t, []string{"Sharpness IV", "Durability: 200 / 250"}, r.Tooltip(sword))

	potion := ItemStack{ID: PotionID, Count: 1, Potion: "minecraft:swiftness"}
	require.Equal(t, []string{"Speed (3:00)"}, r.Tooltip(potion))
}

func TestItemHelper_IsOnServer(t *testing.T) {
	c := defaultCatalog(t)
	h := &ItemHelper{source: NewPlugin(c, nil), subtypes: ingredient.NewSubtypeRegistry()}

	require.True(t, h.IsOnServer(NewItemStack("minecraft:stick", 1)))
	require.False(t, h.IsOnServer(NewItemStack("minecraft:unobtainium", 1)))
	require.False(t, h.IsOnServer(EnchantedBook(Enchantment{ID: "minecraft:smite", Level: 1})))
	require.False(t, h.IsOnServer(ItemStack{ID: PotionID, Count: 1, Potion: "minecraft:luck"}))
}

func TestAnvilMaker_RepairRecipesComeFirst(t *testing.T) {
	c := defaultCatalog(t)
	m := itemManager(t, c)

	recipes, err := NewAnvilMaker(c, m, nil).Recipes()
	require.NoError(t, err)
	require.NotEmpty(t, recipes)

	firstBook := slices.IndexFunc(recipes, func(r AnvilRecipe) bool {
		return strings.HasPrefix(r.ID, "minecraft:enchantment.")
	})
	require.Positive(t, firstBook)
	for _, r := range recipes[:firstBook] {
		require.Contains(t, r.ID, "repair.", r.ID)
	}
	for _, r := range recipes[firstBook:] {
		require.True(t, strings.HasPrefix(r.ID, "minecraft:enchantment."), r.ID)
	}
}

func TestSanitizePath(t *testing.T) {
	require.Equal(t, "minecraft_iron_sword", sanitizePath("minecraft:iron_sword"))
	require.Equal(t, "create_brass.ingot-2", sanitizePath("Create:Brass.Ingot-2"))
	require.Equal(t, "a_b_c", sanitizePath("a b#c"))
}
