package presentation

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/recipe"
)

func TestFormatIngredients_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, false)

	require.NoError(t, f.FormatIngredients([]IngredientDTO{
		{UID: "minecraft:stick", Name: "Stick", Mod: "Minecraft"},
		{UID: "minecraft:charcoal", Name: "Charcoal", Mod: "Minecraft", Hidden: true},
	}))
	require.Equal(t,
		"minecraft:stick     Stick     Minecraft  \n"+
			"minecraft:charcoal  Charcoal  Minecraft  (hidden)\n",
		buf.String())
}

func TestFormatIngredients_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, true)

	require.NoError(t, f.FormatIngredients([]IngredientDTO{{Type: "item_stack", UID: "minecraft:stick", Name: "Stick"}}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "minecraft:stick", got[0]["uid"])
	require.NotContains(t, got[0], "tags")
	require.NotContains(t, got[0], "hidden")
}

func TestFormatRecipes_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, false)

	require.NoError(t, f.FormatRecipes([]RecipeDTO{
		{
			Category: "minecraft:smelting", Title: "Smelting", Name: "minecraft:charcoal",
			Slots: []SlotDTO{
				{Role: "input", Ingredients: []string{"minecraft:oak_log", "minecraft:birch_log"}},
				{Role: "output", Ingredients: []string{"minecraft:charcoal"}},
			},
			Catalysts: []string{"minecraft:furnace"},
		},
		{Category: "minecraft:smelting", Title: "Smelting", Error: "boom"},
	}))
	require.Equal(t,
		"Smelting (minecraft:smelting)\n"+
			"  made in:            minecraft:furnace\n"+
			"  minecraft:charcoal  minecraft:oak_log|minecraft:birch_log  ->  minecraft:charcoal\n"+
			"  -                   error: boom\n",
		buf.String())
}

func TestFromView(t *testing.T) {
	v := recipe.View{Category: "minecraft:anvil", Name: "minecraft:self_repair.minecraft_iron_sword", Err: errors.New("layout failed")}

	dto := FromView(v, "Anvil", nil)
	require.Equal(t, "Anvil", dto.Title)
	require.Equal(t, "layout failed", dto.Error)
	require.Empty(t, dto.Slots)
	require.Empty(t, dto.Catalysts)
}

func TestFormatBookmarks(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	dtos := []BookmarkDTO{
		FromBookmark(bookmark.ReconstituteBookmark("b1", "item_stack", "minecraft:stick", created), false),
		FromBookmark(bookmark.ReconstituteBookmark("b2", "item_stack", "create:cog", created), true),
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatBookmarks(dtos))
	require.Equal(t,
		"1  minecraft:stick  b1  \n"+
			"2  create:cog       b2  (not loaded)\n",
		buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(&buf, true).FormatBookmarks(dtos))
	require.Contains(t, buf.String(), `"created_at": "2024-05-01T12:00:00Z"`)
	require.Contains(t, buf.String(), `"dormant": true`)
}

func TestFormatTypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatTypes("Recipe categories", []TypeDTO{
		{UID: "minecraft:crafting", Title: "Crafting", Count: 12, Catalysts: []string{"minecraft:crafting_table"}},
		{UID: "almanac:information", Title: "almanac:information", Count: 3},
	}))
	require.Equal(t,
		"Recipe categories\n"+
			"  Crafting (minecraft:crafting)  12  minecraft:crafting_table\n"+
			"  almanac:information            3   \n",
		buf.String())
}
