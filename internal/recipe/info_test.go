package recipe_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/recipe"
	"github.com/zjrosen/almanac/internal/testutil"
)

func TestInfoRecipe(t *testing.T) {
	f := testutil.Woodworking(t)
	require.NoError(t, recipe.RegisterCategory[recipe.InfoRecipe](f.Registry.Categories(), recipe.InfoCategory{}))

	info, ok := recipe.NewInfoRecipe(f.Manager, testutil.ItemType, []testutil.Item{
		f.Items["minecraft:charcoal"],
		{ID: ""},
	}, "Made by smelting logs.")
	require.True(t, ok)
	require.Len(t, info.Ingredients, 1)
	require.NoError(t, recipe.AddRecipes(f.Registry, recipe.InfoType, info))

	got := slices.Collect(recipe.CreateLookup(f.Registry, recipe.InfoType).
		LimitFocus(recipe.NewFocus(recipe.RoleOutput, f.Typed("minecraft:charcoal"))).
		Get())
	require.Len(t, got, 1)
	require.Equal(t, []string{"Made by smelting logs."}, got[0].Lines)

	_, ok = recipe.NewInfoRecipe(f.Manager, testutil.ItemType, []testutil.Item{f.Items["minecraft:stick"]})
	require.False(t, ok, "no lines")
}
