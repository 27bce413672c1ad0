package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/config"
)

func testApp(t *testing.T) *app.App {
	t.Helper()
	c := config.Defaults()
	c.Bookmarks.Path = ""
	a, err := app.New(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestResolve(t *testing.T) {
	a := testApp(t)

	item, err := resolve(a, "minecraft:oak_log")
	require.NoError(t, err)
	require.Equal(t, "minecraft:oak_log", item.UID())

	fluid, err := resolve(a, "minecraft:water")
	require.NoError(t, err)
	require.Equal(t, "minecraft:water", fluid.UID())

	_, err = resolve(a, "minecraft:unobtainium")
	require.ErrorContains(t, err, `unknown ingredient "minecraft:unobtainium"`)
}

func TestDescribe_MarksHidden(t *testing.T) {
	a := testApp(t)
	log, err := resolve(a, "minecraft:oak_log")
	require.NoError(t, err)

	dto, err := describe(a, log)
	require.NoError(t, err)
	require.False(t, dto.Hidden)
	require.Equal(t, "Minecraft", dto.Mod)

	require.NoError(t, setHidden(a, []string{"minecraft:oak_log"}, true))
	dto, err = describe(a, log)
	require.NoError(t, err)
	require.True(t, dto.Hidden)
	require.Equal(t, []string{"minecraft:oak_log"}, a.Filter.Blacklist())

	require.NoError(t, setHidden(a, []string{"minecraft:oak_log"}, false))
	require.Empty(t, a.Filter.Blacklist())
}

func TestSetHidden_UnknownUID(t *testing.T) {
	a := testApp(t)

	require.Error(t, setHidden(a, []string{"minecraft:unobtainium"}, true))
}

func TestRemoveBookmark(t *testing.T) {
	a := testApp(t)
	stick, err := resolve(a, "minecraft:stick")
	require.NoError(t, err)
	planks, err := resolve(a, "minecraft:oak_planks")
	require.NoError(t, err)

	byUID, err := a.Bookmarks.Add(stick)
	require.NoError(t, err)
	byID, err := a.Bookmarks.Add(planks)
	require.NoError(t, err)

	require.NoError(t, removeBookmark(a.Bookmarks, byUID.UID()))
	require.NoError(t, removeBookmark(a.Bookmarks, byID.ID()))
	require.Zero(t, a.Bookmarks.Len())

	var nf *bookmark.NotFoundError
	require.ErrorAs(t, removeBookmark(a.Bookmarks, "minecraft:stick"), &nf)
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"types", "search", "show", "recipes", "uses", "bookmarks", "hide", "unhide", "watch", "serve"} {
		require.True(t, names[want], want)
	}
}
