package gamedata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultPack(t *testing.T) {
	pack, err := Load(context.Background(), Default())
	require.NoError(t, err)

	require.NotEmpty(t, pack.Items)
	require.Equal(t, "minecraft:oak_log", pack.Items[0].ID, "files merge in path order")
	require.Len(t, pack.Fluids, 2)
	require.Len(t, pack.Enchantments, 4)
	require.Len(t, pack.Stews, 3)
	require.NotEmpty(t, pack.Crafting)
	require.Len(t, pack.Smelting, 3)
	require.Equal(t, "Bâton", pack.Lang["fr_fr"]["item.minecraft.stick"])
	require.Equal(t, "Minecraft", pack.ModNames()["minecraft"])
}

func TestLoad_IgnoresUnknownFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"items/a.yaml":   {Data: []byte("- id: test:a\n  name: A\n")},
		"notes/x.yaml":   {Data: []byte("not: routed\n")},
		"items/read.txt": {Data: []byte("ignored")},
	}
	pack, err := Load(context.Background(), fsys)
	require.NoError(t, err)
	require.Len(t, pack.Items, 1)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), fstest.MapFS{"README.md": {Data: []byte("x")}})
	require.ErrorIs(t, err, ErrNoPack)

	_, err = Load(context.Background(), fstest.MapFS{
		"items/a.yaml": {Data: []byte("id: not a list\n")},
	})
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "items/a.yaml", fileErr.Path)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Default())
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadAll_LaterPacksOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "items"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items", "override.yaml"), []byte(`
- id: minecraft:stick
  name: Sturdy Stick
- id: create:brass_ingot
  name: Brass Ingot
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.yaml"), []byte("id: create\nmods:\n  create: Create\n"), 0o644))

	pack, err := LoadAll(context.Background(), []string{dir})
	require.NoError(t, err)

	c := NewCatalog(pack)
	stick, ok := c.Item("minecraft:stick")
	require.True(t, ok)
	require.Equal(t, "Sturdy Stick", stick.Name)
	_, ok = c.Item("create:brass_ingot")
	require.True(t, ok)
	require.Equal(t, "Create", pack.ModNames()["create"])

	count := 0
	for _, it := range pack.Items {
		if it.ID == "minecraft:stick" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
