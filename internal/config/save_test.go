package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithViper(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSaveBlacklist_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveBlacklist(configPath, []string{"minecraft:stick", "minecraft:potion:minecraft:water"}))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "filter:")
	assert.Contains(t, string(data), "- minecraft:stick")
}

func TestSaveBlacklist_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my settings
locale: fr_fr
filter:
  # keep this comment
  sort: -name
  blacklist:
    - minecraft:dirt
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o644))

	require.NoError(t, SaveBlacklist(configPath, []string{"minecraft:stick"}))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# my settings")
	assert.Contains(t, content, "# keep this comment")
	assert.Contains(t, content, "locale: fr_fr")
	assert.Contains(t, content, "sort: -name")
	assert.NotContains(t, content, "minecraft:dirt")

	cfg := loadWithViper(t, configPath)
	require.Equal(t, []string{"minecraft:stick"}, cfg.Filter.Blacklist)
	require.Equal(t, "-name", cfg.Filter.Sort)
}

func TestSaveHidePatterns_AddsToExistingFilterSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("filter:\n  edit_mode: true\n"), 0o644))

	require.NoError(t, SaveHidePatterns(configPath, []string{"minecraft:potion:*"}))

	cfg := loadWithViper(t, configPath)
	require.True(t, cfg.Filter.EditMode)
	require.Equal(t, []string{"minecraft:potion:*"}, cfg.Filter.HidePatterns)
}

func TestSaveLocale_ReplacesScalarSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("locale: en_us\n"), 0o644))

	require.NoError(t, SaveLocale(configPath, "fr_fr"))

	cfg := loadWithViper(t, configPath)
	require.Equal(t, "fr_fr", cfg.Locale)
}

func TestSave_RejectsNonMappingDocument(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("- just\n- a list\n"), 0o644))

	require.Error(t, SaveLocale(configPath, "fr_fr"))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveBlacklist(configPath, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
