package i18n

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslate_FallsBackToDefaultLocale(t *testing.T) {
	tr := New("fr_fr")
	tr.Add("en_us", map[string]string{"item.stick": "Stick", "item.log": "Log"})
	tr.Add("fr_fr", map[string]string{"item.stick": "Bâton"})

	require.Equal(t, "Bâton", tr.Translate("item.stick"))
	require.Equal(t, "Log", tr.Translate("item.log"))
	require.Equal(t, "item.unknown", tr.Translate("item.unknown"))
}

func TestSetLocale(t *testing.T) {
	tr := New("")
	require.Equal(t, DefaultLocale, tr.Locale())

	tr.SetLocale("DE-de")
	require.Equal(t, "de_de", tr.Locale())
}

func TestOnLocaleChange_RunsOnlyOnSwitch(t *testing.T) {
	tr := New("en_us")
	var got []string
	tr.OnLocaleChange(func(locale string) { got = append(got, locale) })

	tr.SetLocale("en_US")
	tr.SetLocale("fr_fr")
	tr.SetLocale("fr_fr")

	require.Equal(t, []string{"fr_fr"}, got)
}

func TestCompare_IgnoresCase(t *testing.T) {
	tr := New("en_us")
	words := []string{"stick", "Apple", "banana", "Branch"}
	slices.SortStableFunc(words, tr.Compare)
	require.Equal(t, []string{"Apple", "banana", "Branch", "stick"}, words)
	require.Equal(t, 0, tr.Compare("STICK", "stick"))
}

func TestFold(t *testing.T) {
	tr := New("en_us")
	require.Equal(t, "oak planks", tr.Fold("Oak PLANKS"))
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"lang/en_us.yaml": {Data: []byte("item.stick: Stick\n")},
		"lang/fr_fr.yaml": {Data: []byte("item.stick: Bâton\n")},
		"lang/README.md":  {Data: []byte("ignored")},
		"lang/sub/x.yaml": {Data: []byte("nested: ignored\n")},
	}
	tr := New("fr_fr")
	require.NoError(t, tr.LoadDir(fsys, "lang"))

	locales := tr.Locales()
	slices.Sort(locales)
	require.Equal(t, []string{"en_us", "fr_fr"}, locales)
	require.Equal(t, "Bâton", tr.Translate("item.stick"))
}

func TestLoadDir_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{"lang/en_us.yaml": {Data: []byte("- not\n- a map\n")}}
	require.Error(t, New("en_us").LoadDir(fsys, "lang"))
}

func TestTag(t *testing.T) {
	require.Equal(t, language.MustParse("fr-FR"), Tag("fr_fr"))
	require.Equal(t, language.Und, Tag("!!"))
}
