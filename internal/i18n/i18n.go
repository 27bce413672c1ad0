// Package i18n provides translation tables keyed by locale and locale-aware
// ordering of translated strings.
package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/almanac/internal/log"
)

// DefaultLocale is used when a key has no entry in the active locale.
const DefaultLocale = "en_us"

// Translator holds translation tables and the active locale.
// It satisfies ingredient.Translator.
type Translator struct {
	mu       sync.Mutex
	tables   map[string]map[string]string
	locale   string
	collator *collate.Collator
	folder   cases.Caser
	onChange []func(locale string)
}

// New creates a translator with no tables and the given active locale.
func New(locale string) *Translator {
	t := &Translator{tables: make(map[string]map[string]string)}
	t.setLocale(normalizeLocale(locale))
	return t
}

// Add merges entries into the table of locale.
func (t *Translator) Add(locale string, entries map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	locale = normalizeLocale(locale)
	table, ok := t.tables[locale]
	if !ok {
		table = make(map[string]string, len(entries))
		t.tables[locale] = table
	}
	for k, v := range entries {
		table[k] = v
	}
}

// LoadDir reads every <locale>.yaml file of dir in fsys as a flat key/value table.
func (t *Translator) LoadDir(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading lang dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading lang file %s: %w", e.Name(), err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("parsing lang file %s: %w", e.Name(), err)
		}
		locale := strings.TrimSuffix(e.Name(), ".yaml")
		t.Add(locale, table)
		log.Debug(log.CatConfig, "Loaded lang file", "locale", locale, "entries", len(table))
	}
	return nil
}

// Locales returns the locales with a loaded table.
func (t *Translator) Locales() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.tables))
	for k := range t.tables {
		out = append(out, k)
	}
	return out
}

// Locale returns the active locale.
func (t *Translator) Locale() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locale
}

// SetLocale switches the active locale and runs the OnLocaleChange hooks
// when it actually changed.
func (t *Translator) SetLocale(locale string) {
	locale = normalizeLocale(locale)
	t.mu.Lock()
	if locale == t.locale {
		t.mu.Unlock()
		return
	}
	t.setLocale(locale)
	hooks := slices.Clone(t.onChange)
	t.mu.Unlock()
	for _, fn := range hooks {
		fn(locale)
	}
}

// OnLocaleChange registers fn to run after every locale switch.
func (t *Translator) OnLocaleChange(fn func(locale string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, fn)
}

func (t *Translator) setLocale(locale string) {
	t.locale = locale
	tag := Tag(locale)
	t.collator = collate.New(tag, collate.IgnoreCase)
	t.folder = cases.Fold()
}

// Translate resolves key in the active locale, then the default locale.
// Unknown keys are returned unchanged.
func (t *Translator) Translate(key string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.tables[t.locale][key]; ok {
		return v
	}
	if v, ok := t.tables[DefaultLocale][key]; ok {
		return v
	}
	return key
}

// Compare orders two strings case-insensitively using the active locale's collation.
func (t *Translator) Compare(a, b string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.collator.CompareString(a, b)
}

// Fold returns the case-folded form of s used for searching.
func (t *Translator) Fold(s string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.folder.String(s)
}

// Tag parses a game locale such as "fr_fr" into a language tag.
// Unparseable locales yield language.Und.
func Tag(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return DefaultLocale
	}
	return strings.ReplaceAll(locale, "-", "_")
}
