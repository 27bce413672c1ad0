package testutil

import "strings"

// Item is a minimal ingredient value for tests.
type Item struct {
	ID      string
	Name    string
	Count   int
	Tags    []string
	Tab     string
	Tooltip []string
}

func (i Item) mod() string {
	mod, _, ok := strings.Cut(i.ID, ":")
	if !ok {
		return "minecraft"
	}
	return mod
}

// ItemOption configures an item during builder setup.
type ItemOption func(*Item)

// Name sets the display name.
func Name(name string) ItemOption {
	return func(i *Item) { i.Name = name }
}

// Tags sets the item tags.
func Tags(tags ...string) ItemOption {
	return func(i *Item) { i.Tags = tags }
}

// Tab sets the creative tab.
func Tab(tab string) ItemOption {
	return func(i *Item) { i.Tab = tab }
}

// Tooltip sets extra tooltip lines.
func Tooltip(lines ...string) ItemOption {
	return func(i *Item) { i.Tooltip = lines }
}

// defaultItem derives a title-cased name from the id path.
func defaultItem(id string) Item {
	_, path, ok := strings.Cut(id, ":")
	if !ok {
		path = id
	}
	words := strings.Split(path, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return Item{ID: id, Name: strings.Join(words, " "), Count: 1, Tab: "misc"}
}
