package gamedata

import (
	"slices"
	"strings"
)

// Catalog indexes a Pack for lookups by id and tag.
type Catalog struct {
	pack         *Pack
	items        map[string]ItemDef
	fluids       map[string]FluidDef
	enchantments map[string]EnchantmentDef
	potions      map[string]PotionDef
	itemTags     map[string][]string
}

// NewCatalog indexes pack.
func NewCatalog(pack *Pack) *Catalog {
	c := &Catalog{
		pack:         pack,
		items:        make(map[string]ItemDef, len(pack.Items)),
		fluids:       make(map[string]FluidDef, len(pack.Fluids)),
		enchantments: make(map[string]EnchantmentDef, len(pack.Enchantments)),
		potions:      make(map[string]PotionDef, len(pack.Potions)),
		itemTags:     make(map[string][]string),
	}
	for _, d := range pack.Items {
		c.items[d.ID] = d
		for _, tag := range d.Tags {
			c.itemTags[tag] = append(c.itemTags[tag], d.ID)
		}
	}
	for _, d := range pack.Fluids {
		c.fluids[d.ID] = d
	}
	for _, d := range pack.Enchantments {
		c.enchantments[d.ID] = d
	}
	for _, d := range pack.Potions {
		c.potions[d.ID] = d
	}
	return c
}

// Pack returns the indexed pack.
func (c *Catalog) Pack() *Pack { return c.pack }

func (c *Catalog) Item(id string) (ItemDef, bool) {
	d, ok := c.items[id]
	return d, ok
}

func (c *Catalog) Fluid(id string) (FluidDef, bool) {
	d, ok := c.fluids[id]
	return d, ok
}

func (c *Catalog) Enchantment(id string) (EnchantmentDef, bool) {
	d, ok := c.enchantments[id]
	return d, ok
}

func (c *Catalog) Potion(id string) (PotionDef, bool) {
	d, ok := c.potions[id]
	return d, ok
}

// ItemsWithTag returns the ids of items carrying tag, in pack order.
func (c *Catalog) ItemsWithTag(tag string) []string {
	return slices.Clone(c.itemTags[strings.TrimPrefix(tag, "#")])
}

// Resolve expands an item reference (an id or a #tag) to item ids.
// Unknown ids resolve to nothing.
func (c *Catalog) Resolve(ref string) []string {
	if IsTagRef(ref) {
		return c.ItemsWithTag(ref)
	}
	if _, ok := c.items[ref]; ok {
		return []string{ref}
	}
	return nil
}

// Matches reports whether item id is named by ref directly or through a tag.
func (c *Catalog) Matches(ref, id string) bool {
	if !IsTagRef(ref) {
		return ref == id
	}
	d, ok := c.items[id]
	return ok && slices.Contains(d.Tags, strings.TrimPrefix(ref, "#"))
}
