// Package gamedata loads data packs describing the game's items, fluids,
// enchantments, recipes and translations from YAML files.
package gamedata

import (
	"strings"
)

// Manifest is the pack.yaml of a data pack.
type Manifest struct {
	ID   string            `yaml:"id"`
	Mods map[string]string `yaml:"mods"`
}

// ItemDef describes an item.
type ItemDef struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Tags     []string `yaml:"tags"`
	Tab      string   `yaml:"tab"`
	MaxStack int      `yaml:"max_stack"`
	// MaxDamage is the durability of damageable items, 0 otherwise.
	MaxDamage int `yaml:"max_damage"`
	// Enchantability above zero makes the item enchantable.
	Enchantability int `yaml:"enchantability"`
	// RepairMaterial is an item id or a #tag repairing this item on an anvil.
	RepairMaterial string   `yaml:"repair_material"`
	Tooltip        []string `yaml:"tooltip"`
	// Aliases are lang keys of alternate search terms.
	Aliases []string `yaml:"aliases"`
}

// Damageable reports whether the item has durability.
func (d ItemDef) Damageable() bool { return d.MaxDamage > 0 }

// FluidDef describes a fluid.
type FluidDef struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Tags   []string `yaml:"tags"`
	Bucket string   `yaml:"bucket"`
}

// EnchantmentDef describes an enchantment and the items it applies to.
type EnchantmentDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	MaxLevel int    `yaml:"max_level"`
	// Targets are item ids or #tags the enchantment can be applied to.
	Targets []string `yaml:"targets"`
}

// EffectDef is a status effect with a duration in ticks.
type EffectDef struct {
	ID       string `yaml:"id"`
	Duration int    `yaml:"duration"`
}

// PotionDef describes a potion variant.
type PotionDef struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Effects []EffectDef `yaml:"effects"`
}

// StewDef describes a suspicious stew variant.
type StewDef struct {
	Effects []EffectDef `yaml:"effects"`
}

// Stack is an item or fluid reference with an amount.
type Stack struct {
	Item  string `yaml:"item"`
	Fluid string `yaml:"fluid"`
	Count int    `yaml:"count"`
}

// CraftingDef describes a crafting table recipe. Inputs are item ids or #tags.
type CraftingDef struct {
	ID        string   `yaml:"id"`
	Inputs    []string `yaml:"inputs"`
	Output    Stack    `yaml:"output"`
	Shapeless bool     `yaml:"shapeless"`
}

// SmeltingDef describes a furnace recipe.
type SmeltingDef struct {
	ID          string  `yaml:"id"`
	Input       string  `yaml:"input"`
	Output      Stack   `yaml:"output"`
	Experience  float64 `yaml:"experience"`
	CookingTime int     `yaml:"cooking_time"`
}

// InfoDef is a description page for one or more ingredients. Lines may be lang keys.
type InfoDef struct {
	Items  []string `yaml:"items"`
	Fluids []string `yaml:"fluids"`
	Lines  []string `yaml:"lines"`
}

// Pack is the merged content of one or more data packs.
type Pack struct {
	Manifests    []Manifest
	Items        []ItemDef
	Fluids       []FluidDef
	Enchantments []EnchantmentDef
	Potions      []PotionDef
	Stews        []StewDef
	Crafting     []CraftingDef
	Smelting     []SmeltingDef
	Info         []InfoDef
	// Lang maps locale to translation key to text.
	Lang map[string]map[string]string
}

// Merge appends other to p. Definitions with an id already present are
// replaced in place so later packs override earlier ones.
func (p *Pack) Merge(other *Pack) {
	p.Manifests = append(p.Manifests, other.Manifests...)
	p.Items = mergeByID(p.Items, other.Items, func(d ItemDef) string { return d.ID })
	p.Fluids = mergeByID(p.Fluids, other.Fluids, func(d FluidDef) string { return d.ID })
	p.Enchantments = mergeByID(p.Enchantments, other.Enchantments, func(d EnchantmentDef) string { return d.ID })
	p.Potions = mergeByID(p.Potions, other.Potions, func(d PotionDef) string { return d.ID })
	p.Stews = append(p.Stews, other.Stews...)
	p.Crafting = mergeByID(p.Crafting, other.Crafting, func(d CraftingDef) string { return d.ID })
	p.Smelting = mergeByID(p.Smelting, other.Smelting, func(d SmeltingDef) string { return d.ID })
	p.Info = append(p.Info, other.Info...)
	if p.Lang == nil {
		p.Lang = make(map[string]map[string]string)
	}
	for locale, entries := range other.Lang {
		table, ok := p.Lang[locale]
		if !ok {
			table = make(map[string]string, len(entries))
			p.Lang[locale] = table
		}
		for k, v := range entries {
			table[k] = v
		}
	}
}

// ModNames returns the mod display names declared by every manifest.
func (p *Pack) ModNames() map[string]string {
	out := make(map[string]string)
	for _, m := range p.Manifests {
		for id, name := range m.Mods {
			out[id] = name
		}
	}
	return out
}

func mergeByID[T any](dst, src []T, id func(T) string) []T {
	pos := make(map[string]int, len(dst))
	for i, d := range dst {
		pos[id(d)] = i
	}
	for _, s := range src {
		if i, ok := pos[id(s)]; ok && id(s) != "" {
			dst[i] = s
			continue
		}
		pos[id(s)] = len(dst)
		dst = append(dst, s)
	}
	return dst
}

// SplitID splits "namespace:path" ids. Ids without a namespace belong to minecraft.
func SplitID(id string) (namespace, path string) {
	ns, p, ok := strings.Cut(id, ":")
	if !ok {
		return "minecraft", id
	}
	return ns, p
}

// IsTagRef reports whether ref names a tag ("#namespace:path").
func IsTagRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}
