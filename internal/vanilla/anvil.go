package vanilla

import (
	"fmt"
	"strings"

	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
)

// EnchantChecker reports whether an enchantment can be applied to an item.
type EnchantChecker func(item gamedata.ItemDef, enchantment gamedata.EnchantmentDef) bool

// TargetEnchantChecker applies an enchantment to enchantable items matched by
// one of its targets.
func TargetEnchantChecker(c *gamedata.Catalog) EnchantChecker {
	return func(item gamedata.ItemDef, e gamedata.EnchantmentDef) bool {
		if item.Enchantability <= 0 {
			return false
		}
		for _, target := range e.Targets {
			if c.Matches(target, item.ID) {
				return true
			}
		}
		return false
	}
}

// AnvilMaker derives anvil recipes from the known item ingredients.
type AnvilMaker struct {
	catalog    *gamedata.Catalog
	manager    *ingredient.Manager
	canEnchant EnchantChecker
}

// NewAnvilMaker creates a maker. A nil checker uses TargetEnchantChecker.
func NewAnvilMaker(c *gamedata.Catalog, m *ingredient.Manager, canEnchant EnchantChecker) *AnvilMaker {
	if canEnchant == nil {
		canEnchant = TargetEnchantChecker(c)
	}
	return &AnvilMaker{catalog: c, manager: m, canEnchant: canEnchant}
}

// Recipes returns the repair recipes followed by the enchanted book recipes.
func (a *AnvilMaker) Recipes() ([]AnvilRecipe, error) {
	items, err := ingredient.AllIngredients(a.manager, ItemType)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	seen := make(map[string]bool)
	var bases []gamedata.ItemDef
	for _, s := range items {
		if seen[s.ID] || s.ID == EnchantedBookID || len(s.Enchantments) > 0 {
			continue
		}
		seen[s.ID] = true
		if def, ok := a.catalog.Item(s.ID); ok {
			bases = append(bases, def)
		}
	}

	var out []AnvilRecipe
	for _, def := range bases {
		out = append(out, a.repairRecipes(def)...)
	}
	for _, def := range bases {
		out = append(out, a.bookRecipes(def)...)
	}
	log.Debug(log.CatPlugin, "Anvil recipes created", "items", len(bases), "recipes", len(out))
	return out, nil
}

func (a *AnvilMaker) bookRecipes(item gamedata.ItemDef) []AnvilRecipe {
	path := sanitizePath(item.ID)
	var out []AnvilRecipe
	for _, e := range a.catalog.Pack().Enchantments {
		if !a.safeCanEnchant(item, e) {
			continue
		}
		r := AnvilRecipe{ID: "minecraft:enchantment." + path}
		base := NewItemStack(item.ID, 1)
		for level := 1; level <= e.MaxLevel; level++ {
			ench := Enchantment{ID: e.ID, Level: level}
			r.Left = append(r.Left, base)
			r.Right = append(r.Right, EnchantedBook(ench))
			r.Outputs = append(r.Outputs, base.WithEnchantments(ench))
		}
		if len(r.Outputs) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// safeCanEnchant treats a panicking checker as "cannot enchant".
func (a *AnvilMaker) safeCanEnchant(item gamedata.ItemDef, e gamedata.EnchantmentDef) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatPlugin, "Enchantment check failed", "item", item.ID, "enchantment", e.ID, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	return a.canEnchant(item, e)
}

func (a *AnvilMaker) repairRecipes(item gamedata.ItemDef) []AnvilRecipe {
	if !item.Damageable() {
		return nil
	}
	ns, _ := gamedata.SplitID(item.ID)
	path := sanitizePath(item.ID)
	base := NewItemStack(item.ID, 1)
	threeQuarters := base.WithDamage(item.MaxDamage * 3 / 4)
	half := base.WithDamage(item.MaxDamage / 2)
	full := base.WithDamage(item.MaxDamage)

	out := []AnvilRecipe{{
		ID:      ns + ":self_repair." + path,
		Left:    []ItemStack{threeQuarters},
		Right:   []ItemStack{threeQuarters},
		Outputs: []ItemStack{half},
	}}

	materials := a.catalog.Resolve(item.RepairMaterial)
	if item.RepairMaterial == "" || len(materials) == 0 {
		return out
	}
	r := AnvilRecipe{ID: ns + ":materials_repair." + path}
	for _, m := range materials {
		r.Left = append(r.Left, full)
		r.Right = append(r.Right, NewItemStack(m, 1))
		r.Outputs = append(r.Outputs, threeQuarters)
	}
	return append(out, r)
}

// sanitizePath turns an item id into a valid id path: lower case, with every
// character outside [a-z0-9/._-] replaced by '_'.
func sanitizePath(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '/', r == '.', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, id)
}
