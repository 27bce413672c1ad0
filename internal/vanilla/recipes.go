package vanilla

import (
	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/log"
)

// CraftingRecipes converts the crafting definitions of c. Recipes with an
// input that resolves to no item are skipped.
func CraftingRecipes(c *gamedata.Catalog) []CraftingRecipe {
	var out []CraftingRecipe
	for _, def := range c.Pack().Crafting {
		inputs := make([][]ItemStack, 0, len(def.Inputs))
		ok := true
		for _, ref := range def.Inputs {
			slot := stacks(c.Resolve(ref))
			if len(slot) == 0 {
				log.Warn(log.CatGameData, "Skipping crafting recipe with unknown input", "recipe", def.ID, "input", ref)
				ok = false
				break
			}
			inputs = append(inputs, slot)
		}
		if !ok {
			continue
		}
		out = append(out, CraftingRecipe{
			ID:        def.ID,
			Inputs:    inputs,
			Output:    outputStack(def.Output),
			Shapeless: def.Shapeless,
		})
	}
	return out
}

// SmeltingRecipes converts the smelting definitions of c.
func SmeltingRecipes(c *gamedata.Catalog) []SmeltingRecipe {
	var out []SmeltingRecipe
	for _, def := range c.Pack().Smelting {
		input := stacks(c.Resolve(def.Input))
		if len(input) == 0 {
			log.Warn(log.CatGameData, "Skipping smelting recipe with unknown input", "recipe", def.ID, "input", def.Input)
			continue
		}
		out = append(out, SmeltingRecipe{
			ID:          def.ID,
			Input:       input,
			Output:      outputStack(def.Output),
			Experience:  def.Experience,
			CookingTime: def.CookingTime,
		})
	}
	return out
}

func stacks(ids []string) []ItemStack {
	out := make([]ItemStack, len(ids))
	for i, id := range ids {
		out[i] = NewItemStack(id, 1)
	}
	return out
}

func outputStack(s gamedata.Stack) ItemStack {
	return NewItemStack(s.Item, max(1, s.Count))
}

// ItemStacks lists the item stacks of c shown in the ingredient list: one per
// item, plus one per variant of items with subtypes.
func ItemStacks(c *gamedata.Catalog) []ItemStack {
	var out []ItemStack
	for _, def := range c.Pack().Items {
		switch def.ID {
		case EnchantedBookID:
			for _, e := range c.Pack().Enchantments {
				for level := 1; level <= e.MaxLevel; level++ {
					out = append(out, EnchantedBook(Enchantment{ID: e.ID, Level: level}))
				}
			}
		case PotionID:
			for _, p := range c.Pack().Potions {
				out = append(out, ItemStack{ID: PotionID, Count: 1, Potion: p.ID})
			}
		case SuspiciousStewID:
			out = append(out, NewItemStack(SuspiciousStewID, 1))
			for _, s := range c.Pack().Stews {
				out = append(out, SuspiciousStew(effects(s.Effects)...))
			}
		default:
			out = append(out, NewItemStack(def.ID, 1))
		}
	}
	return out
}

// FluidStacks lists one bucket of every fluid of c.
func FluidStacks(c *gamedata.Catalog) []FluidStack {
	out := make([]FluidStack, 0, len(c.Pack().Fluids))
	for _, def := range c.Pack().Fluids {
		out = append(out, FluidStack{ID: def.ID, Amount: BucketAmount})
	}
	return out
}

// EnchantedBook returns a book storing enchantments.
func EnchantedBook(enchantments ...Enchantment) ItemStack {
	return NewItemStack(EnchantedBookID, 1).WithEnchantments(enchantments...)
}

// SuspiciousStew returns a stew with the given effects component.
func SuspiciousStew(effects ...Effect) ItemStack {
	s := NewItemStack(SuspiciousStewID, 1)
	s.Stew = &EffectList{Effects: append([]Effect{}, effects...)}
	return s
}

func effects(defs []gamedata.EffectDef) []Effect {
	out := make([]Effect, len(defs))
	for i, d := range defs {
		out[i] = Effect{ID: d.ID, Duration: d.Duration}
	}
	return out
}
