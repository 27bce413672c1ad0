// Package vanilla registers the base game's ingredients, subtype
// interpreters, recipe categories, recipes and catalysts.
package vanilla

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zjrosen/almanac/internal/ingredient"
)

// BucketAmount is the fluid amount of one bucket.
const BucketAmount = 1000

// Item ids with subtype interpreters.
const (
	EnchantedBookID  = "minecraft:enchanted_book"
	PotionID         = "minecraft:potion"
	SuspiciousStewID = "minecraft:suspicious_stew"
)

// Enchantment is an enchantment and its level.
type Enchantment struct {
	ID    string
	Level int
}

func (e Enchantment) String() string { return fmt.Sprintf("%s.%d", e.ID, e.Level) }

// Effect is a status effect with a duration in ticks.
type Effect struct {
	ID       string
	Duration int
}

func (e Effect) String() string { return fmt.Sprintf("%s.%d", e.ID, e.Duration) }

// EffectList is the effects component of a suspicious stew. A stew without
// the component has a nil *EffectList; one with no effects has an empty list.
type EffectList struct {
	Effects []Effect
}

// ItemStack is an amount of one item with its components.
type ItemStack struct {
	ID           string
	Count        int
	Damage       int
	Enchantments []Enchantment
	Potion       string
	Stew         *EffectList
	CustomName   string
}

// NewItemStack returns a stack of count items.
func NewItemStack(id string, count int) ItemStack {
	return ItemStack{ID: id, Count: count}
}

// WithEnchantments returns a copy of s carrying enchantments.
func (s ItemStack) WithEnchantments(enchantments ...Enchantment) ItemStack {
	s.Enchantments = append(slices.Clone(s.Enchantments), enchantments...)
	return s
}

// WithDamage returns a copy of s with the given damage.
func (s ItemStack) WithDamage(damage int) ItemStack {
	s.Damage = damage
	return s
}

// clone deep-copies the components of s.
func (s ItemStack) clone() ItemStack {
	s.Enchantments = slices.Clone(s.Enchantments)
	if s.Stew != nil {
		s.Stew = &EffectList{Effects: slices.Clone(s.Stew.Effects)}
	}
	return s
}

func (s ItemStack) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx %s", s.Count, s.ID)
	if s.Damage > 0 {
		fmt.Fprintf(&b, " damage=%d", s.Damage)
	}
	if len(s.Enchantments) > 0 {
		fmt.Fprintf(&b, " enchantments=%v", s.Enchantments)
	}
	if s.Potion != "" {
		fmt.Fprintf(&b, " potion=%s", s.Potion)
	}
	if s.Stew != nil {
		fmt.Fprintf(&b, " effects=%v", s.Stew.Effects)
	}
	if s.CustomName != "" {
		fmt.Fprintf(&b, " name=%q", s.CustomName)
	}
	return b.String()
}

// FluidStack is an amount of one fluid.
type FluidStack struct {
	ID     string
	Amount int
}

func (s FluidStack) String() string { return fmt.Sprintf("%dmB %s", s.Amount, s.ID) }

var (
	// ItemType is the ingredient type of item stacks. Uids are refined by
	// subtype interpreters keyed by item id.
	ItemType = ingredient.NewTypeWithSubtypes("minecraft:item", func(s ItemStack) string { return s.ID })
	// FluidType is the ingredient type of fluid stacks.
	FluidType = ingredient.NewType[FluidStack]("minecraft:fluid")
)
