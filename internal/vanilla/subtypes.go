package vanilla

import (
	"github.com/zjrosen/almanac/internal/ingredient"
)

// EnchantedBookInterpreter distinguishes books by their stored enchantments.
func EnchantedBookInterpreter(s ItemStack, _ ingredient.UIDContext) string {
	if len(s.Enchantments) == 0 {
		return ingredient.None
	}
	parts := make([]string, len(s.Enchantments))
	for i, e := range s.Enchantments {
		parts[i] = e.String()
	}
	return ingredient.ComponentList(parts)
}

// PotionInterpreter distinguishes potions by potion id. Custom names only
// count in the ingredient list.
func PotionInterpreter(s ItemStack, ctx ingredient.UIDContext) string {
	if s.Potion == "" {
		return ingredient.None
	}
	if s.CustomName == "" || ctx == ingredient.UIDRecipe {
		return s.Potion
	}
	return ingredient.ComponentList([]string{s.Potion, "name=" + ingredient.EncodeUIDPart(s.CustomName)})
}

// SuspiciousStewInterpreter distinguishes stews by their effects, in any order.
// A stew without effects data yields None, which differs from an empty list.
func SuspiciousStewInterpreter(s ItemStack, _ ingredient.UIDContext) string {
	if s.Stew == nil {
		return ingredient.None
	}
	parts := make([]string, len(s.Stew.Effects))
	for i, e := range s.Stew.Effects {
		parts[i] = e.String()
	}
	return ingredient.ComponentList(parts)
}

// RegisterItemSubtypes registers the vanilla subtype interpreters.
func RegisterItemSubtypes(r *ingredient.SubtypeRegistry) error {
	interpreters := map[string]ingredient.SubtypeInterpreterFunc[ItemStack]{
		EnchantedBookID:  EnchantedBookInterpreter,
		PotionID:         PotionInterpreter,
		SuspiciousStewID: SuspiciousStewInterpreter,
	}
	for _, id := range []string{EnchantedBookID, PotionID, SuspiciousStewID} {
		if err := ingredient.RegisterSubtypeInterpreter(r, ItemType, id, ingredient.SubtypeInterpreter[ItemStack](interpreters[id])); err != nil {
			return err
		}
	}
	return nil
}
