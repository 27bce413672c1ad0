package recipe

import (
	"fmt"

	"github.com/zjrosen/almanac/internal/log"
)

// ManagerPlugin contributes recipes that are not registered directly, such as
// recipes generated on demand for a focus.
type ManagerPlugin interface {
	Name() string
	// RecipeTypes returns the uids of recipe types the plugin can answer for focus.
	RecipeTypes(focus Focus) ([]string, error)
	// Recipes returns records of the recipe type identified by recipeTypeUID
	// matching focuses. Records of the wrong Go type are dropped.
	Recipes(recipeTypeUID string, focuses FocusGroup) ([]any, error)
}

// safeRecipeTypes calls p.RecipeTypes, treating errors and panics as no matches.
func safeRecipeTypes(p ManagerPlugin, focus Focus) (uids []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatRecipes, "Recipe manager plugin panicked", "plugin", p.Name(), "call", "RecipeTypes", "focus", focus.String(), "panic", fmt.Sprint(r))
			uids = nil
		}
	}()
	uids, err := p.RecipeTypes(focus)
	if err != nil {
		log.ErrorErr(log.CatRecipes, "Recipe manager plugin failed", err, "plugin", p.Name(), "call", "RecipeTypes", "focus", focus.String())
		return nil
	}
	return uids
}

// safeRecipes calls p.Recipes, treating errors and panics as no matches.
// ok is false when the plugin failed.
func safeRecipes(p ManagerPlugin, recipeTypeUID string, focuses FocusGroup) (records []any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatRecipes, "Recipe manager plugin panicked", "plugin", p.Name(), "call", "Recipes", "type", recipeTypeUID, "panic", fmt.Sprint(r))
			records, ok = nil, false
		}
	}()
	records, err := p.Recipes(recipeTypeUID, focuses)
	if err != nil {
		log.ErrorErr(log.CatRecipes, "Recipe manager plugin failed", err, "plugin", p.Name(), "call", "Recipes", "type", recipeTypeUID)
		return nil, false
	}
	return records, true
}
