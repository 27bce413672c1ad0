package plugin

import (
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/recipe"
)

// Translator resolves lang keys of information pages.
type Translator interface {
	Translate(key string) string
}

type identityTranslator struct{}

func (identityTranslator) Translate(key string) string { return key }

// RecipeRegistration is handed to plugins during the recipes phase.
type RecipeRegistration struct {
	Registry   *recipe.Registry
	Manager    *ingredient.Manager
	translator Translator
}

// Translate resolves key with the loader's translator.
func (r *RecipeRegistration) Translate(key string) string {
	return r.translator.Translate(key)
}

// AddIngredientInfo adds an information page describing values. Lines are
// translated when they are lang keys. A page with no valid value is skipped.
func AddIngredientInfo[V any](r *RecipeRegistration, t *ingredient.Type[V], values []V, lines ...string) error {
	translated := make([]string, len(lines))
	for i, line := range lines {
		translated[i] = r.Translate(line)
	}
	info, ok := recipe.NewInfoRecipe(r.Manager, t, values, translated...)
	if !ok {
		log.Warn(log.CatPlugin, "Skipping ingredient info without valid ingredients or lines", "type", t.UID(), "values", len(values), "lines", len(lines))
		return nil
	}
	return recipe.AddRecipes(r.Registry, recipe.InfoType, info)
}
