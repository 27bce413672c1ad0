// Package plugin defines the registration surface plugins implement and the
// Loader that runs their registration phases in order.
package plugin

import (
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/recipe"
)

// Plugin is the minimal plugin contract. A plugin takes part in a phase by
// implementing the matching registrar interface.
type Plugin interface {
	UID() string
}

// SubtypeRegistrar registers subtype interpreters for ingredient types.
type SubtypeRegistrar interface {
	RegisterItemSubtypes(r *ingredient.SubtypeRegistry) error
}

// IngredientRegistrar registers ingredient types and their initial values.
type IngredientRegistrar interface {
	RegisterIngredients(r *ingredient.Registration) error
}

// CategoryRegistrar registers recipe categories.
type CategoryRegistrar interface {
	RegisterCategories(r *recipe.CategoryRegistry) error
}

// RecipeRegistrar registers recipes and information pages.
type RecipeRegistrar interface {
	RegisterRecipes(r *RecipeRegistration) error
}

// CatalystRegistrar registers the catalysts of recipe categories.
type CatalystRegistrar interface {
	RegisterRecipeCatalysts(r *recipe.Registry) error
}

// AdvancedRegistrar registers recipe manager plugins.
type AdvancedRegistrar interface {
	RegisterAdvanced(r *recipe.Registry) error
}

// Phase is one step of plugin loading.
type Phase int

const (
	PhaseSubtypes Phase = iota
	PhaseIngredients
	PhaseCategories
	PhaseRecipes
	PhaseCatalysts
	PhaseAdvanced
)

// Phases lists every phase in load order.
var Phases = []Phase{PhaseSubtypes, PhaseIngredients, PhaseCategories, PhaseRecipes, PhaseCatalysts, PhaseAdvanced}

func (p Phase) String() string {
	switch p {
	case PhaseSubtypes:
		return "subtypes"
	case PhaseIngredients:
		return "ingredients"
	case PhaseCategories:
		return "categories"
	case PhaseRecipes:
		return "recipes"
	case PhaseCatalysts:
		return "catalysts"
	case PhaseAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}
