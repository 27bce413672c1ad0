package recipe

import (
	"github.com/zjrosen/almanac/internal/ingredient"
)

// InfoType is the recipe type of ingredient information pages.
var InfoType = NewRecipeType[InfoRecipe]("almanac:information")

// InfoRecipe is a page of description lines about one or more ingredients.
type InfoRecipe struct {
	Ingredients []ingredient.AnyTyped
	Lines       []string
}

// InfoCategory lays out information pages with their ingredients as outputs.
type InfoCategory struct{}

func (InfoCategory) RecipeType() *RecipeType[InfoRecipe] { return InfoType }
func (InfoCategory) Title() string                       { return "Information" }

func (InfoCategory) SetRecipe(b *LayoutBuilder, recipe InfoRecipe, _ FocusGroup) error {
	b.AddSlot(RoleOutput).AddTyped(recipe.Ingredients...)
	return nil
}

// NewInfoRecipe builds an information page for the valid values among values.
// It returns false when none of them is valid or there are no lines.
func NewInfoRecipe[V any](m *ingredient.Manager, t *ingredient.Type[V], values []V, lines ...string) (InfoRecipe, bool) {
	if len(lines) == 0 {
		return InfoRecipe{}, false
	}
	var typed []ingredient.AnyTyped
	for _, v := range values {
		if tv, ok := ingredient.CreateTyped(m, t, v); ok {
			typed = append(typed, tv)
		}
	}
	if len(typed) == 0 {
		return InfoRecipe{}, false
	}
	return InfoRecipe{Ingredients: typed, Lines: lines}, true
}
