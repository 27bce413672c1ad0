package recipe

import "slices"

// FocusedRecipes is the recipe list of one category for one focus group,
// computed on first access and kept for the lifetime of the value.
// The first call to Recipes must not race with another.
type FocusedRecipes[T any] struct {
	registry *Registry
	category Category[T]
	focuses  FocusGroup

	computed bool
	recipes  []T
}

func NewFocusedRecipes[T any](r *Registry, c Category[T], focuses FocusGroup) *FocusedRecipes[T] {
	return &FocusedRecipes[T]{registry: r, category: c, focuses: focuses}
}

func (f *FocusedRecipes[T]) Category() Category[T] { return f.category }
func (f *FocusedRecipes[T]) Focuses() FocusGroup   { return f.focuses }

// Recipes returns a copy of the memoized recipe list.
func (f *FocusedRecipes[T]) Recipes() []T {
	if !f.computed {
		lookup := CreateLookup(f.registry, f.category.RecipeType()).LimitFocus(f.focuses.focuses...)
		f.recipes = slices.Collect(lookup.Get())
		if f.recipes == nil {
			f.recipes = []T{}
		}
		f.computed = true
	}
	return slices.Clone(f.recipes)
}
