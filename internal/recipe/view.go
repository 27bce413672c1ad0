package recipe

import (
	"fmt"

	"github.com/zjrosen/almanac/internal/ingredient"
)

// View describes one recipe without its record type, for callers that list
// recipes across categories.
type View struct {
	Category string
	// Name is the registry name, empty when the category has none.
	Name  string
	Slots []Slot
	// Err is set when the layout could not be extracted.
	Err error
}

// Ingredients returns every ingredient of the recipe with the given role.
func (v View) Ingredients(role Role) []ingredient.AnyTyped {
	return (&Layout{Slots: v.Slots}).Ingredients(role)
}

type viewer interface {
	views(r *Registry, focuses []Focus) []View
}

func (c erasedCategory[T]) views(r *Registry, focuses []Focus) []View {
	lookup := CreateLookup(r, c.category.RecipeType()).LimitFocus(focuses...)
	var out []View
	for rec := range lookup.Get() {
		out = append(out, describe(r.manager, c.category, rec))
	}
	return out
}

func describe[T any](m *ingredient.Manager, c Category[T], rec T) View {
	v := View{Category: c.RecipeType().UID()}
	if n, ok := c.(Namer[T]); ok {
		v.Name, _ = n.RegistryName(rec)
	}
	layout, err := extract(m, c, rec)
	if err != nil {
		v.Err = err
		return v
	}
	v.Slots = layout.Slots
	return v
}

// Views looks up the recipes of the category with uid matching every focus.
func (r *Registry) Views(categoryUID string, focuses ...Focus) ([]View, error) {
	c, ok := r.categories.Lookup(categoryUID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipeType, categoryUID)
	}
	return c.(viewer).views(r, focuses), nil
}

// AllViews looks up every visible category that has recipes for focuses, in
// registration order.
func (r *Registry) AllViews(focuses ...Focus) []View {
	var out []View
	for _, c := range r.CategoriesFor(focuses...) {
		out = append(out, c.(viewer).views(r, focuses)...)
	}
	return out
}
