package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRecipeType is returned when no category is registered for a recipe type.
	ErrUnknownRecipeType = errors.New("unknown recipe type")
	// ErrDuplicateCategory is returned when a recipe type already has a category.
	ErrDuplicateCategory = errors.New("recipe category already registered")
	// ErrPrecondition is returned for nil or empty arguments.
	ErrPrecondition = errors.New("precondition violated")
)

// AnyRecipeType is the type-erased view of a *RecipeType[T].
type AnyRecipeType interface {
	UID() string
}

// RecipeType identifies a kind of recipe whose records have Go type T.
type RecipeType[T any] struct {
	uid string
}

func NewRecipeType[T any](uid string) *RecipeType[T] {
	return &RecipeType[T]{uid: uid}
}

func (t *RecipeType[T]) UID() string    { return t.uid }
func (t *RecipeType[T]) String() string { return t.uid }

// Category knows how to lay out recipes of one type.
type Category[T any] interface {
	RecipeType() *RecipeType[T]
	Title() string
	// SetRecipe fills b with the ingredient slots of recipe.
	SetRecipe(b *LayoutBuilder, recipe T, focuses FocusGroup) error
}

// Namer is implemented by categories whose recipes carry a registry name.
type Namer[T any] interface {
	RegistryName(recipe T) (string, bool)
}

// HandledChecker is implemented by categories that only handle some records.
type HandledChecker[T any] interface {
	IsHandled(recipe T) bool
}

// AnyCategory is the type-erased view of a Category.
type AnyCategory interface {
	UID() string
	Title() string
}

type erasedCategory[T any] struct {
	category Category[T]
}

func (c erasedCategory[T]) UID() string   { return c.category.RecipeType().UID() }
func (c erasedCategory[T]) Title() string { return c.category.Title() }

// CategoryRegistry is the ordered set of recipe categories.
type CategoryRegistry struct {
	order []AnyCategory
	byUID map[string]any
}

func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{byUID: make(map[string]any)}
}

// RegisterCategory adds c. Each recipe type may have only one category.
func RegisterCategory[T any](r *CategoryRegistry, c Category[T]) error {
	if r == nil || c == nil || c.RecipeType() == nil {
		return fmt.Errorf("%w: nil category", ErrPrecondition)
	}
	uid := c.RecipeType().UID()
	if uid == "" {
		return fmt.Errorf("%w: empty recipe type uid", ErrPrecondition)
	}
	if _, ok := r.byUID[uid]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, uid)
	}
	r.byUID[uid] = c
	r.order = append(r.order, erasedCategory[T]{category: c})
	return nil
}

// CategoryFor returns the category registered for t.
func CategoryFor[T any](r *CategoryRegistry, t *RecipeType[T]) (Category[T], error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil recipe type", ErrPrecondition)
	}
	raw, ok := r.byUID[t.UID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipeType, t.UID())
	}
	c, ok := raw.(Category[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s is registered for a different record type", ErrUnknownRecipeType, t.UID())
	}
	return c, nil
}

// Lookup finds a category by recipe type uid.
func (r *CategoryRegistry) Lookup(uid string) (AnyCategory, bool) {
	for _, c := range r.order {
		if c.UID() == uid {
			return c, true
		}
	}
	return nil, false
}

// All returns the categories in registration order.
func (r *CategoryRegistry) All() []AnyCategory {
	out := make([]AnyCategory, len(r.order))
	copy(out, r.order)
	return out
}
