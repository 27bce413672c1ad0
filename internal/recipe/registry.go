package recipe

import (
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
)

// LookupObserver is told about every executed lookup, for metrics.
type LookupObserver interface {
	RecipeLookup(recipeTypeUID string, focuses int)
	ManagerPluginFailed(plugin string)
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer wraps lookups in spans from tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Registry) { r.tracer = tracer }
}

// WithLookupObserver sets the lookup observer.
func WithLookupObserver(o LookupObserver) Option {
	return func(r *Registry) { r.observer = o }
}

// Registry owns the registered recipes, catalysts and recipe manager plugins.
type Registry struct {
	categories *CategoryRegistry
	manager    *ingredient.Manager
	checker    mainthread.Checker

	lists     map[string]recipeListAny
	catalysts map[string][]ingredient.AnyTyped
	plugins   []ManagerPlugin
	hidden    map[string]bool

	tracer   trace.Tracer
	observer LookupObserver
}

func NewRegistry(categories *CategoryRegistry, manager *ingredient.Manager, opts ...Option) *Registry {
	r := &Registry{
		categories: categories,
		manager:    manager,
		checker:    manager.MainThread(),
		lists:      make(map[string]recipeListAny),
		catalysts:  make(map[string][]ingredient.AnyTyped),
		hidden:     make(map[string]bool),
		tracer:     noop.NewTracerProvider().Tracer("recipe"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Categories returns the category registry.
func (r *Registry) Categories() *CategoryRegistry { return r.categories }

// Manager returns the ingredient manager recipes are laid out with.
func (r *Registry) Manager() *ingredient.Manager { return r.manager }

// AddRecipes appends recipes of type t. Recipes are not deduplicated.
func AddRecipes[T any](r *Registry, t *RecipeType[T], recipes ...T) error {
	if err := mainthread.Assert(r.checker, "add recipes"); err != nil {
		return err
	}
	list, err := listFor(r, t)
	if err != nil {
		return err
	}
	list.add(recipes)
	log.Debug(log.CatRecipes, "Recipes added", "type", t.UID(), "count", len(recipes), "total", len(list.recipes))
	return nil
}

// HideRecipes hides the recipes of t matching pred and returns how many were hidden.
func HideRecipes[T any](r *Registry, t *RecipeType[T], pred func(T) bool) (int, error) {
	if err := mainthread.Assert(r.checker, "hide recipes"); err != nil {
		return 0, err
	}
	list, err := listFor(r, t)
	if err != nil {
		return 0, err
	}
	return list.setHidden(pred, true), nil
}

// UnhideRecipes reverses HideRecipes for recipes matching pred.
func UnhideRecipes[T any](r *Registry, t *RecipeType[T], pred func(T) bool) (int, error) {
	if err := mainthread.Assert(r.checker, "unhide recipes"); err != nil {
		return 0, err
	}
	list, err := listFor(r, t)
	if err != nil {
		return 0, err
	}
	return list.setHidden(pred, false), nil
}

// AddCatalysts registers ingredients that craft recipes of type t, such as a furnace.
func (r *Registry) AddCatalysts(t AnyRecipeType, catalysts ...ingredient.AnyTyped) error {
	if err := mainthread.Assert(r.checker, "add catalysts"); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: nil recipe type", ErrPrecondition)
	}
	if _, ok := r.categories.Lookup(t.UID()); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRecipeType, t.UID())
	}
	for _, c := range catalysts {
		if c == nil {
			continue
		}
		if slices.ContainsFunc(r.catalysts[t.UID()], func(existing ingredient.AnyTyped) bool { return ingredient.Same(existing, c) }) {
			continue
		}
		r.catalysts[t.UID()] = append(r.catalysts[t.UID()], c)
	}
	return nil
}

// Catalysts returns the catalysts of the recipe type with the given uid.
func (r *Registry) Catalysts(recipeTypeUID string) []ingredient.AnyTyped {
	return slices.Clone(r.catalysts[recipeTypeUID])
}

// AddManagerPlugin appends a plugin consulted after direct matches.
func (r *Registry) AddManagerPlugin(p ManagerPlugin) {
	r.plugins = append(r.plugins, p)
}

// HideCategory excludes a category from lookups that do not include hidden recipes.
func (r *Registry) HideCategory(recipeTypeUID string) error {
	if err := mainthread.Assert(r.checker, "hide category"); err != nil {
		return err
	}
	r.hidden[recipeTypeUID] = true
	return nil
}

// UnhideCategory reverses HideCategory.
func (r *Registry) UnhideCategory(recipeTypeUID string) error {
	if err := mainthread.Assert(r.checker, "unhide category"); err != nil {
		return err
	}
	delete(r.hidden, recipeTypeUID)
	return nil
}

// IsCategoryHidden reports whether a category is hidden.
func (r *Registry) IsCategoryHidden(recipeTypeUID string) bool {
	return r.hidden[recipeTypeUID]
}

// RecipeCount returns the number of directly registered recipes of a type.
func (r *Registry) RecipeCount(recipeTypeUID string) int {
	if l, ok := r.lists[recipeTypeUID]; ok {
		return l.len()
	}
	return 0
}

// CategoriesFor returns, in registration order, the categories with at least one
// recipe matching every focus, or whose catalysts match a catalyst or any focus.
func (r *Registry) CategoriesFor(focuses ...Focus) []AnyCategory {
	group := NewFocusGroup(focuses...)
	var out []AnyCategory
	for _, c := range r.categories.All() {
		if r.hidden[c.UID()] {
			continue
		}
		if r.categoryMatches(c.UID(), group) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) categoryMatches(uid string, group FocusGroup) bool {
	if group.IsEmpty() {
		return r.RecipeCount(uid) > 0
	}
	for _, f := range group.focuses {
		if (f.Role == RoleCatalyst || f.Role == RoleAny) && r.isCatalyst(uid, f.Ingredient) {
			return true
		}
	}
	if l, ok := r.lists[uid]; ok && l.anyMatch(r, group) {
		return true
	}
	for _, p := range r.plugins {
		for _, f := range group.focuses {
			if slices.Contains(safeRecipeTypes(p, f), uid) {
				return true
			}
		}
	}
	return false
}

func (r *Registry) isCatalyst(recipeTypeUID string, t ingredient.AnyTyped) bool {
	return slices.ContainsFunc(r.catalysts[recipeTypeUID], func(c ingredient.AnyTyped) bool {
		return ingredient.Same(c, t)
	})
}

// matches reports whether a layout satisfies every focus of group.
func (r *Registry) matches(recipeTypeUID string, layout *Layout, group FocusGroup) bool {
	for _, f := range group.focuses {
		key := ingredient.Key(f.Ingredient)
		var ok bool
		switch f.Role {
		case RoleInput:
			ok = layout.Contains(RoleInput, key)
		case RoleOutput:
			ok = layout.Contains(RoleOutput, key)
		case RoleCatalyst:
			ok = r.isCatalyst(recipeTypeUID, f.Ingredient)
		case RoleAny:
			ok = layout.Contains(RoleInput, key) || layout.Contains(RoleOutput, key) || r.isCatalyst(recipeTypeUID, f.Ingredient)
		}
		if !ok {
			return false
		}
	}
	return true
}

// listFor returns the list of t, creating it on first use. Mutations only.
func listFor[T any](r *Registry, t *RecipeType[T]) (*recipeList[T], error) {
	list, err := existingList(r, t)
	if err != nil || list != nil {
		return list, err
	}
	category, err := CategoryFor(r.categories, t)
	if err != nil {
		return nil, err
	}
	list = &recipeList[T]{category: category}
	r.lists[t.UID()] = list
	return list, nil
}

// existingList returns the list of t without creating it. A registered
// category with no recipes yet gives a nil list and no error.
func existingList[T any](r *Registry, t *RecipeType[T]) (*recipeList[T], error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil recipe type", ErrPrecondition)
	}
	raw, ok := r.lists[t.UID()]
	if !ok {
		_, err := CategoryFor(r.categories, t)
		return nil, err
	}
	list, ok := raw.(*recipeList[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s is registered for a different record type", ErrUnknownRecipeType, t.UID())
	}
	return list, nil
}

// recipeList stores records of one type with lazily extracted layouts.
type recipeList[T any] struct {
	category Category[T]
	recipes  []T
	layouts  []*layoutCell
	hidden   []bool
}

// layoutCell extracts one recipe layout at most once, even when concurrent
// lookups reach it together.
type layoutCell struct {
	once   sync.Once
	layout *Layout
}

type recipeListAny interface {
	len() int
	anyMatch(r *Registry, group FocusGroup) bool
}

func (l *recipeList[T]) len() int { return len(l.recipes) }

// all returns the records, or nil for a nil list.
func (l *recipeList[T]) all() []T {
	if l == nil {
		return nil
	}
	return l.recipes
}

func (l *recipeList[T]) add(recipes []T) {
	l.recipes = append(l.recipes, recipes...)
	for range recipes {
		l.layouts = append(l.layouts, &layoutCell{})
	}
	l.hidden = append(l.hidden, make([]bool, len(recipes))...)
}

func (l *recipeList[T]) setHidden(pred func(T) bool, hidden bool) int {
	n := 0
	for i, rec := range l.recipes {
		if pred(rec) && l.hidden[i] != hidden {
			l.hidden[i] = hidden
			n++
		}
	}
	return n
}

// layout returns the memoized layout of recipe i, extracting it on first use.
// Recipes whose extraction fails get an empty layout and never match a focus.
func (l *recipeList[T]) layout(m *ingredient.Manager, i int) *Layout {
	cell := l.layouts[i]
	cell.once.Do(func() {
		layout, err := extract(m, l.category, l.recipes[i])
		if err != nil {
			log.ErrorErr(log.CatRecipes, "Recipe layout failed", err, "recipe", ErrorInfo(m, l.category, l.recipes[i]))
			layout = newLayout(nil)
		}
		cell.layout = layout
	})
	return cell.layout
}

func (l *recipeList[T]) anyMatch(r *Registry, group FocusGroup) bool {
	for i := range l.recipes {
		if l.hidden[i] {
			continue
		}
		if r.matches(l.category.RecipeType().UID(), l.layout(r.manager, i), group) {
			return true
		}
	}
	return false
}

func extract[T any](m *ingredient.Manager, c Category[T], recipe T) (layout *Layout, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("category %s panicked: %v", c.RecipeType().UID(), p)
		}
	}()
	if h, ok := c.(HandledChecker[T]); ok && !h.IsHandled(recipe) {
		return newLayout(nil), nil
	}
	b := NewLayoutBuilder(m)
	if err := c.SetRecipe(b, recipe, FocusGroup{}); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
