package recipe

import (
	"context"
	"iter"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/tracing"
)

// Lookup builds a query over the recipes of one type.
type Lookup[T any] struct {
	registry      *Registry
	recipeType    *RecipeType[T]
	focuses       FocusGroup
	includeHidden bool
}

// CreateLookup starts a lookup over recipes of type t.
func CreateLookup[T any](r *Registry, t *RecipeType[T]) *Lookup[T] {
	return &Lookup[T]{registry: r, recipeType: t}
}

// LimitFocus restricts results to recipes matching every focus.
func (l *Lookup[T]) LimitFocus(focuses ...Focus) *Lookup[T] {
	l.focuses = NewFocusGroup(append(l.focuses.All(), focuses...)...)
	return l
}

// IncludeHidden includes hidden recipes and hidden categories.
func (l *Lookup[T]) IncludeHidden() *Lookup[T] {
	l.includeHidden = true
	return l
}

// Get yields direct matches in registration order followed by recipe manager
// plugin matches. Each call re-scans.
func (l *Lookup[T]) Get() iter.Seq[T] {
	return func(yield func(T) bool) {
		r := l.registry
		if l.recipeType == nil {
			return
		}
		uid := l.recipeType.UID()
		if !l.includeHidden && r.hidden[uid] {
			return
		}

		_, span := r.tracer.Start(context.Background(), tracing.SpanRecipeLookup)
		defer span.End()
		span.SetAttributes(
			attribute.String(tracing.AttrRecipeType, uid),
			attribute.Int(tracing.AttrRecipeFocuses, l.focuses.Len()),
		)
		if r.observer != nil {
			r.observer.RecipeLookup(uid, l.focuses.Len())
		}

		list, err := existingList(r, l.recipeType)
		if err != nil {
			log.Debug(log.CatRecipes, "Lookup on recipe type without category", "type", uid)
			return
		}

		direct := 0
		for i := range list.all() {
			if list.hidden[i] && !l.includeHidden {
				continue
			}
			if !l.focuses.IsEmpty() && !r.matches(uid, list.layout(r.manager, i), l.focuses) {
				continue
			}
			direct++
			if !yield(list.recipes[i]) {
				return
			}
		}
		span.SetAttributes(attribute.Int(tracing.AttrRecipeDirectMatches, direct))

		for _, p := range r.plugins {
			records, ok := safeRecipes(p, uid, l.focuses)
			if !ok && r.observer != nil {
				r.observer.ManagerPluginFailed(p.Name())
			}
			for _, raw := range records {
				rec, ok := raw.(T)
				if !ok {
					log.Warn(log.CatRecipes, "Recipe manager plugin returned a record of the wrong type", "plugin", p.Name(), "type", uid)
					continue
				}
				if !yield(rec) {
					return
				}
			}
		}
	}
}
