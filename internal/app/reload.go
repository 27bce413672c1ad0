package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
	"github.com/zjrosen/almanac/internal/pubsub"
	"github.com/zjrosen/almanac/internal/tracing"
	"github.com/zjrosen/almanac/internal/vanilla"
)

// ReloadDirs reloads the configured data pack directories.
func (a *App) ReloadDirs(ctx context.Context) (Change, error) {
	pack, err := gamedata.LoadAll(ctx, a.Config.DataDirs)
	if err != nil {
		a.reloadFinished(err)
		return Change{}, err
	}
	return a.Reload(ctx, pack)
}

// Reload applies pack to the running registries. Ingredients missing from
// pack are removed and new ones added, so listeners see one change per
// ingredient type. Recipes and categories keep their load-time contents.
func (a *App) Reload(ctx context.Context, pack *gamedata.Pack) (total Change, err error) {
	if err := mainthread.Assert(a.owner, "reload data packs"); err != nil {
		return Change{}, err
	}
	ctx, span := a.tracing.Tracer().Start(ctx, tracing.SpanReload)
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
		}
		span.End()
		a.reloadFinished(err)
	}()
	if err := ctx.Err(); err != nil {
		return Change{}, err
	}

	catalog := gamedata.NewCatalog(pack)
	items, err := diffValues(a.Ingredients, vanilla.ItemType, vanilla.ItemStacks(catalog))
	if err != nil {
		return Change{}, err
	}
	fluids, err := diffValues(a.Ingredients, vanilla.FluidType, vanilla.FluidStacks(catalog))
	if err != nil {
		return Change{}, err
	}

	// Removed values are described by the catalog they came from.
	if err := applyRemoved(a.Ingredients, vanilla.ItemType, items); err != nil {
		return Change{}, err
	}
	if err := applyRemoved(a.Ingredients, vanilla.FluidType, fluids); err != nil {
		return Change{}, err
	}

	for locale, entries := range pack.Lang {
		a.Translator.Add(locale, entries)
	}
	a.mods.Store(gamedata.NewModIDHelper(pack.ModNames()))
	a.Plugin.SetCatalog(catalog)

	if err := applyAdded(a.Ingredients, vanilla.ItemType, items); err != nil {
		return Change{}, err
	}
	if err := applyAdded(a.Ingredients, vanilla.FluidType, fluids); err != nil {
		return Change{}, err
	}

	total = Change{
		Added:   len(items.added) + len(fluids.added),
		Removed: len(items.removed) + len(fluids.removed),
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrReloadAdded, total.Added),
		attribute.Int(tracing.AttrReloadRemoved, total.Removed),
	)
	a.events.Publish(pubsub.ReloadedEvent, total)
	log.Info(log.CatWatcher, "Data packs reloaded", "added", total.Added, "removed", total.Removed)
	return total, nil
}

func (a *App) reloadFinished(err error) {
	if a.metrics != nil {
		a.metrics.ReloadFinished(err)
	}
}

type valueDiff[V any] struct {
	added   []V
	removed []V
}

// diffValues compares the known values of t with next by uid.
func diffValues[V any](m *ingredient.Manager, t *ingredient.Type[V], next []V) (valueDiff[V], error) {
	helper, err := ingredient.HelperOf(m, t)
	if err != nil {
		return valueDiff[V]{}, err
	}
	current, err := ingredient.AllIngredients(m, t)
	if err != nil {
		return valueDiff[V]{}, err
	}

	known := make(map[string]struct{}, len(current))
	for _, v := range current {
		known[helper.UID(v, ingredient.UIDIngredient)] = struct{}{}
	}
	var d valueDiff[V]
	wanted := make(map[string]struct{}, len(next))
	for _, v := range next {
		uid := helper.UID(v, ingredient.UIDIngredient)
		if _, dup := wanted[uid]; dup {
			continue
		}
		wanted[uid] = struct{}{}
		if _, ok := known[uid]; !ok {
			d.added = append(d.added, v)
		}
	}
	for _, v := range current {
		if _, ok := wanted[helper.UID(v, ingredient.UIDIngredient)]; !ok {
			d.removed = append(d.removed, v)
		}
	}
	return d, nil
}

func applyRemoved[V any](m *ingredient.Manager, t *ingredient.Type[V], d valueDiff[V]) error {
	if len(d.removed) == 0 {
		return nil
	}
	if err := ingredient.RemoveAtRuntime(m, t, d.removed); err != nil {
		return fmt.Errorf("removing %s ingredients: %w", t.UID(), err)
	}
	return nil
}

func applyAdded[V any](m *ingredient.Manager, t *ingredient.Type[V], d valueDiff[V]) error {
	if len(d.added) == 0 {
		return nil
	}
	if err := ingredient.AddAtRuntime(m, t, d.added); err != nil {
		return fmt.Errorf("adding %s ingredients: %w", t.UID(), err)
	}
	return nil
}
