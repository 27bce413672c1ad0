// Package app wires the registries, search index and bookmarks into one
// runtime owned by the calling goroutine.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/config"
	"github.com/zjrosen/almanac/internal/filter"
	"github.com/zjrosen/almanac/internal/flags"
	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/i18n"
	"github.com/zjrosen/almanac/internal/infrastructure/sqlite"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
	"github.com/zjrosen/almanac/internal/metrics"
	"github.com/zjrosen/almanac/internal/plugin"
	"github.com/zjrosen/almanac/internal/pubsub"
	"github.com/zjrosen/almanac/internal/recipe"
	"github.com/zjrosen/almanac/internal/tracing"
	"github.com/zjrosen/almanac/internal/vanilla"
)

// Option configures New.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
	plugins []plugin.Plugin
	repo    bookmark.Repository
}

// WithMetrics reports runtime activity and registry sizes to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithPlugins adds plugins loaded after the vanilla plugin.
func WithPlugins(plugins ...plugin.Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, plugins...) }
}

// WithBookmarkRepository replaces the configured bookmark storage.
func WithBookmarkRepository(r bookmark.Repository) Option {
	return func(o *options) { o.repo = r }
}

// Change is the payload of ingredient change events. Reload events carry
// totals only.
type Change struct {
	TypeUID string
	UIDs    []string
	Added   int
	Removed int
}

// App is the loaded runtime. Every mutation must happen on the goroutine
// that called New.
type App struct {
	Config      config.Config
	Translator  *i18n.Translator
	Flags       *flags.Registry
	Plugin      *vanilla.Plugin
	Ingredients *ingredient.Manager
	Recipes     *recipe.Registry
	Filter      *filter.Filter
	Bookmarks   *bookmark.List
	// Failures lists plugin calls that failed during load.
	Failures []*plugin.PhaseError

	owner   *mainthread.Owner
	tracing *tracing.Provider
	metrics *metrics.Metrics
	db      *sqlite.DB
	mods    atomic.Pointer[gamedata.ModIDHelper]
	events  *pubsub.Broker[Change]
	cancel  context.CancelFunc
}

var (
	_ ingredient.Listener = (*App)(nil)
	_ metrics.StateSource = (*App)(nil)
)

// New loads the data packs of cfg and builds the runtime on the calling goroutine.
func New(ctx context.Context, cfg config.Config, opts ...Option) (_ *App, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("creating tracer: %w", err)
	}
	ctx, span := tp.Tracer().Start(ctx, tracing.SpanRuntimeBuild)
	defer span.End()

	start := time.Now()
	pack, err := gamedata.LoadAll(ctx, cfg.DataDirs)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	tr := i18n.New(cfg.Locale)
	for locale, entries := range pack.Lang {
		tr.Add(locale, entries)
	}
	if cfg.LangDir != "" {
		if err := tr.LoadDir(os.DirFS(cfg.LangDir), "."); err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		Config:     cfg,
		Translator: tr,
		Flags:      flags.New(cfg.Flags),
		owner:      mainthread.Bind(),
		tracing:    tp,
		metrics:    o.metrics,
		events:     pubsub.NewBroker[Change](),
		cancel:     cancel,
	}
	a.mods.Store(gamedata.NewModIDHelper(pack.ModNames()))
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
			_ = a.Close()
		}
	}()

	a.Plugin = vanilla.NewPlugin(gamedata.NewCatalog(pack), tr)
	res, err := plugin.NewLoader(append([]plugin.Plugin{a.Plugin}, o.plugins...), a.loaderOptions()...).Load(ctx)
	if err != nil {
		return nil, err
	}
	a.Ingredients, a.Recipes, a.Failures = res.Manager, res.Registry, res.Failures
	tr.OnLocaleChange(func(string) { a.Ingredients.FlushAliases() })

	fcfg, err := cfg.Filter.ToFilterConfig()
	if err != nil {
		return nil, err
	}
	a.Filter, err = filter.New(ctx, a.Ingredients,
		filter.WithConfig(fcfg),
		filter.WithFolder(tr.Fold),
		filter.WithCompare(tr.Compare),
		filter.WithModNames(func(modID string) string { return a.mods.Load().ModName(modID) }),
	)
	if err != nil {
		return nil, err
	}

	repo := o.repo
	if repo == nil {
		path := cfg.Bookmarks.Path
		if !a.Flags.Enabled(flags.FlagBookmarkPersistence) {
			path = ""
		}
		if repo, err = a.openBookmarks(path); err != nil {
			return nil, err
		}
	}
	a.Bookmarks, err = bookmark.NewList(ctx, repo, a.Ingredients)
	if err != nil {
		return nil, err
	}

	a.Ingredients.RegisterListener(ctx, a)
	if a.metrics != nil && a.Flags.Enabled(flags.FlagStateMetrics) {
		if err := a.metrics.Track(a); err != nil {
			return nil, fmt.Errorf("registering state metrics: %w", err)
		}
	}

	span.SetAttributes(attribute.Int(tracing.AttrPluginCount, 1+len(o.plugins)))
	log.Info(log.CatPlugin, "Runtime ready",
		"ingredients", len(a.Ingredients.AllTyped()),
		"plugin_failures", len(a.Failures),
		"duration", time.Since(start))
	return a, nil
}

func (a *App) loaderOptions() []plugin.LoaderOption {
	managerOpts := []ingredient.Option{
		ingredient.WithMainThread(a.owner),
		ingredient.WithTranslator(a.Translator),
	}
	registryOpts := []recipe.Option{recipe.WithTracer(a.tracing.Tracer())}
	opts := []plugin.LoaderOption{
		plugin.WithTracer(a.tracing.Tracer()),
		plugin.WithTranslator(a.Translator),
	}
	if a.metrics != nil {
		managerOpts = append(managerOpts, ingredient.WithObserver(a.metrics))
		registryOpts = append(registryOpts, recipe.WithLookupObserver(a.metrics))
		opts = append(opts, plugin.WithFailureObserver(a.metrics))
	}
	return append(opts,
		plugin.WithManagerOptions(managerOpts...),
		plugin.WithRegistryOptions(registryOpts...),
	)
}

func (a *App) openBookmarks(path string) (bookmark.Repository, error) {
	if path == "" {
		log.Info(log.CatBookmarks, "No bookmark database configured, keeping bookmarks in memory")
		return bookmark.NewInMemoryRepository(), nil
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening bookmark database: %w", err)
	}
	a.db = db
	return db.BookmarkRepository(), nil
}

// Close stops every listener and releases the database and tracer.
func (a *App) Close() error {
	a.cancel()
	if a.Bookmarks != nil {
		a.Bookmarks.Close()
	}
	if a.Filter != nil {
		a.Filter.Close()
	}
	a.events.Close()

	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errs = append(errs, a.tracing.Shutdown(ctx))
	return errors.Join(errs...)
}

// MainThread is the checker every mutation is asserted against.
func (a *App) MainThread() mainthread.Checker { return a.owner }

// Tracer returns the runtime's tracer.
func (a *App) Tracer() trace.Tracer { return a.tracing.Tracer() }

// ModName resolves a mod id to its display name.
func (a *App) ModName(modID string) string { return a.mods.Load().ModName(modID) }

// Events returns the broker publishing ingredient and reload changes.
func (a *App) Events() *pubsub.Broker[Change] { return a.events }

func (a *App) IngredientsAdded(e ingredient.Event) {
	c := changeOf(e)
	c.Added = len(c.UIDs)
	a.events.Publish(pubsub.AddedEvent, c)
}

func (a *App) IngredientsRemoved(e ingredient.Event) {
	c := changeOf(e)
	c.Removed = len(c.UIDs)
	a.events.Publish(pubsub.RemovedEvent, c)
}

func changeOf(e ingredient.Event) Change {
	uids := make([]string, len(e.Ingredients))
	for i, t := range e.Ingredients {
		uids[i] = t.UID()
	}
	return Change{TypeUID: e.Type.UID(), UIDs: uids}
}

// IngredientCounts implements metrics.StateSource.
func (a *App) IngredientCounts() map[string]int {
	out := make(map[string]int)
	for _, t := range a.Ingredients.RegisteredTypes() {
		out[t.UID()] = a.Ingredients.Count(t)
	}
	return out
}

// RecipeCounts implements metrics.StateSource.
func (a *App) RecipeCounts() map[string]int {
	out := make(map[string]int)
	for _, c := range a.Recipes.Categories().All() {
		out[c.UID()] = a.Recipes.RecipeCount(c.UID())
	}
	return out
}
