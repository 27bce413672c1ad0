package plugin

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/recipe"
	"github.com/zjrosen/almanac/internal/tracing"
)

// FailureObserver is told about every failed plugin call, for metrics.
type FailureObserver interface {
	PluginFailed(pluginUID, phase string)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTracer wraps the load and every plugin call in spans.
func WithTracer(tracer trace.Tracer) LoaderOption {
	return func(l *Loader) { l.tracer = tracer }
}

// WithTranslator sets the translator for information pages.
func WithTranslator(t Translator) LoaderOption {
	return func(l *Loader) { l.translator = t }
}

// WithManagerOptions passes options to the built ingredient manager.
func WithManagerOptions(opts ...ingredient.Option) LoaderOption {
	return func(l *Loader) { l.managerOpts = append(l.managerOpts, opts...) }
}

// WithRegistryOptions passes options to the built recipe registry.
func WithRegistryOptions(opts ...recipe.Option) LoaderOption {
	return func(l *Loader) { l.registryOpts = append(l.registryOpts, opts...) }
}

// WithFailureObserver sets the observer of failed plugin calls.
func WithFailureObserver(o FailureObserver) LoaderOption {
	return func(l *Loader) { l.observer = o }
}

// Loader runs the registration phases of a fixed list of plugins.
type Loader struct {
	plugins      []Plugin
	tracer       trace.Tracer
	translator   Translator
	managerOpts  []ingredient.Option
	registryOpts []recipe.Option
	observer     FailureObserver
}

// NewLoader creates a loader for plugins, called in list order within each phase.
func NewLoader(plugins []Plugin, opts ...LoaderOption) *Loader {
	l := &Loader{
		plugins:    plugins,
		tracer:     noop.NewTracerProvider().Tracer("plugin"),
		translator: identityTranslator{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is what a successful load produced.
type Result struct {
	Manager    *ingredient.Manager
	Registry   *recipe.Registry
	Categories *recipe.CategoryRegistry
	// Failures lists the plugin calls that failed. Failed calls are skipped,
	// everything else is loaded.
	Failures []*PhaseError
}

// Load runs every phase. Plugin failures never abort the load; only a
// cancelled ctx does.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	ctx, span := l.tracer.Start(ctx, tracing.SpanPluginLoad,
		trace.WithAttributes(attribute.Int(tracing.AttrPluginCount, len(l.plugins))))
	defer span.End()

	start := time.Now()
	res := &Result{Categories: recipe.NewCategoryRegistry()}
	if err := recipe.RegisterCategory[recipe.InfoRecipe](res.Categories, recipe.InfoCategory{}); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	subtypes := ingredient.NewSubtypeRegistry()
	registration := ingredient.NewRegistration(subtypes)

	var recipes *RecipeRegistration
	for _, phase := range Phases {
		if err := ctx.Err(); err != nil {
			tracing.RecordError(span, err)
			return nil, fmt.Errorf("plugin load cancelled before %s: %w", phase, err)
		}

		// The manager and registry exist once ingredients and categories are in.
		if phase == PhaseRecipes {
			res.Manager = registration.Build(l.managerOpts...)
			res.Registry = recipe.NewRegistry(res.Categories, res.Manager, l.registryOpts...)
			recipes = &RecipeRegistration{Registry: res.Registry, Manager: res.Manager, translator: l.translator}
		}

		phaseStart := time.Now()
		phaseCtx, phaseSpan := l.tracer.Start(ctx, tracing.SpanPluginPhase+phase.String())
		for _, p := range l.plugins {
			fn := l.phaseFunc(phase, p, subtypes, registration, res, recipes)
			if fn == nil {
				continue
			}
			if perr := l.call(phaseCtx, p, phase, fn); perr != nil {
				res.Failures = append(res.Failures, perr)
			}
		}
		phaseSpan.End()
		log.Info(log.CatPlugin, "Plugin phase complete", "phase", phase.String(), "elapsed", time.Since(phaseStart))
	}

	log.Info(log.CatPlugin, "Plugins loaded",
		"plugins", len(l.plugins),
		"failures", len(res.Failures),
		"elapsed", time.Since(start))
	tracing.RecordError(span, nil)
	return res, nil
}

// phaseFunc returns the call p makes in phase, or nil when p does not take part.
func (l *Loader) phaseFunc(phase Phase, p Plugin, subtypes *ingredient.SubtypeRegistry, reg *ingredient.Registration, res *Result, recipes *RecipeRegistration) func() error {
	switch phase {
	case PhaseSubtypes:
		if r, ok := p.(SubtypeRegistrar); ok {
			return func() error { return r.RegisterItemSubtypes(subtypes) }
		}
	case PhaseIngredients:
		if r, ok := p.(IngredientRegistrar); ok {
			return func() error { return r.RegisterIngredients(reg) }
		}
	case PhaseCategories:
		if r, ok := p.(CategoryRegistrar); ok {
			return func() error { return r.RegisterCategories(res.Categories) }
		}
	case PhaseRecipes:
		if r, ok := p.(RecipeRegistrar); ok {
			return func() error { return r.RegisterRecipes(recipes) }
		}
	case PhaseCatalysts:
		if r, ok := p.(CatalystRegistrar); ok {
			return func() error { return r.RegisterRecipeCatalysts(res.Registry) }
		}
	case PhaseAdvanced:
		if r, ok := p.(AdvancedRegistrar); ok {
			return func() error { return r.RegisterAdvanced(res.Registry) }
		}
	}
	return nil
}

// call runs fn for p, converting errors and panics into a PhaseError.
func (l *Loader) call(ctx context.Context, p Plugin, phase Phase, fn func() error) *PhaseError {
	_, span := l.tracer.Start(ctx, tracing.SpanPluginCall, trace.WithAttributes(
		attribute.String(tracing.AttrPluginUID, p.UID()),
		attribute.String(tracing.AttrPluginPhase, phase.String()),
	))
	defer span.End()

	err := safeCall(fn)
	tracing.RecordError(span, err)
	if err == nil {
		return nil
	}
	log.ErrorErr(log.CatPlugin, "Plugin failed", err, "plugin", p.UID(), "phase", phase.String())
	if l.observer != nil {
		l.observer.PluginFailed(p.UID(), phase.String())
	}
	return &PhaseError{PluginUID: p.UID(), Phase: phase, Err: err}
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}
