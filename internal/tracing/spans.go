package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrPluginUID   = "plugin.uid"
	AttrPluginPhase = "plugin.phase"
	AttrPluginCount = "plugin.count"

	AttrRecipeType    = "recipe.type"
	AttrRecipeFocuses = "recipe.focuses"

	AttrRecipeDirectMatches = "recipe.direct_matches"

	AttrIngredientType  = "ingredient.type"
	AttrIngredientCount = "ingredient.count"

	AttrDataPackFiles = "datapack.files"

	AttrReloadAdded   = "reload.added"
	AttrReloadRemoved = "reload.removed"
)

// Span names.
const (
	SpanPluginLoad   = "plugin.load"
	SpanPluginPhase  = "plugin.phase."
	SpanPluginCall   = "plugin.call"
	SpanRecipeLookup = "recipe.lookup"
	SpanRuntimeBuild = "runtime.build"
	SpanReload       = "runtime.reload"
)

// RecordError marks span as failed with err. A nil err marks it ok.
func RecordError(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
