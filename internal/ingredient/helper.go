package ingredient

import "fmt"

// Helper supplies identity, validity and descriptive data for values of one type.
type Helper[V any] interface {
	// UID returns the stable identity of v in the given comparison context.
	// Values with the same semantic content must produce the same uid.
	UID(v V, ctx UIDContext) string
	DisplayName(v V) string
	ModID(v V) string
	// ResourceID is the namespaced registry id, e.g. "minecraft:oak_log".
	ResourceID(v V) string
	Tags(v V) []string
	// Categories are creative tabs or similar groupings.
	Categories(v V) []string
	IsValid(v V) bool
	// IsOnServer reports whether the value is known to the authoritative game data.
	IsOnServer(v V) bool
	// Normalize returns the canonical form of v, e.g. a stack of size one.
	Normalize(v V) V
	// ErrorInfo describes v for diagnostics and must not fail on invalid values.
	ErrorInfo(v V) string
}

// Renderer is the opaque drawing collaborator bound to a type. The core only
// reads tooltip lines from it for searching.
type Renderer[V any] interface {
	Tooltip(v V) []string
}

// Description is the flattened, type-independent data of one ingredient.
type Description struct {
	TypeUID     string
	UID         string
	DisplayName string
	ModID       string
	ResourceID  string
	Tags        []string
	Categories  []string
	Tooltip     []string
}

// AnyHelper is the type-erased view of a Helper bound to its type.
type AnyHelper interface {
	Type() AnyType
	UID(v any, ctx UIDContext) (string, error)
	Describe(v any) (Description, error)
	ErrorInfo(v any) string
}

type erasedHelper[V any] struct {
	typ      *Type[V]
	helper   Helper[V]
	renderer Renderer[V]
}

var _ AnyHelper = erasedHelper[int]{}

func (h erasedHelper[V]) Type() AnyType { return h.typ }

func (h erasedHelper[V]) cast(v any) (V, error) {
	value, ok := v.(V)
	if !ok {
		return value, fmt.Errorf("%w: %T is not a value of %q", ErrPrecondition, v, h.typ.UID())
	}
	return value, nil
}

func (h erasedHelper[V]) UID(v any, ctx UIDContext) (string, error) {
	value, err := h.cast(v)
	if err != nil {
		return "", err
	}
	return h.helper.UID(value, ctx), nil
}

func (h erasedHelper[V]) Describe(v any) (Description, error) {
	value, err := h.cast(v)
	if err != nil {
		return Description{}, err
	}
	d := Description{
		TypeUID:     h.typ.UID(),
		UID:         h.helper.UID(value, UIDIngredient),
		DisplayName: h.helper.DisplayName(value),
		ModID:       h.helper.ModID(value),
		ResourceID:  h.helper.ResourceID(value),
		Tags:        h.helper.Tags(value),
		Categories:  h.helper.Categories(value),
	}
	if h.renderer != nil {
		d.Tooltip = h.renderer.Tooltip(value)
	}
	return d, nil
}

func (h erasedHelper[V]) ErrorInfo(v any) string {
	value, err := h.cast(v)
	if err != nil {
		return fmt.Sprintf("%T(%v)", v, v)
	}
	return h.helper.ErrorInfo(value)
}
