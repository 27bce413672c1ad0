package ingredient

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zjrosen/almanac/internal/log"
)

// None is returned by a SubtypeInterpreter when a value carries no subtype data.
// It is distinct from an empty component list, which encodes as "[]".
const None = ""

// SubtypeInterpreter extracts the subtype part of a uid for values sharing one base id.
type SubtypeInterpreter[V any] interface {
	Apply(v V, ctx UIDContext) string
}

// SubtypeInterpreterFunc adapts a function to SubtypeInterpreter.
type SubtypeInterpreterFunc[V any] func(v V, ctx UIDContext) string

func (f SubtypeInterpreterFunc[V]) Apply(v V, ctx UIDContext) string { return f(v, ctx) }

// SubtypeRegistry holds interpreters per (type uid, base id).
type SubtypeRegistry struct {
	interpreters map[string]map[string]any
}

func NewSubtypeRegistry() *SubtypeRegistry {
	return &SubtypeRegistry{interpreters: make(map[string]map[string]any)}
}

// RegisterSubtypeInterpreter binds interp to values of t whose base is base.
func RegisterSubtypeInterpreter[V any](r *SubtypeRegistry, t *Type[V], base string, interp SubtypeInterpreter[V]) error {
	if r == nil || t == nil || interp == nil {
		return fmt.Errorf("%w: nil subtype registration argument", ErrPrecondition)
	}
	if !t.HasSubtypes() {
		return fmt.Errorf("%w: type %q does not support subtypes", ErrPrecondition, t.UID())
	}
	if base == "" {
		return fmt.Errorf("%w: empty base id for type %q", ErrPrecondition, t.UID())
	}
	byBase, ok := r.interpreters[t.UID()]
	if !ok {
		byBase = make(map[string]any)
		r.interpreters[t.UID()] = byBase
	}
	if _, exists := byBase[base]; exists {
		log.Error(log.CatIngredients, "Duplicate subtype interpreter", "type", t.UID(), "base", base)
		return fmt.Errorf("%w: %s %s", ErrDuplicateInterpreter, t.UID(), base)
	}
	byBase[base] = interp
	return nil
}

// HasInterpreter reports whether an interpreter exists for base in type t.
func (r *SubtypeRegistry) HasInterpreter(t AnyType, base string) bool {
	if r == nil || t == nil {
		return false
	}
	_, ok := r.interpreters[t.UID()][base]
	return ok
}

// SubtypeData returns the interpreter output for v, or None when no interpreter applies.
func SubtypeData[V any](r *SubtypeRegistry, t *Type[V], v V, ctx UIDContext) string {
	if r == nil || !t.HasSubtypes() {
		return None
	}
	raw, ok := r.interpreters[t.UID()][t.Base(v)]
	if !ok {
		return None
	}
	interp, ok := raw.(SubtypeInterpreter[V])
	if !ok {
		return None
	}
	return interp.Apply(v, ctx)
}

// SubtypeUID derives "base" or "base:data" for types with subtypes.
func SubtypeUID[V any](r *SubtypeRegistry, t *Type[V], v V, ctx UIDContext) string {
	base := t.Base(v)
	data := SubtypeData(r, t, v, ctx)
	if data == None {
		return base
	}
	return base + ":" + data
}

// ComponentList encodes an unordered set of components as a sorted,
// comma separated list wrapped in brackets.
func ComponentList(parts []string) string {
	sorted := slices.Clone(parts)
	slices.Sort(sorted)
	return "[" + strings.Join(sorted, ",") + "]"
}

var uidPartEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`[`, `\[`,
	`]`, `\]`,
	`:`, `\:`,
)

// EncodeUIDPart escapes the uid delimiters in free-form text such as custom names.
func EncodeUIDPart(s string) string {
	return uidPartEscaper.Replace(s)
}
