// Package ingredient maps typed ingredient values to stable uids and owns the
// live, runtime-mutable set of known ingredients per type.
package ingredient

import (
	"fmt"
	"reflect"
)

// UIDContext selects which comparison a uid is derived for.
type UIDContext int

const (
	// UIDIngredient is used for the ingredient list, search index and bookmarks.
	UIDIngredient UIDContext = iota
	// UIDRecipe is used when comparing ingredients inside recipes.
	UIDRecipe
)

func (c UIDContext) String() string {
	switch c {
	case UIDIngredient:
		return "ingredient"
	case UIDRecipe:
		return "recipe"
	default:
		return fmt.Sprintf("UIDContext(%d)", int(c))
	}
}

// AnyType is the type-erased view of a *Type[V].
type AnyType interface {
	UID() string
	// Accepts reports whether v is a value governed by this type.
	Accepts(v any) bool
	ValueType() reflect.Type
	HasSubtypes() bool
}

// Type identifies one kind of ingredient whose values have Go type V.
type Type[V any] struct {
	uid  string
	base func(V) string
}

// NewType returns a type without subtype support.
func NewType[V any](uid string) *Type[V] {
	return &Type[V]{uid: uid}
}

// NewTypeWithSubtypes returns a type whose uids are refined by subtype
// interpreters keyed by base(v), usually the registry id of the value.
func NewTypeWithSubtypes[V any](uid string, base func(V) string) *Type[V] {
	return &Type[V]{uid: uid, base: base}
}

func (t *Type[V]) UID() string { return t.uid }

func (t *Type[V]) Accepts(v any) bool {
	_, ok := v.(V)
	return ok
}

func (t *Type[V]) ValueType() reflect.Type { return reflect.TypeFor[V]() }

func (t *Type[V]) HasSubtypes() bool { return t.base != nil }

// Base returns the subtype key of v, or "" for types without subtypes.
func (t *Type[V]) Base(v V) string {
	if t.base == nil {
		return ""
	}
	return t.base(v)
}

func (t *Type[V]) String() string {
	return fmt.Sprintf("%s(%s)", t.uid, t.ValueType())
}

// TypeRegistry is the ordered set of registered ingredient types.
type TypeRegistry struct {
	types    []AnyType
	byUID    map[string]AnyType
	byGoType map[reflect.Type]AnyType
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byUID:    make(map[string]AnyType),
		byGoType: make(map[reflect.Type]AnyType),
	}
}

// Register appends t. Type uids and Go value types must both be unique.
func (r *TypeRegistry) Register(t AnyType) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil ingredient type", ErrPrecondition)
	}
	if t.UID() == "" {
		return fmt.Errorf("%w: ingredient type uid must not be empty", ErrPrecondition)
	}
	if _, ok := r.byUID[t.UID()]; ok {
		return fmt.Errorf("%w: uid %q", ErrDuplicateType, t.UID())
	}
	if existing, ok := r.byGoType[t.ValueType()]; ok {
		return fmt.Errorf("%w: %s already governed by %q", ErrDuplicateType, t.ValueType(), existing.UID())
	}
	r.types = append(r.types, t)
	r.byUID[t.UID()] = t
	r.byGoType[t.ValueType()] = t
	return nil
}

// Lookup finds a type by its uid.
func (r *TypeRegistry) Lookup(uid string) (AnyType, bool) {
	t, ok := r.byUID[uid]
	return t, ok
}

// All returns the registered types in registration order.
func (r *TypeRegistry) All() []AnyType {
	out := make([]AnyType, len(r.types))
	copy(out, r.types)
	return out
}

// Probe returns the first registered type, in registration order, that accepts v.
func (r *TypeRegistry) Probe(v any) (AnyType, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil ingredient", ErrPrecondition)
	}
	for _, t := range r.types {
		if t.Accepts(v) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no type accepts values of %T", ErrUnknownIngredientType, v)
}

func isNil(t AnyType) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
