package ingredient

import (
	"slices"
)

// Info is the live, ordered set of known values of one type.
// Insertion order is the default display order.
//
// values is replaced, never written in place, so a slice handed out by All
// stays valid after later mutations.
type Info[V any] struct {
	typ      *Type[V]
	helper   Helper[V]
	renderer Renderer[V]

	values []V
	byUID  map[string]V

	aliases map[string][]string
}

func newInfo[V any](t *Type[V], helper Helper[V], renderer Renderer[V]) *Info[V] {
	return &Info[V]{
		typ:      t,
		helper:   helper,
		renderer: renderer,
		values:   []V{},
		byUID:    make(map[string]V),
		aliases:  make(map[string][]string),
	}
}

func (i *Info[V]) Type() *Type[V]          { return i.typ }
func (i *Info[V]) Helper() Helper[V]       { return i.helper }
func (i *Info[V]) Renderer() Renderer[V]   { return i.renderer }
func (i *Info[V]) Len() int                { return len(i.values) }
func (i *Info[V]) uidOf(v V) string        { return i.helper.UID(v, UIDIngredient) }
func (i *Info[V]) ingredientType() AnyType { return i.typ }

// All returns the current values in insertion order. The slice is shared
// with other readers and must not be modified.
func (i *Info[V]) All() []V {
	return i.values
}

// ByUID returns the value with the given uid.
func (i *Info[V]) ByUID(uid string) (V, bool) {
	v, ok := i.byUID[uid]
	return v, ok
}

// add inserts values not yet present and returns the ones that were inserted.
func (i *Info[V]) add(values []V) []V {
	var added []V
	for _, v := range values {
		uid := i.uidOf(v)
		if _, exists := i.byUID[uid]; exists {
			continue
		}
		i.byUID[uid] = v
		added = append(added, v)
	}
	if len(added) > 0 {
		i.values = append(slices.Clip(i.values), added...)
	}
	return added
}

// remove deletes values that are present and returns the stored values removed.
func (i *Info[V]) remove(values []V) []V {
	var removed []V
	for _, v := range values {
		uid := i.uidOf(v)
		stored, exists := i.byUID[uid]
		if !exists {
			continue
		}
		delete(i.byUID, uid)
		removed = append(removed, stored)
	}
	if len(removed) > 0 {
		i.values = slices.DeleteFunc(slices.Clone(i.values), func(v V) bool {
			_, ok := i.byUID[i.uidOf(v)]
			return !ok
		})
	}
	return removed
}

func (i *Info[V]) addAliases(v V, aliases []string) {
	uid := i.uidOf(v)
	i.aliases[uid] = append(i.aliases[uid], aliases...)
}

func (i *Info[V]) aliasKeys(uid string) []string {
	return i.aliases[uid]
}

func (i *Info[V]) typed(v V) Typed[V] {
	return Typed[V]{typ: i.typ, value: v, uid: i.uidOf(v)}
}

func (i *Info[V]) typedAll(values []V) []AnyTyped {
	out := make([]AnyTyped, 0, len(values))
	for _, v := range values {
		out = append(out, i.typed(v))
	}
	return out
}

func (i *Info[V]) allTyped() []AnyTyped {
	return i.typedAll(i.All())
}

func (i *Info[V]) lookupAny(uid string) (AnyTyped, bool) {
	v, ok := i.byUID[uid]
	if !ok {
		return nil, false
	}
	return Typed[V]{typ: i.typ, value: v, uid: uid}, true
}

func (i *Info[V]) erased() AnyHelper {
	return erasedHelper[V]{typ: i.typ, helper: i.helper, renderer: i.renderer}
}

func (i *Info[V]) createAny(v any) (AnyTyped, bool) {
	value, ok := v.(V)
	if !ok || !i.helper.IsValid(value) {
		return nil, false
	}
	return i.typed(value), true
}

// infoAny is the type-erased view the Manager stores.
type infoAny interface {
	ingredientType() AnyType
	Len() int
	erased() AnyHelper
	allTyped() []AnyTyped
	lookupAny(uid string) (AnyTyped, bool)
	createAny(v any) (AnyTyped, bool)
	aliasKeys(uid string) []string
}
