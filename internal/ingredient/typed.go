package ingredient

import "fmt"

// AnyTyped is the type-erased view of a Typed value.
type AnyTyped interface {
	IngredientType() AnyType
	UID() string
	Raw() any
}

// Typed is a valid ingredient value together with its type and uid.
// It can only be created through the Manager.
type Typed[V any] struct {
	typ   *Type[V]
	value V
	uid   string
}

func (t Typed[V]) Type() *Type[V]          { return t.typ }
func (t Typed[V]) Value() V                { return t.value }
func (t Typed[V]) UID() string             { return t.uid }
func (t Typed[V]) IngredientType() AnyType { return t.typ }
func (t Typed[V]) Raw() any                { return t.value }

func (t Typed[V]) String() string {
	return fmt.Sprintf("%s[%s]", t.typ.UID(), t.uid)
}

// Key identifies an ingredient across all types.
func Key(t AnyTyped) string {
	return t.IngredientType().UID() + "|" + t.UID()
}

// Same reports whether a and b are the same ingredient by type and uid.
func Same(a, b AnyTyped) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IngredientType().UID() == b.IngredientType().UID() && a.UID() == b.UID()
}

// Rect is a screen area in GUI coordinates. The core does not interpret it.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Clickable pairs a typed ingredient with the area it occupies on screen.
type Clickable[V any] struct {
	Typed[V]
	Area Rect
}
