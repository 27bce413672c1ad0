package ingredient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeRegistry_RegisterAndProbe(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register(stackType))
	require.NoError(t, r.Register(dropType))

	got, err := r.Probe(drop{Name: "lava"})
	require.NoError(t, err)
	require.Equal(t, "test:drop", got.UID())

	got, ok := r.Lookup("test:stack")
	require.True(t, ok)
	require.True(t, got.HasSubtypes())

	require.Equal(t, []AnyType{stackType, dropType}, r.All())
}

func TestTypeRegistry_RejectsDuplicates(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register(stackType))

	err := r.Register(NewType[stack]("test:other"))
	require.ErrorIs(t, err, ErrDuplicateType)

	err = r.Register(NewType[int]("test:stack"))
	require.ErrorIs(t, err, ErrDuplicateType)
}

func TestTypeRegistry_RejectsEmptyAndNil(t *testing.T) {
	r := NewTypeRegistry()
	require.ErrorIs(t, r.Register(NewType[int]("")), ErrPrecondition)

	var nilType *Type[int]
	require.ErrorIs(t, r.Register(nilType), ErrPrecondition)
}

func TestTypeRegistry_ProbeUnknown(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register(stackType))

	_, err := r.Probe(42)
	require.ErrorIs(t, err, ErrUnknownIngredientType)
	require.Contains(t, err.Error(), "int")

	_, err = r.Probe(nil)
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestUIDContext_String(t *testing.T) {
	require.Equal(t, "ingredient", UIDIngredient.String())
	require.Equal(t, "recipe", UIDRecipe.String())
	require.Equal(t, "UIDContext(7)", UIDContext(7).String())
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 16, Height: 16}
	require.True(t, r.Contains(10, 10))
	require.True(t, r.Contains(25, 25))
	require.False(t, r.Contains(26, 10))
}
