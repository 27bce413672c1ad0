package recipe

import (
	"fmt"
	"strings"

	"github.com/zjrosen/almanac/internal/ingredient"
)

// ErrorInfo describes a recipe for diagnostics: its name when the category
// provides one, followed by input and output uids. It never fails.
func ErrorInfo[T any](m *ingredient.Manager, c Category[T], recipe T) (info string) {
	var b strings.Builder
	b.WriteString(c.RecipeType().UID())

	if n, ok := c.(Namer[T]); ok {
		if name, ok := n.RegistryName(recipe); ok {
			fmt.Fprintf(&b, " %s", name)
		}
	}

	defer func() {
		if p := recover(); p != nil {
			info = fmt.Sprintf("%s {layout panicked: %v}", b.String(), p)
		}
	}()

	builder := NewLayoutBuilder(m)
	if err := c.SetRecipe(builder, recipe, FocusGroup{}); err != nil {
		fmt.Fprintf(&b, " {layout error: %v}", err)
		return b.String()
	}
	layout := builder.Build()
	fmt.Fprintf(&b, " {inputs: %s, outputs: %s}", uids(layout.Ingredients(RoleInput)), uids(layout.Ingredients(RoleOutput)))
	return b.String()
}

func uids(typed []ingredient.AnyTyped) string {
	parts := make([]string, len(typed))
	for i, t := range typed {
		parts[i] = t.UID()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
