// Package recipe holds recipe categories, registered recipes and the
// focus-based lookup that answers "what makes or uses this ingredient".
package recipe

import (
	"fmt"
	"slices"

	"github.com/zjrosen/almanac/internal/ingredient"
)

// Role is the part an ingredient plays in a recipe.
type Role int

const (
	RoleInput Role = iota
	RoleOutput
	RoleCatalyst
	// RoleAny matches input, output or catalyst.
	RoleAny
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleCatalyst:
		return "catalyst"
	case RoleAny:
		return "any"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps a role name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "input":
		return RoleInput, nil
	case "output":
		return RoleOutput, nil
	case "catalyst":
		return RoleCatalyst, nil
	case "any", "":
		return RoleAny, nil
	}
	return RoleAny, fmt.Errorf("unknown recipe role %q", s)
}

// Focus narrows a lookup to recipes where an ingredient plays a role.
type Focus struct {
	Role       Role
	Ingredient ingredient.AnyTyped
}

func NewFocus(role Role, typed ingredient.AnyTyped) Focus {
	return Focus{Role: role, Ingredient: typed}
}

func (f Focus) key() string {
	return f.Role.String() + "/" + ingredient.Key(f.Ingredient)
}

func (f Focus) String() string {
	return f.Role.String() + ":" + f.Ingredient.UID()
}

// FocusGroup is an ordered set of focuses without duplicates.
// Every focus of a group must match for a recipe to match.
type FocusGroup struct {
	focuses []Focus
}

// NewFocusGroup drops focuses without an ingredient and repeated role+ingredient pairs.
func NewFocusGroup(focuses ...Focus) FocusGroup {
	seen := make(map[string]bool, len(focuses))
	out := make([]Focus, 0, len(focuses))
	for _, f := range focuses {
		if f.Ingredient == nil {
			continue
		}
		k := f.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return FocusGroup{focuses: out}
}

func (g FocusGroup) All() []Focus  { return slices.Clone(g.focuses) }
func (g FocusGroup) Len() int      { return len(g.focuses) }
func (g FocusGroup) IsEmpty() bool { return len(g.focuses) == 0 }

// WithRole returns the focuses having the given role.
func (g FocusGroup) WithRole(role Role) []Focus {
	var out []Focus
	for _, f := range g.focuses {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}
