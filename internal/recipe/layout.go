package recipe

import (
	"slices"

	"github.com/zjrosen/almanac/internal/ingredient"
)

// Slot is one group of alternative ingredients with a role.
type Slot struct {
	Role        Role
	Ingredients []ingredient.AnyTyped
}

// Layout is the extracted ingredient slots of one recipe.
type Layout struct {
	Slots []Slot
	keys  map[Role]map[string]bool
}

func newLayout(slots []Slot) *Layout {
	l := &Layout{Slots: slots, keys: make(map[Role]map[string]bool)}
	for _, s := range slots {
		set, ok := l.keys[s.Role]
		if !ok {
			set = make(map[string]bool)
			l.keys[s.Role] = set
		}
		for _, t := range s.Ingredients {
			set[ingredient.Key(t)] = true
		}
	}
	return l
}

// Contains reports whether any slot with the role holds an ingredient with the given key.
func (l *Layout) Contains(role Role, key string) bool {
	return l.keys[role][key]
}

// Ingredients returns every ingredient in slots with the given role.
func (l *Layout) Ingredients(role Role) []ingredient.AnyTyped {
	var out []ingredient.AnyTyped
	for _, s := range l.Slots {
		if s.Role == role {
			out = append(out, s.Ingredients...)
		}
	}
	return out
}

// LayoutBuilder is handed to Category.SetRecipe.
type LayoutBuilder struct {
	manager *ingredient.Manager
	slots   []*SlotBuilder
}

func NewLayoutBuilder(m *ingredient.Manager) *LayoutBuilder {
	return &LayoutBuilder{manager: m}
}

// Manager returns the ingredient manager used to create typed ingredients.
func (b *LayoutBuilder) Manager() *ingredient.Manager { return b.manager }

// AddSlot starts a new slot.
func (b *LayoutBuilder) AddSlot(role Role) *SlotBuilder {
	s := &SlotBuilder{builder: b, slot: Slot{Role: role}}
	b.slots = append(b.slots, s)
	return s
}

// Build returns the layout described so far.
func (b *LayoutBuilder) Build() *Layout {
	slots := make([]Slot, 0, len(b.slots))
	for _, s := range b.slots {
		slots = append(slots, Slot{Role: s.slot.Role, Ingredients: slices.Clone(s.slot.Ingredients)})
	}
	return newLayout(slots)
}

// SlotBuilder adds ingredients to one slot.
type SlotBuilder struct {
	builder *LayoutBuilder
	slot    Slot
}

// AddTyped appends already typed ingredients.
func (s *SlotBuilder) AddTyped(typed ...ingredient.AnyTyped) *SlotBuilder {
	for _, t := range typed {
		if t != nil {
			s.slot.Ingredients = append(s.slot.Ingredients, t)
		}
	}
	return s
}

// AddIngredients appends raw values of type t, skipping invalid ones.
func AddIngredients[V any](s *SlotBuilder, t *ingredient.Type[V], values ...V) *SlotBuilder {
	for _, v := range values {
		if typed, ok := ingredient.CreateTyped(s.builder.manager, t, v); ok {
			s.slot.Ingredients = append(s.slot.Ingredients, typed)
		}
	}
	return s
}
