package presentation

import (
	"time"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/recipe"
)

// IngredientDTO represents an ingredient for presentation
type IngredientDTO struct {
	Type       string   `json:"type"`
	UID        string   `json:"uid"`
	Name       string   `json:"name"`
	Mod        string   `json:"mod"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Tooltip    []string `json:"tooltip,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	Hidden     bool     `json:"hidden,omitempty"`
}

// FromDescription converts an ingredient description to a DTO.
func FromDescription(d ingredient.Description, modName string) IngredientDTO {
	return IngredientDTO{
		Type:       d.TypeUID,
		UID:        d.UID,
		Name:       d.DisplayName,
		Mod:        modName,
		Tags:       d.Tags,
		Categories: d.Categories,
		Tooltip:    d.Tooltip,
	}
}

// SlotDTO is one group of alternative ingredients.
type SlotDTO struct {
	Role        string   `json:"role"`
	Ingredients []string `json:"ingredients"`
}

// RecipeDTO represents a recipe with its slots and category catalysts
type RecipeDTO struct {
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Name      string    `json:"name,omitempty"`
	Slots     []SlotDTO `json:"slots"`
	Catalysts []string  `json:"catalysts,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// FromView converts a recipe view to a DTO.
func FromView(v recipe.View, title string, catalysts []ingredient.AnyTyped) RecipeDTO {
	dto := RecipeDTO{
		Category:  v.Category,
		Title:     title,
		Name:      v.Name,
		Slots:     make([]SlotDTO, 0, len(v.Slots)),
		Catalysts: uids(catalysts),
	}
	for _, s := range v.Slots {
		dto.Slots = append(dto.Slots, SlotDTO{Role: s.Role.String(), Ingredients: uids(s.Ingredients)})
	}
	if v.Err != nil {
		dto.Error = v.Err.Error()
	}
	return dto
}

// BookmarkDTO represents a bookmark
type BookmarkDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UID       string    `json:"uid"`
	CreatedAt time.Time `json:"created_at"`
	Dormant   bool      `json:"dormant,omitempty"`
}

// FromBookmark converts a bookmark to a DTO.
func FromBookmark(b *bookmark.Bookmark, dormant bool) BookmarkDTO {
	return BookmarkDTO{
		ID:        b.ID(),
		Type:      b.TypeUID(),
		UID:       b.UID(),
		CreatedAt: b.CreatedAt(),
		Dormant:   dormant,
	}
}

// TypeDTO summarizes an ingredient type or a recipe category.
type TypeDTO struct {
	UID       string   `json:"uid"`
	Title     string   `json:"title,omitempty"`
	Count     int      `json:"count"`
	Catalysts []string `json:"catalysts,omitempty"`
}

func uids(ts []ingredient.AnyTyped) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.UID()
	}
	return out
}
