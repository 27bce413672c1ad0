package vanilla

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zjrosen/almanac/internal/gamedata"
	"github.com/zjrosen/almanac/internal/ingredient"
)

// Translator resolves lang keys.
type Translator interface {
	Translate(key string) string
}

type catalogSource interface {
	Catalog() *gamedata.Catalog
}

// ItemHelper implements ingredient.Helper for item stacks.
type ItemHelper struct {
	source     catalogSource
	subtypes   *ingredient.SubtypeRegistry
	translator Translator
}

var _ ingredient.Helper[ItemStack] = (*ItemHelper)(nil)

func (h *ItemHelper) UID(s ItemStack, ctx ingredient.UIDContext) string {
	return ingredient.SubtypeUID(h.subtypes, ItemType, s, ctx)
}

func (h *ItemHelper) DisplayName(s ItemStack) string {
	if s.CustomName != "" {
		return s.CustomName
	}
	c := h.source.Catalog()
	if s.Potion != "" {
		if p, ok := c.Potion(s.Potion); ok && p.Name != "" {
			return p.Name
		}
	}
	def, _ := c.Item(s.ID)
	return translateName(h.translator, "item", s.ID, def.Name)
}

func (h *ItemHelper) ModID(s ItemStack) string {
	ns, _ := gamedata.SplitID(s.ID)
	return ns
}

func (h *ItemHelper) ResourceID(s ItemStack) string { return s.ID }

func (h *ItemHelper) Tags(s ItemStack) []string {
	def, _ := h.source.Catalog().Item(s.ID)
	return def.Tags
}

func (h *ItemHelper) Categories(s ItemStack) []string {
	def, ok := h.source.Catalog().Item(s.ID)
	if !ok || def.Tab == "" {
		return nil
	}
	return []string{def.Tab}
}

func (h *ItemHelper) IsValid(s ItemStack) bool {
	return s.ID != "" && s.Count > 0 && s.Damage >= 0
}

// IsOnServer reports whether the item and every component it references are
// known to the loaded data packs.
func (h *ItemHelper) IsOnServer(s ItemStack) bool {
	c := h.source.Catalog()
	if _, ok := c.Item(s.ID); !ok {
		return false
	}
	if s.Potion != "" {
		if _, ok := c.Potion(s.Potion); !ok {
			return false
		}
	}
	for _, e := range s.Enchantments {
		if _, ok := c.Enchantment(e.ID); !ok {
			return false
		}
	}
	return true
}

func (h *ItemHelper) Normalize(s ItemStack) ItemStack {
	s = s.clone()
	s.Count = 1
	return s
}

func (h *ItemHelper) ErrorInfo(s ItemStack) string { return s.String() }

// ItemRenderer produces tooltip lines for item stacks.
type ItemRenderer struct {
	source     catalogSource
	translator Translator
	title      cases.Caser
}

func newItemRenderer(source catalogSource, tr Translator) *ItemRenderer {
	return &ItemRenderer{source: source, translator: tr, title: cases.Title(language.English)}
}

func (r *ItemRenderer) Tooltip(s ItemStack) []string {
	c := r.source.Catalog()
	var lines []string
	for _, e := range s.Enchantments {
		name := e.ID
		if def, ok := c.Enchantment(e.ID); ok {
			name = translateName(r.translator, "enchantment", e.ID, def.Name)
		}
		lines = append(lines, fmt.Sprintf("%s %s", name, roman(e.Level)))
	}
	if s.Potion != "" {
		if p, ok := c.Potion(s.Potion); ok {
			for _, e := range p.Effects {
				lines = append(lines, fmt.Sprintf("%s (%s)", r.effectName(e.ID), ticks(e.Duration)))
			}
		}
	}
	def, ok := c.Item(s.ID)
	if ok && def.Damageable() {
		lines = append(lines, fmt.Sprintf("Durability: %d / %d", def.MaxDamage-s.Damage, def.MaxDamage))
	}
	return append(lines, def.Tooltip...)
}

func (r *ItemRenderer) effectName(id string) string {
	_, path := gamedata.SplitID(id)
	return r.title.String(strings.ReplaceAll(path, "_", " "))
}

// FluidHelper implements ingredient.Helper for fluid stacks.
type FluidHelper struct {
	source     catalogSource
	translator Translator
}

var _ ingredient.Helper[FluidStack] = (*FluidHelper)(nil)

func (h *FluidHelper) UID(s FluidStack, _ ingredient.UIDContext) string { return s.ID }

func (h *FluidHelper) DisplayName(s FluidStack) string {
	def, _ := h.source.Catalog().Fluid(s.ID)
	return translateName(h.translator, "block", s.ID, def.Name)
}

func (h *FluidHelper) ModID(s FluidStack) string {
	ns, _ := gamedata.SplitID(s.ID)
	return ns
}

func (h *FluidHelper) ResourceID(s FluidStack) string { return s.ID }

func (h *FluidHelper) Tags(s FluidStack) []string {
	def, _ := h.source.Catalog().Fluid(s.ID)
	return def.Tags
}

func (h *FluidHelper) Categories(FluidStack) []string { return []string{"fluids"} }

func (h *FluidHelper) IsValid(s FluidStack) bool { return s.ID != "" && s.Amount > 0 }

func (h *FluidHelper) IsOnServer(s FluidStack) bool {
	_, ok := h.source.Catalog().Fluid(s.ID)
	return ok
}

func (h *FluidHelper) Normalize(s FluidStack) FluidStack {
	s.Amount = BucketAmount
	return s
}

func (h *FluidHelper) ErrorInfo(s FluidStack) string { return s.String() }

// FluidRenderer produces tooltip lines for fluid stacks.
type FluidRenderer struct{}

func (FluidRenderer) Tooltip(s FluidStack) []string {
	return []string{fmt.Sprintf("%d mB", s.Amount)}
}

// translateName resolves "<kind>.<namespace>.<path>", falling back to the
// pack name and then to the id.
func translateName(tr Translator, kind, id, fallback string) string {
	ns, path := gamedata.SplitID(id)
	key := kind + "." + ns + "." + path
	if tr != nil {
		if name := tr.Translate(key); name != key {
			return name
		}
	}
	if fallback != "" {
		return fallback
	}
	return id
}

var romanNumerals = []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

func roman(level int) string {
	if level > 0 && level < len(romanNumerals) {
		return romanNumerals[level]
	}
	return fmt.Sprint(level)
}

// ticks formats a duration in game ticks as m:ss.
func ticks(t int) string {
	seconds := t / 20
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
