package filter

import (
	"github.com/zjrosen/almanac/internal/ingredient"
)

// Element is one entry of the ingredient list.
type Element struct {
	Ingredient  ingredient.AnyTyped
	Description ingredient.Description
	ModName     string
	// CreatedIndex is the position at which the ingredient joined the list.
	CreatedIndex int
	// SortedIndex is the position under the configured sort order.
	SortedIndex int
	Visible     bool

	fields map[Kind][]string
}

func (f *Filter) newElement(t ingredient.AnyTyped) (*Element, error) {
	desc, err := f.manager.Describe(t)
	if err != nil {
		return nil, err
	}
	e := &Element{
		Ingredient:   t,
		Description:  desc,
		ModName:      f.modName(desc.ModID),
		CreatedIndex: f.nextCreated,
		fields:       make(map[Kind][]string, len(searchableKinds)+1),
	}
	f.nextCreated++

	tooltip := append(append([]string{}, desc.Tooltip...), f.manager.Aliases(t)...)
	e.setField(f.fold, KindName, desc.DisplayName)
	e.setField(f.fold, KindMod, desc.ModID, e.ModName)
	e.setField(f.fold, KindTooltip, tooltip...)
	e.setField(f.fold, KindTag, desc.Tags...)
	e.setField(f.fold, KindCategory, desc.Categories...)
	e.setField(f.fold, KindResource, desc.ResourceID)
	return e, nil
}

func (e *Element) setField(fold func(string) string, k Kind, values ...string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		e.fields[k] = append(e.fields[k], fold(v))
	}
}

// tokens returns the distinct tokens of every value of field k.
func (e *Element) tokens(k Kind) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range e.fields[k] {
		for _, tok := range tokenize(v) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}
