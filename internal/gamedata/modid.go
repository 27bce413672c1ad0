package gamedata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModIDHelper maps mod ids to display names.
type ModIDHelper struct {
	names map[string]string
	title cases.Caser
}

// NewModIDHelper creates a helper over declared mod names.
func NewModIDHelper(names map[string]string) *ModIDHelper {
	return &ModIDHelper{names: names, title: cases.Title(language.English)}
}

// ModName returns the declared name of modID, or a title-cased form of the id.
func (h *ModIDHelper) ModName(modID string) string {
	if name, ok := h.names[modID]; ok && name != "" {
		return name
	}
	return h.title.String(strings.ReplaceAll(modID, "_", " "))
}

// ModNameForID returns the mod name of a namespaced id.
func (h *ModIDHelper) ModNameForID(id string) string {
	ns, _ := SplitID(id)
	return h.ModName(ns)
}
