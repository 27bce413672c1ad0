package filter

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultSuggestions is the number of suggestions returned when limit is not positive.
const DefaultSuggestions = 5

type suggestion struct {
	word     string
	distance int
}

// Suggest returns known words close to the terms of query that match nothing,
// nearest first. It returns nil when every term matches or the query is invalid.
func (f *Filter) Suggest(query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	q, err := Parse(query, f.cfg.Modes)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var found []suggestion
	for _, group := range q.Alternatives {
		for _, term := range group {
			if term.Negate || len(f.match(term)) > 0 {
				continue
			}
			text := f.fold(term.Text)
			maxDistance := max(1, utf8.RuneCountInString(text)/3)
			for _, k := range f.kindsFor(term) {
				for _, w := range f.indexes[k].words() {
					if seen[w] {
						continue
					}
					if d := levenshtein.ComputeDistance(text, w); d <= maxDistance {
						seen[w] = true
						found = append(found, suggestion{word: w, distance: d})
					}
				}
			}
		}
	}

	slices.SortFunc(found, func(a, b suggestion) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.word, b.word))
	})
	var out []string
	for _, s := range found[:min(limit, len(found))] {
		out = append(out, s.word)
	}
	return out
}
