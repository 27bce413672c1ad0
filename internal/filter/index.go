package filter

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// tokenIndex maps tokens to the ids of the elements carrying them. Lookups
// go through a sorted suffix list, so a term matches anywhere inside a token.
//
// add and remove only touch the postings; commit rebuilds the sorted lists
// once per batch and must run before the next lookup.
type tokenIndex struct {
	postings map[string]map[int]struct{}
	sorted   []string
	suffixes []suffix
	dirty    bool
}

// suffix is one tail of a token. text shares the token's bytes.
type suffix struct {
	text  string
	token string
}

func newTokenIndex() *tokenIndex {
	return &tokenIndex{postings: make(map[string]map[int]struct{})}
}

func (x *tokenIndex) add(token string, id int) {
	ids, ok := x.postings[token]
	if !ok {
		ids = make(map[int]struct{})
		x.postings[token] = ids
		x.dirty = true
	}
	ids[id] = struct{}{}
}

func (x *tokenIndex) remove(token string, id int) {
	ids, ok := x.postings[token]
	if !ok {
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(x.postings, token)
		x.dirty = true
	}
}

// commit rebuilds the sorted token and suffix lists after a batch.
func (x *tokenIndex) commit() {
	if !x.dirty {
		return
	}
	x.sorted = slices.Sorted(maps.Keys(x.postings))
	x.suffixes = x.suffixes[:0:0]
	for _, token := range x.sorted {
		for i := range token {
			x.suffixes = append(x.suffixes, suffix{text: token[i:], token: token})
		}
	}
	slices.SortFunc(x.suffixes, func(a, b suffix) int {
		return cmp.Or(strings.Compare(a.text, b.text), strings.Compare(a.token, b.token))
	})
	x.dirty = false
}

// matchSubstring returns the ids of elements with a token containing text.
func (x *tokenIndex) matchSubstring(text string, into map[int]struct{}) {
	i, _ := slices.BinarySearchFunc(x.suffixes, text, func(s suffix, target string) int {
		return strings.Compare(s.text, target)
	})
	for ; i < len(x.suffixes) && strings.HasPrefix(x.suffixes[i].text, text); i++ {
		for id := range x.postings[x.suffixes[i].token] {
			into[id] = struct{}{}
		}
	}
}

// words returns the single-word tokens of the index.
func (x *tokenIndex) words() []string {
	out := make([]string, 0, len(x.sorted))
	for _, t := range x.sorted {
		if !strings.ContainsFunc(t, unicode.IsSpace) {
			out = append(out, t)
		}
	}
	return out
}

func (x *tokenIndex) len() int { return len(x.sorted) }

// tokenize splits an already folded field value into its searchable tokens:
// the whole value plus every word of letters and digits.
func tokenize(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	tokens := []string{value}
	for _, w := range strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if !slices.Contains(tokens, w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
