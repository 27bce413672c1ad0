package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zjrosen/almanac/internal/cachemanager"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
)

// Option configures a Filter.
type Option func(*Filter)

// WithConfig sets search modes, sort order and visibility rules.
func WithConfig(cfg Config) Option {
	return func(f *Filter) { f.cfg = cfg }
}

// WithFolder sets the case folding applied to indexed values and query terms.
func WithFolder(fold func(string) string) Option {
	return func(f *Filter) { f.fold = fold }
}

// WithCompare sets the string ordering used when sorting by name or mod.
func WithCompare(compare func(a, b string) int) Option {
	return func(f *Filter) { f.compare = compare }
}

// WithModNames resolves mod ids to display names for @ searches.
func WithModNames(resolve func(modID string) string) Option {
	return func(f *Filter) { f.modNames = resolve }
}

// WithResultCache replaces the query result cache.
func WithResultCache(c cachemanager.CacheManager[string, []int]) Option {
	return func(f *Filter) { f.results = c }
}

// Filter is the searchable list of every known ingredient. It follows
// the manager's runtime changes through a listener.
type Filter struct {
	manager  *ingredient.Manager
	cfg      Config
	fold     func(string) string
	compare  func(a, b string) int
	modNames func(string) string

	elements    []*Element // by created index, nil once removed
	byKey       map[string]int
	indexes     map[Kind]*tokenIndex
	blacklist   map[string]bool
	nextCreated int
	live        int

	results    cachemanager.CacheManager[string, []int]
	unregister func()
}

var _ ingredient.Listener = (*Filter)(nil)

// New indexes every ingredient currently known to m and keeps following m
// until ctx is done or Close is called.
func New(ctx context.Context, m *ingredient.Manager, opts ...Option) (*Filter, error) {
	f := &Filter{
		manager:   m,
		cfg:       DefaultConfig(),
		fold:      strings.ToLower,
		compare:   strings.Compare,
		byKey:     make(map[string]int),
		indexes:   make(map[Kind]*tokenIndex),
		blacklist: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cfg.Modes == nil {
		f.cfg.Modes = DefaultModes()
	}
	if err := ValidatePatterns(f.cfg.HidePatterns); err != nil {
		return nil, err
	}
	for _, uid := range f.cfg.Blacklist {
		f.blacklist[uid] = true
	}
	if f.results == nil {
		f.results = cachemanager.NewInMemoryCacheManager[string, []int]("search", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	}
	for _, k := range append([]Kind{KindName}, searchableKinds...) {
		f.indexes[k] = newTokenIndex()
	}

	for _, t := range m.AllTyped() {
		f.add(t)
	}
	f.commit()
	f.resort()
	f.unregister = m.RegisterListener(ctx, f)

	log.Info(log.CatFilter, "Ingredient filter built", "elements", f.live, "name_tokens", f.indexes[KindName].len())
	return f, nil
}

// Close stops following the manager and drops cached results.
func (f *Filter) Close() {
	if f.unregister != nil {
		f.unregister()
		f.unregister = nil
	}
	_ = f.results.Flush(context.Background())
}

// Len returns the number of indexed ingredients, hidden ones included.
func (f *Filter) Len() int { return f.live }

// Config returns the current configuration.
func (f *Filter) Config() Config {
	cfg := f.cfg
	cfg.Blacklist = f.Blacklist()
	return cfg
}

// IngredientsAdded indexes newly added ingredients.
func (f *Filter) IngredientsAdded(e ingredient.Event) {
	for _, t := range e.Ingredients {
		f.add(t)
	}
	f.changed("added", len(e.Ingredients))
}

// IngredientsRemoved drops removed ingredients from the index.
func (f *Filter) IngredientsRemoved(e ingredient.Event) {
	for _, t := range e.Ingredients {
		f.remove(t)
	}
	f.changed("removed", len(e.Ingredients))
}

func (f *Filter) changed(what string, n int) {
	f.commit()
	f.resort()
	f.flush()
	log.Debug(log.CatFilter, "Ingredient filter updated", "change", what, "count", n, "elements", f.live)
}

func (f *Filter) commit() {
	for _, x := range f.indexes {
		x.commit()
	}
}

func (f *Filter) flush() {
	if err := f.results.Flush(context.Background()); err != nil {
		log.WarnErr(log.CatFilter, "Flushing search results failed", err)
	}
}

func (f *Filter) add(t ingredient.AnyTyped) {
	key := ingredient.Key(t)
	if _, ok := f.byKey[key]; ok {
		return
	}
	e, err := f.newElement(t)
	if err != nil {
		log.WarnErr(log.CatFilter, "Skipping ingredient without description", err, "ingredient", key)
		return
	}
	e.Visible = f.visible(t.UID())
	f.elements = append(f.elements, e)
	f.byKey[key] = e.CreatedIndex
	for k, x := range f.indexes {
		for _, tok := range e.tokens(k) {
			x.add(tok, e.CreatedIndex)
		}
	}
	f.live++
}

func (f *Filter) remove(t ingredient.AnyTyped) {
	key := ingredient.Key(t)
	id, ok := f.byKey[key]
	if !ok {
		return
	}
	e := f.elements[id]
	for k, x := range f.indexes {
		for _, tok := range e.tokens(k) {
			x.remove(tok, id)
		}
	}
	f.elements[id] = nil
	delete(f.byKey, key)
	f.live--
}

// Element returns the list element of t.
func (f *Filter) Element(t ingredient.AnyTyped) (Element, bool) {
	id, ok := f.byKey[ingredient.Key(t)]
	if !ok {
		return Element{}, false
	}
	return *f.elements[id], true
}

// Elements returns every element, hidden ones included, in the configured sort order.
func (f *Filter) Elements() []Element {
	out := make([]Element, 0, f.live)
	for _, e := range f.elements {
		if e != nil {
			out = append(out, *e)
		}
	}
	slices.SortFunc(out, func(a, b Element) int { return a.SortedIndex - b.SortedIndex })
	return out
}

// Search returns the visible ingredients matching query. Hidden ingredients
// are included while edit mode is on.
func (f *Filter) Search(query string) ([]ingredient.AnyTyped, error) {
	ctx := context.Background()
	key := strings.Join(strings.Fields(query), " ")

	ids, ok := f.results.Get(ctx, key)
	if !ok {
		q, err := Parse(key, f.cfg.Modes)
		if err != nil {
			return nil, fmt.Errorf("parsing query %q: %w", query, err)
		}
		ids = f.evaluate(q)
		f.results.Set(ctx, key, ids, cachemanager.NoExpiration)
	}

	out := make([]ingredient.AnyTyped, len(ids))
	for i, id := range ids {
		out[i] = f.elements[id].Ingredient
	}
	return out, nil
}

func (f *Filter) evaluate(q *Query) []int {
	var set map[int]struct{}
	if q.IsEmpty() {
		set = f.allIDs()
	} else {
		set = make(map[int]struct{})
		for _, group := range q.Alternatives {
			maps.Copy(set, f.evaluateGroup(group))
		}
	}

	ids := make([]int, 0, len(set))
	for id := range set {
		if f.cfg.EditMode || f.elements[id].Visible {
			ids = append(ids, id)
		}
	}

	order := f.cfg.Sort
	if q.Sort != nil {
		order = *q.Sort
	}
	if order == f.cfg.Sort {
		slices.SortFunc(ids, func(a, b int) int {
			return f.elements[a].SortedIndex - f.elements[b].SortedIndex
		})
	} else {
		cmp := f.comparator(order)
		slices.SortFunc(ids, func(a, b int) int { return cmp(*f.elements[a], *f.elements[b]) })
	}
	return ids
}

func (f *Filter) evaluateGroup(terms []Term) map[int]struct{} {
	var set map[int]struct{}
	for _, term := range terms {
		if term.Negate {
			continue
		}
		matched := f.match(term)
		if set == nil {
			set = matched
			continue
		}
		maps.DeleteFunc(set, func(id int, _ struct{}) bool {
			_, ok := matched[id]
			return !ok
		})
	}
	if set == nil {
		set = f.allIDs()
	}
	for _, term := range terms {
		if !term.Negate {
			continue
		}
		for id := range f.match(term) {
			delete(set, id)
		}
	}
	return set
}

// match returns the ids of elements matching term, ignoring negation.
func (f *Filter) match(term Term) map[int]struct{} {
	text := f.fold(term.Text)
	out := make(map[int]struct{})
	for _, k := range f.kindsFor(term) {
		if strings.ContainsFunc(text, unicode.IsSpace) {
			f.scanContains(k, text, out)
			continue
		}
		f.indexes[k].matchSubstring(text, out)
	}
	return out
}

// scanContains matches multi-word terms against whole field values.
func (f *Filter) scanContains(k Kind, text string, into map[int]struct{}) {
	for _, e := range f.elements {
		if e == nil {
			continue
		}
		if slices.ContainsFunc(e.fields[k], func(v string) bool { return strings.Contains(v, text) }) {
			into[e.CreatedIndex] = struct{}{}
		}
	}
}

func (f *Filter) kindsFor(term Term) []Kind {
	if term.Prefixed {
		return []Kind{term.Kind}
	}
	kinds := []Kind{KindName}
	for _, k := range searchableKinds {
		if f.cfg.Modes.of(k) == ModeEnabled {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (f *Filter) allIDs() map[int]struct{} {
	out := make(map[int]struct{}, f.live)
	for _, e := range f.elements {
		if e != nil {
			out[e.CreatedIndex] = struct{}{}
		}
	}
	return out
}

// resort recomputes every SortedIndex. Mutations call it so searches only read.
func (f *Filter) resort() {
	live := make([]*Element, 0, f.live)
	for _, e := range f.elements {
		if e != nil {
			live = append(live, e)
		}
	}
	cmp := f.comparator(f.cfg.Sort)
	slices.SortStableFunc(live, func(a, b *Element) int { return cmp(*a, *b) })
	for i, e := range live {
		e.SortedIndex = i
	}
}

func (f *Filter) comparator(order SortOrder) func(a, b Element) int {
	return func(a, b Element) int {
		c := 0
		switch order.Field {
		case SortName:
			c = f.compare(a.Description.DisplayName, b.Description.DisplayName)
		case SortMod:
			c = f.compare(a.ModName, b.ModName)
		}
		if c == 0 {
			c = a.CreatedIndex - b.CreatedIndex
		}
		if order.Descending {
			c = -c
		}
		return c
	}
}

func (f *Filter) modName(modID string) string {
	if f.modNames != nil {
		if name := f.modNames(modID); name != "" {
			return name
		}
	}
	return modID
}

// visible applies the blacklist and hide patterns to an ingredient uid.
func (f *Filter) visible(uid string) bool {
	if f.blacklist[uid] {
		return false
	}
	for _, p := range f.cfg.HidePatterns {
		if ok, _ := doublestar.Match(p, uid); ok {
			return false
		}
	}
	return true
}

func (f *Filter) refreshVisibility() {
	for _, e := range f.elements {
		if e != nil {
			e.Visible = f.visible(e.Ingredient.UID())
		}
	}
	f.flush()
}

// IsVisible reports whether t is shown outside edit mode.
func (f *Filter) IsVisible(t ingredient.AnyTyped) bool {
	id, ok := f.byKey[ingredient.Key(t)]
	return ok && f.elements[id].Visible
}

// EditMode reports whether hidden ingredients are listed.
func (f *Filter) EditMode() bool { return f.cfg.EditMode }

// SetEditMode toggles listing of hidden ingredients.
func (f *Filter) SetEditMode(on bool) error {
	if err := mainthread.Assert(f.manager.MainThread(), "set edit mode"); err != nil {
		return err
	}
	f.cfg.EditMode = on
	f.flush()
	return nil
}

// Hide adds the uid of t to the blacklist.
func (f *Filter) Hide(t ingredient.AnyTyped) error {
	return f.setBlacklisted(t, true)
}

// Unhide removes the uid of t from the blacklist. Hide patterns still apply.
func (f *Filter) Unhide(t ingredient.AnyTyped) error {
	return f.setBlacklisted(t, false)
}

func (f *Filter) setBlacklisted(t ingredient.AnyTyped, hidden bool) error {
	if err := mainthread.Assert(f.manager.MainThread(), "change blacklist"); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: nil ingredient", ingredient.ErrPrecondition)
	}
	if hidden {
		f.blacklist[t.UID()] = true
	} else {
		delete(f.blacklist, t.UID())
	}
	f.refreshVisibility()
	return nil
}

// Blacklist returns the blacklisted uids, sorted.
func (f *Filter) Blacklist() []string {
	return slices.Sorted(maps.Keys(f.blacklist))
}

// SetHidePatterns replaces the hide patterns.
func (f *Filter) SetHidePatterns(patterns []string) error {
	if err := mainthread.Assert(f.manager.MainThread(), "set hide patterns"); err != nil {
		return err
	}
	if err := ValidatePatterns(patterns); err != nil {
		return err
	}
	f.cfg.HidePatterns = slices.Clone(patterns)
	f.refreshVisibility()
	return nil
}

// SetSort changes the configured sort order.
func (f *Filter) SetSort(order SortOrder) {
	f.cfg.Sort = order
	f.resort()
	f.flush()
}
