package ingredient

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/zjrosen/almanac/internal/cachemanager"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
)

// Translator resolves alias keys for the active locale and orders the results.
type Translator interface {
	Translate(key string) string
	Locale() string
	Compare(a, b string) int
}

// Observer receives counts of runtime changes, for metrics.
type Observer interface {
	IngredientsChanged(typeUID string, added, removed, rejected int)
}

// Option configures a Manager.
type Option func(*Manager)

// WithMainThread sets the checker runtime mutations are asserted against.
func WithMainThread(c mainthread.Checker) Option {
	return func(m *Manager) { m.checker = c }
}

// WithTranslator sets the translator used by Aliases.
func WithTranslator(t Translator) Option {
	return func(m *Manager) { m.translator = t }
}

// WithAliasCache replaces the alias cache.
func WithAliasCache(c cachemanager.CacheManager[string, []string]) Option {
	return func(m *Manager) { m.aliasStore = c }
}

// WithObserver registers an observer for runtime changes.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// Manager owns every Info and is the single entry point for reading and
// mutating the ingredient set.
type Manager struct {
	types     *TypeRegistry
	subtypes  *SubtypeRegistry
	infos     map[string]infoAny
	listeners []*listenerEntry

	checker    mainthread.Checker
	translator Translator
	observer   Observer

	aliasStore cachemanager.CacheManager[string, []string]
	aliases    *cachemanager.ReadThroughCache[string, []string, AnyTyped]
}

func newManager(types *TypeRegistry, subtypes *SubtypeRegistry, infos map[string]infoAny, opts ...Option) *Manager {
	m := &Manager{
		types:      types,
		subtypes:   subtypes,
		infos:      infos,
		checker:    mainthread.Any{},
		translator: identityTranslator{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.aliasStore == nil {
		m.aliasStore = cachemanager.NewInMemoryCacheManager[string, []string]("aliases", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	}
	m.aliases = cachemanager.NewReadThroughCache(m.aliasStore, m.translateAliases, false)
	return m
}

// MainThread returns the checker guarding structural mutation.
func (m *Manager) MainThread() mainthread.Checker { return m.checker }

// Subtypes returns the subtype interpreter registry.
func (m *Manager) Subtypes() *SubtypeRegistry { return m.subtypes }

// RegisteredTypes returns every type in registration order.
func (m *Manager) RegisteredTypes() []AnyType { return m.types.All() }

// TypeForUID finds a registered type by its uid.
func (m *Manager) TypeForUID(uid string) (AnyType, bool) { return m.types.Lookup(uid) }

// TypeOf resolves the type of a raw value by probing registered types in order.
func (m *Manager) TypeOf(v any) (AnyType, error) { return m.types.Probe(v) }

// HelperFor resolves the type-erased helper of a raw value.
func (m *Manager) HelperFor(v any) (AnyHelper, error) {
	t, err := m.types.Probe(v)
	if err != nil {
		return nil, err
	}
	return m.infos[t.UID()].erased(), nil
}

// HelperForType returns the type-erased helper of a registered type.
func (m *Manager) HelperForType(t AnyType) (AnyHelper, error) {
	if isNil(t) {
		return nil, fmt.Errorf("%w: nil ingredient type", ErrPrecondition)
	}
	info, ok := m.infos[t.UID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIngredientType, t.UID())
	}
	return info.erased(), nil
}

// Count returns the number of known values of a type, or 0 for unknown or
// nil types.
func (m *Manager) Count(t AnyType) int {
	if isNil(t) {
		return 0
	}
	if info, ok := m.infos[t.UID()]; ok {
		return info.Len()
	}
	return 0
}

// AllTyped returns every known ingredient, types in registration order.
func (m *Manager) AllTyped() []AnyTyped {
	var out []AnyTyped
	for _, t := range m.types.All() {
		out = append(out, m.infos[t.UID()].allTyped()...)
	}
	return out
}

// CreateTypedAny checks the type of v and wraps it when valid.
func (m *Manager) CreateTypedAny(v any) (AnyTyped, bool) {
	t, err := m.types.Probe(v)
	if err != nil {
		return nil, false
	}
	return m.infos[t.UID()].createAny(v)
}

// TypedByUIDAny resolves a known ingredient from a type uid and ingredient uid.
func (m *Manager) TypedByUIDAny(typeUID, uid string) (AnyTyped, bool) {
	info, ok := m.infos[typeUID]
	if !ok {
		return nil, false
	}
	return info.lookupAny(uid)
}

// Describe flattens a typed ingredient through its helper and renderer.
func (m *Manager) Describe(t AnyTyped) (Description, error) {
	if t == nil {
		return Description{}, fmt.Errorf("%w: nil ingredient", ErrPrecondition)
	}
	helper, err := m.HelperForType(t.IngredientType())
	if err != nil {
		return Description{}, err
	}
	return helper.Describe(t.Raw())
}

// Aliases returns the translated alias terms of t sorted case-insensitively.
func (m *Manager) Aliases(t AnyTyped) []string {
	if t == nil {
		return nil
	}
	ctx := context.Background()
	locale := m.translator.Locale()
	key := strings.Join([]string{locale, t.IngredientType().UID(), t.UID()}, "|")
	aliases, err := m.aliases.Get(ctx, key, t, cachemanager.NoExpiration)
	if err != nil {
		log.WarnErr(log.CatIngredients, "Alias lookup failed", err, "ingredient", Key(t))
		return nil
	}
	return aliases
}

// FlushAliases drops every memoized alias list. Entries are keyed by locale,
// so this only reclaims memory after a locale switch.
func (m *Manager) FlushAliases() {
	if err := m.aliases.Invalidate(context.Background()); err != nil {
		log.WarnErr(log.CatCache, "Alias cache flush failed", err)
	}
}

func (m *Manager) translateAliases(_ context.Context, t AnyTyped) ([]string, error) {
	info, ok := m.infos[t.IngredientType().UID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIngredientType, t.IngredientType().UID())
	}
	keys := info.aliasKeys(t.UID())
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.translator.Translate(k))
	}
	slices.SortStableFunc(out, m.translator.Compare)
	return out, nil
}

// RegisterListener subscribes l until ctx is done or the returned func is called.
func (m *Manager) RegisterListener(ctx context.Context, l Listener) (unregister func()) {
	entry := &listenerEntry{ctx: ctx, listener: l}
	m.listeners = append(m.listeners, entry)
	return func() { entry.removed = true }
}

// ListenerCount returns the number of listeners that are still live.
func (m *Manager) ListenerCount() int {
	n := 0
	for _, e := range m.listeners {
		if e.live() {
			n++
		}
	}
	return n
}

func (m *Manager) hasListeners() bool {
	return slices.ContainsFunc(m.listeners, (*listenerEntry).live)
}

func (m *Manager) notify(added bool, e Event) {
	live := m.listeners[:0:0]
	for _, entry := range m.listeners {
		if entry.live() {
			live = append(live, entry)
		}
	}
	m.listeners = live
	for _, entry := range live {
		// a listener earlier in the fan-out may have cancelled a later one
		if !entry.live() {
			continue
		}
		if added {
			entry.listener.IngredientsAdded(e)
		} else {
			entry.listener.IngredientsRemoved(e)
		}
	}
}

func (m *Manager) observe(typeUID string, added, removed, rejected int) {
	if m.observer != nil {
		m.observer.IngredientsChanged(typeUID, added, removed, rejected)
	}
}

// AllIngredients returns a copy of the current values of t in insertion order.
func AllIngredients[V any](m *Manager, t *Type[V]) ([]V, error) {
	info, err := managedInfo(m, t)
	if err != nil {
		return nil, err
	}
	return slices.Clone(info.All()), nil
}

// HelperOf returns the helper registered for t.
func HelperOf[V any](m *Manager, t *Type[V]) (Helper[V], error) {
	info, err := managedInfo(m, t)
	if err != nil {
		return nil, err
	}
	return info.helper, nil
}

// RendererOf returns the renderer registered for t, which may be nil.
func RendererOf[V any](m *Manager, t *Type[V]) (Renderer[V], error) {
	info, err := managedInfo(m, t)
	if err != nil {
		return nil, err
	}
	return info.renderer, nil
}

// AddAtRuntime validates values and adds the ones not yet known, notifying
// listeners once with the values that were actually added.
func AddAtRuntime[V any](m *Manager, t *Type[V], values []V) error {
	if m == nil {
		return fmt.Errorf("%w: nil manager", ErrPrecondition)
	}
	if err := mainthread.Assert(m.checker, "add ingredients"); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: no ingredients to add", ErrPrecondition)
	}
	info, err := managedInfo(m, t)
	if err != nil {
		return err
	}

	valid := validValues(info, values)
	added := info.add(valid)
	log.Info(log.CatIngredients, "Ingredients added at runtime", "type", t.UID(), "requested", len(values), "added", len(added))
	m.observe(t.UID(), len(added), 0, len(values)-len(valid))

	if len(added) == 0 || !m.hasListeners() {
		return nil
	}
	m.notify(true, Event{Type: t, Helper: info.erased(), Ingredients: info.typedAll(added)})
	return nil
}

// RemoveAtRuntime removes the known values among values, notifying listeners
// once with the values that were actually removed.
func RemoveAtRuntime[V any](m *Manager, t *Type[V], values []V) error {
	if m == nil {
		return fmt.Errorf("%w: nil manager", ErrPrecondition)
	}
	if err := mainthread.Assert(m.checker, "remove ingredients"); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: no ingredients to remove", ErrPrecondition)
	}
	info, err := managedInfo(m, t)
	if err != nil {
		return err
	}

	removed := info.remove(values)
	log.Info(log.CatIngredients, "Ingredients removed at runtime", "type", t.UID(), "requested", len(values), "removed", len(removed))
	m.observe(t.UID(), 0, len(removed), 0)

	if len(removed) == 0 || !m.hasListeners() {
		return nil
	}
	m.notify(false, Event{Type: t, Helper: info.erased(), Ingredients: info.typedAll(removed)})
	return nil
}

// CreateTyped wraps v when it is a valid value of a registered type.
func CreateTyped[V any](m *Manager, t *Type[V], v V) (Typed[V], bool) {
	info, err := managedInfo(m, t)
	if err != nil || !info.helper.IsValid(v) {
		return Typed[V]{}, false
	}
	return info.typed(v), true
}

// Normalize re-derives the canonical value and uid of typed.
func Normalize[V any](m *Manager, typed Typed[V]) (Typed[V], error) {
	if typed.typ == nil {
		return Typed[V]{}, fmt.Errorf("%w: zero typed ingredient", ErrPrecondition)
	}
	info, err := managedInfo(m, typed.typ)
	if err != nil {
		return Typed[V]{}, err
	}
	normalized := info.helper.Normalize(typed.value)
	if !info.helper.IsValid(normalized) {
		return Typed[V]{}, fmt.Errorf("%w: normalized ingredient is invalid: %s", ErrPrecondition, info.helper.ErrorInfo(normalized))
	}
	return info.typed(normalized), nil
}

// TypedByUID returns the known value of t with the given uid.
func TypedByUID[V any](m *Manager, t *Type[V], uid string) (Typed[V], bool) {
	info, err := managedInfo(m, t)
	if err != nil {
		return Typed[V]{}, false
	}
	v, ok := info.ByUID(uid)
	if !ok {
		return Typed[V]{}, false
	}
	return Typed[V]{typ: t, value: v, uid: uid}, true
}

// CreateClickable wraps v with its screen area, optionally normalizing it first.
func CreateClickable[V any](m *Manager, t *Type[V], v V, area Rect, normalize bool) (Clickable[V], bool) {
	typed, ok := CreateTyped(m, t, v)
	if !ok {
		return Clickable[V]{}, false
	}
	if normalize {
		n, err := Normalize(m, typed)
		if err != nil {
			return Clickable[V]{}, false
		}
		typed = n
	}
	return Clickable[V]{Typed: typed, Area: area}, true
}

func managedInfo[V any](m *Manager, t *Type[V]) (*Info[V], error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil manager", ErrPrecondition)
	}
	return registeredInfo(m.infos, t)
}

type identityTranslator struct{}

func (identityTranslator) Translate(key string) string { return key }
func (identityTranslator) Locale() string              { return "" }
func (identityTranslator) Compare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
