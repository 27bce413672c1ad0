package bookmark

import (
	"context"
	"fmt"
	"slices"

	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/mainthread"
)

// List is the in-memory bookmark list. Bookmarks whose ingredient is not
// currently registered stay stored but dormant, and come back when the
// ingredient is added again.
type List struct {
	repo    Repository
	manager *ingredient.Manager

	order   []*Bookmark
	active  map[string]ingredient.AnyTyped
	byKey   map[string]*Bookmark
	dormant map[string]bool

	unregister func()
}

// NewList loads the stored bookmarks and follows ingredient changes of m
// until ctx is done or Close is called.
func NewList(ctx context.Context, repo Repository, m *ingredient.Manager) (*List, error) {
	stored, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	l := &List{
		repo:    repo,
		manager: m,
		active:  make(map[string]ingredient.AnyTyped),
		byKey:   make(map[string]*Bookmark),
		dormant: make(map[string]bool),
	}
	for _, b := range stored {
		if _, dup := l.byKey[b.Key()]; dup {
			continue
		}
		l.order = append(l.order, b)
		l.byKey[b.Key()] = b
		if typed, ok := m.TypedByUIDAny(b.TypeUID(), b.UID()); ok {
			l.active[b.Key()] = typed
		} else {
			l.dormant[b.Key()] = true
			log.Debug(log.CatBookmarks, "Bookmarked ingredient not registered", "type", b.TypeUID(), "uid", b.UID())
		}
	}
	l.unregister = m.RegisterListener(ctx, l)
	log.Info(log.CatBookmarks, "Bookmarks loaded", "count", len(l.order), "dormant", len(l.dormant))
	return l, nil
}

// Close stops following ingredient changes.
func (l *List) Close() {
	if l.unregister != nil {
		l.unregister()
		l.unregister = nil
	}
}

// Add appends typed to the list and persists it.
func (l *List) Add(typed ingredient.AnyTyped) (*Bookmark, error) {
	if err := mainthread.Assert(l.manager.MainThread(), "bookmark.Add"); err != nil {
		return nil, err
	}
	if typed == nil {
		return nil, fmt.Errorf("%w: nil ingredient", ingredient.ErrPrecondition)
	}
	key := ingredient.Key(typed)
	if _, ok := l.byKey[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBookmarked, key)
	}
	b := NewBookmark(typed.IngredientType().UID(), typed.UID())
	if err := l.repo.Save(b); err != nil {
		return nil, fmt.Errorf("saving bookmark: %w", err)
	}
	l.order = append(l.order, b)
	l.byKey[key] = b
	l.active[key] = typed
	log.Debug(log.CatBookmarks, "Bookmark added", "key", key, "id", b.ID())
	return b, nil
}

// Remove deletes the bookmark of typed.
func (l *List) Remove(typed ingredient.AnyTyped) error {
	if typed == nil {
		return fmt.Errorf("%w: nil ingredient", ingredient.ErrPrecondition)
	}
	return l.removeKey(ingredient.Key(typed))
}

// RemoveByID deletes the bookmark with id.
func (l *List) RemoveByID(id string) error {
	for _, b := range l.order {
		if b.ID() == id {
			return l.removeKey(b.Key())
		}
	}
	return &NotFoundError{Key: id}
}

func (l *List) removeKey(key string) error {
	if err := mainthread.Assert(l.manager.MainThread(), "bookmark.Remove"); err != nil {
		return err
	}
	b, ok := l.byKey[key]
	if !ok {
		return &NotFoundError{Key: key}
	}
	if err := l.repo.Delete(b.ID()); err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	l.order = slices.DeleteFunc(l.order, func(o *Bookmark) bool { return o == b })
	delete(l.byKey, key)
	delete(l.active, key)
	delete(l.dormant, key)
	return nil
}

// Contains reports whether typed is bookmarked and registered.
func (l *List) Contains(typed ingredient.AnyTyped) bool {
	if typed == nil {
		return false
	}
	_, ok := l.active[ingredient.Key(typed)]
	return ok
}

// Ingredients returns the registered bookmarked ingredients in list order.
func (l *List) Ingredients() []ingredient.AnyTyped {
	out := make([]ingredient.AnyTyped, 0, len(l.active))
	for _, b := range l.order {
		if typed, ok := l.active[b.Key()]; ok {
			out = append(out, typed)
		}
	}
	return out
}

// Bookmarks returns every bookmark in list order, dormant ones included.
func (l *List) Bookmarks() []*Bookmark {
	return slices.Clone(l.order)
}

// Dormant reports whether b refers to an ingredient that is not registered.
func (l *List) Dormant(b *Bookmark) bool {
	return l.dormant[b.Key()]
}

func (l *List) Len() int { return len(l.order) }

// IngredientsAdded revives dormant bookmarks of the added ingredients.
func (l *List) IngredientsAdded(e ingredient.Event) {
	for _, typed := range e.Ingredients {
		key := ingredient.Key(typed)
		if l.dormant[key] {
			delete(l.dormant, key)
			l.active[key] = typed
			log.Debug(log.CatBookmarks, "Bookmark revived", "key", key)
		}
	}
}

// IngredientsRemoved hides bookmarks of removed ingredients. They stay stored.
func (l *List) IngredientsRemoved(e ingredient.Event) {
	for _, typed := range e.Ingredients {
		key := ingredient.Key(typed)
		if _, ok := l.active[key]; ok {
			delete(l.active, key)
			l.dormant[key] = true
			log.Debug(log.CatBookmarks, "Bookmark pruned", "key", key)
		}
	}
}
