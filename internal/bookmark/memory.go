package bookmark

import (
	"slices"
	"sync"
)

// inMemoryRepository keeps bookmarks for the lifetime of the process.
type inMemoryRepository struct {
	mu        sync.RWMutex
	bookmarks []*Bookmark
}

// NewInMemoryRepository creates a Repository that persists nothing.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{}
}

func (r *inMemoryRepository) Save(b *Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookmarks {
		if existing.id == b.id || existing.Key() == b.Key() {
			return ErrAlreadyBookmarked
		}
	}
	r.bookmarks = append(r.bookmarks, b)
	return nil
}

func (r *inMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.bookmarks, func(b *Bookmark) bool { return b.id == id })
	if i < 0 {
		return &NotFoundError{Key: id}
	}
	r.bookmarks = slices.Delete(r.bookmarks, i, i+1)
	return nil
}

func (r *inMemoryRepository) List() ([]*Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.bookmarks), nil
}
