// Package bookmark keeps the ordered list of bookmarked ingredients and
// persists it through a Repository.
package bookmark

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyBookmarked is returned when adding an ingredient that is already in the list.
var ErrAlreadyBookmarked = errors.New("ingredient already bookmarked")

// NotFoundError is returned when a bookmark does not exist.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bookmark not found: %s", e.Key)
}

// Bookmark references an ingredient by type uid and ingredient uid.
type Bookmark struct {
	id        string
	typeUID   string
	uid       string
	createdAt time.Time
}

// NewBookmark creates a bookmark with a fresh id.
func NewBookmark(typeUID, uid string) *Bookmark {
	return &Bookmark{
		id:        uuid.NewString(),
		typeUID:   typeUID,
		uid:       uid,
		createdAt: time.Now(),
	}
}

// ReconstituteBookmark rebuilds a persisted bookmark.
func ReconstituteBookmark(id, typeUID, uid string, createdAt time.Time) *Bookmark {
	return &Bookmark{id: id, typeUID: typeUID, uid: uid, createdAt: createdAt}
}

func (b *Bookmark) ID() string           { return b.id }
func (b *Bookmark) TypeUID() string      { return b.typeUID }
func (b *Bookmark) UID() string          { return b.uid }
func (b *Bookmark) CreatedAt() time.Time { return b.createdAt }

// Key matches ingredient.Key of the bookmarked ingredient.
func (b *Bookmark) Key() string { return b.typeUID + "|" + b.uid }

// Repository persists bookmarks in list order.
type Repository interface {
	// Save inserts b at the end of the list.
	Save(b *Bookmark) error
	// Delete removes the bookmark with id, returning *NotFoundError when missing.
	Delete(id string) error
	// List returns every bookmark in list order.
	List() ([]*Bookmark, error)
}
