package sqlite

import (
	"time"

	"github.com/zjrosen/almanac/internal/bookmark"
)

// BookmarkModel is a row of the bookmarks table.
type BookmarkModel struct {
	ID        string
	TypeUID   string
	UID       string
	Position  int64
	CreatedAt int64 // Unix timestamp
}

func toBookmarkModel(b *bookmark.Bookmark) *BookmarkModel {
	return &BookmarkModel{
		ID:        b.ID(),
		TypeUID:   b.TypeUID(),
		UID:       b.UID(),
		CreatedAt: b.CreatedAt().Unix(),
	}
}

func (m *BookmarkModel) toDomain() *bookmark.Bookmark {
	return bookmark.ReconstituteBookmark(m.ID, m.TypeUID, m.UID, time.Unix(m.CreatedAt, 0))
}
