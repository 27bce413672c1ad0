package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncruces/go-sqlite3"

	"github.com/zjrosen/almanac/internal/bookmark"
)

// bookmarkRepository implements bookmark.Repository using SQLite.
type bookmarkRepository struct {
	db *sql.DB
}

func newBookmarkRepository(db *sql.DB) *bookmarkRepository {
	return &bookmarkRepository{db: db}
}

var _ bookmark.Repository = (*bookmarkRepository)(nil)

// Save appends b after the last stored bookmark.
func (r *bookmarkRepository) Save(b *bookmark.Bookmark) error {
	m := toBookmarkModel(b)
	_, err := r.db.Exec(
		`INSERT INTO bookmarks (id, type_uid, uid, position, created_at)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM bookmarks), ?)`,
		m.ID, m.TypeUID, m.UID, m.CreatedAt,
	)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY) {
		return fmt.Errorf("%w: %s", bookmark.ErrAlreadyBookmarked, b.Key())
	}
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// Delete removes the bookmark with id.
func (r *bookmarkRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &bookmark.NotFoundError{Key: id}
	}
	return nil
}

// List returns every bookmark ordered by position.
func (r *bookmarkRepository) List() ([]*bookmark.Bookmark, error) {
	rows, err := r.db.Query(`SELECT id, type_uid, uid, position, created_at FROM bookmarks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*bookmark.Bookmark
	for rows.Next() {
		var m BookmarkModel
		if err := rows.Scan(&m.ID, &m.TypeUID, &m.UID, &m.Position, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return out, nil
}
