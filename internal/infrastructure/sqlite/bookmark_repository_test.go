package sqlite

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/almanac/internal/bookmark"
)

func setupTestRepo(t *testing.T) bookmark.Repository {
	t.Helper()
	db, _ := openTestDB(t)
	return db.BookmarkRepository()
}

func TestBookmarkRepository_SaveAndList(t *testing.T) {
	repo := setupTestRepo(t)

	a := bookmark.NewBookmark("minecraft:item", "minecraft:stick")
	b := bookmark.NewBookmark("minecraft:fluid", "minecraft:water")
	require.NoError(t, repo.Save(a))
	require.NoError(t, repo.Save(b))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a.ID(), list[0].ID())
	require.Equal(t, "minecraft:item", list[0].TypeUID())
	require.Equal(t, "minecraft:stick", list[0].UID())
	require.WithinDuration(t, a.CreatedAt(), list[0].CreatedAt(), time.Second)
	require.Equal(t, b.Key(), list[1].Key())
}

func TestBookmarkRepository_Duplicate(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(bookmark.NewBookmark("minecraft:item", "minecraft:stick")))
	err := repo.Save(bookmark.NewBookmark("minecraft:item", "minecraft:stick"))
	require.ErrorIs(t, err, bookmark.ErrAlreadyBookmarked)
}

func TestBookmarkRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	b := bookmark.NewBookmark("minecraft:item", "minecraft:stick")
	require.NoError(t, repo.Save(b))

	require.NoError(t, repo.Delete(b.ID()))

	var nf *bookmark.NotFoundError
	require.ErrorAs(t, repo.Delete(b.ID()), &nf)
	require.Equal(t, b.ID(), nf.Key)

	list, err := repo.List()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestBookmarkRepository_AppendAfterDelete(t *testing.T) {
	repo := setupTestRepo(t)
	a := bookmark.NewBookmark("minecraft:item", "a")
	b := bookmark.NewBookmark("minecraft:item", "b")
	require.NoError(t, repo.Save(a))
	require.NoError(t, repo.Save(b))
	require.NoError(t, repo.Delete(b.ID()))

	c := bookmark.NewBookmark("minecraft:item", "c")
	require.NoError(t, repo.Save(c))
	require.NoError(t, repo.Save(b))

	list, err := repo.List()
	require.NoError(t, err)
	uids := make([]string, len(list))
	for i, bm := range list {
		uids[i] = bm.UID()
	}
	require.Equal(t, []string{"a", "c", "b"}, uids)
}

// Listing returns saved bookmarks in save order, minus deleted ones.
func TestBookmarkRepository_OrderProperty(t *testing.T) {
	db, _ := openTestDB(t)

	rapid.Check(t, func(rt *rapid.T) {
		_, err := db.conn.Exec("DELETE FROM bookmarks")
		require.NoError(rt, err)
		repo := db.BookmarkRepository()

		n := rapid.IntRange(0, 20).Draw(rt, "n")
		var saved []*bookmark.Bookmark
		for i := 0; i < n; i++ {
			b := bookmark.NewBookmark("minecraft:item", fmt.Sprintf("minecraft:item_%d", i))
			require.NoError(rt, repo.Save(b))
			saved = append(saved, b)
		}

		var want []string
		for i, b := range saved {
			if rapid.Bool().Draw(rt, fmt.Sprintf("delete_%d", i)) {
				require.NoError(rt, repo.Delete(b.ID()))
				continue
			}
			want = append(want, b.ID())
		}

		list, err := repo.List()
		require.NoError(rt, err)
		got := make([]string, len(list))
		for i, b := range list {
			got[i] = b.ID()
		}
		if !slices.Equal(want, got) {
			rt.Fatalf("order mismatch: want %v, got %v", want, got)
		}
	})
}
