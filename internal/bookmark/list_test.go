package bookmark_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/bookmark"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/mainthread"
	"github.com/zjrosen/almanac/internal/mocks"
	"github.com/zjrosen/almanac/internal/testutil"
)

func stored(typeUID, uid string) *bookmark.Bookmark {
	return bookmark.ReconstituteBookmark(uid+"-id", typeUID, uid, time.Unix(1700000000, 0))
}

func newList(t *testing.T, f *testutil.Fixture, repo *mocks.MockBookmarkRepository) *bookmark.List {
	t.Helper()
	l, err := bookmark.NewList(context.Background(), repo, f.Manager)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestList_LoadsStoredBookmarksInOrder(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return([]*bookmark.Bookmark{
		stored("test:item", "minecraft:stick"),
		stored("test:item", "minecraft:unknown"),
		stored("test:item", "minecraft:oak_log"),
		stored("test:item", "minecraft:stick"),
	}, nil)

	l := newList(t, f, repo)

	require.Equal(t, 3, l.Len())
	ingredients := l.Ingredients()
	require.Len(t, ingredients, 2)
	require.Equal(t, "minecraft:stick", ingredients[0].UID())
	require.Equal(t, "minecraft:oak_log", ingredients[1].UID())
	require.True(t, l.Dormant(l.Bookmarks()[1]))
}

func TestList_LoadError(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return(nil, errors.New("disk on fire"))

	_, err := bookmark.NewList(context.Background(), repo, f.Manager)
	require.ErrorContains(t, err, "disk on fire")
}

func TestList_AddAndRemove(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return(nil, nil)
	repo.EXPECT().Save(mock.AnythingOfType("*bookmark.Bookmark")).Return(nil).Once()

	l := newList(t, f, repo)
	stick := f.Typed("minecraft:stick")

	b, err := l.Add(stick)
	require.NoError(t, err)
	require.NotEmpty(t, b.ID())
	require.Equal(t, "test:item", b.TypeUID())
	require.True(t, l.Contains(stick))

	_, err = l.Add(stick)
	require.ErrorIs(t, err, bookmark.ErrAlreadyBookmarked)

	repo.EXPECT().Delete(b.ID()).Return(nil).Once()
	require.NoError(t, l.Remove(stick))
	require.False(t, l.Contains(stick))
	require.Zero(t, l.Len())

	var nf *bookmark.NotFoundError
	require.ErrorAs(t, l.Remove(stick), &nf)
	require.ErrorAs(t, l.RemoveByID("nope"), &nf)
}

func TestList_SaveFailureLeavesListUnchanged(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return(nil, nil)
	repo.EXPECT().Save(mock.Anything).Return(errors.New("locked"))

	l := newList(t, f, repo)
	_, err := l.Add(f.Typed("minecraft:stick"))
	require.ErrorContains(t, err, "locked")
	require.Zero(t, l.Len())
}

func TestList_RemoveByID(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return([]*bookmark.Bookmark{stored("test:item", "minecraft:furnace")}, nil)
	repo.EXPECT().Delete("minecraft:furnace-id").Return(nil)

	l := newList(t, f, repo)
	require.NoError(t, l.RemoveByID("minecraft:furnace-id"))
	require.Empty(t, l.Ingredients())
}

func TestList_FollowsRuntimeChanges(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return([]*bookmark.Bookmark{
		stored("test:item", "minecraft:charcoal"),
		stored("test:item", "minecraft:diamond"),
	}, nil)

	l := newList(t, f, repo)
	require.Len(t, l.Ingredients(), 1)

	charcoal := f.Items["minecraft:charcoal"]
	require.NoError(t, ingredient.RemoveAtRuntime(f.Manager, testutil.ItemType, []testutil.Item{charcoal}))
	require.Empty(t, l.Ingredients())
	require.Equal(t, 2, l.Len(), "removed ingredients stay stored")

	diamond := testutil.Item{ID: "minecraft:diamond", Name: "Diamond", Count: 1}
	require.NoError(t, ingredient.AddAtRuntime(f.Manager, testutil.ItemType, []testutil.Item{diamond, charcoal}))

	got := l.Ingredients()
	require.Len(t, got, 2)
	require.Equal(t, "minecraft:charcoal", got[0].UID())
	require.Equal(t, "minecraft:diamond", got[1].UID())
}

func TestList_CloseStopsFollowing(t *testing.T) {
	f := testutil.Woodworking(t)
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return([]*bookmark.Bookmark{stored("test:item", "minecraft:stick")}, nil)

	l := newList(t, f, repo)
	l.Close()

	require.NoError(t, ingredient.RemoveAtRuntime(f.Manager, testutil.ItemType, []testutil.Item{f.Items["minecraft:stick"]}))
	require.Len(t, l.Ingredients(), 1)
}

func TestList_WrongThread(t *testing.T) {
	owner := mainthread.Bind()
	f := testutil.WoodworkingBuilder(t).WithManagerOptions(ingredient.WithMainThread(owner)).Build()
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().List().Return(nil, nil)

	l := newList(t, f, repo)
	stick := f.Typed("minecraft:stick")

	errCh := make(chan error, 1)
	go func() {
		_, err := l.Add(stick)
		errCh <- err
	}()
	require.ErrorIs(t, <-errCh, mainthread.ErrWrongThread)
	require.Zero(t, l.Len())
}
