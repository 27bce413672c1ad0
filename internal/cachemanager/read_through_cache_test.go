package cachemanager_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/cachemanager"
	"github.com/zjrosen/almanac/internal/mocks"
)

type aliasInput struct {
	UID string
}

func translateAliases(ctx context.Context, input aliasInput) ([]string, error) {
	return []string{"alias of " + input.UID}, nil
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []string](t)

	cache := cachemanager.NewReadThroughCache[string, []string, aliasInput](managerMock, translateAliases, true)

	aliases, err := cache.Get(context.Background(), "key", aliasInput{UID: "minecraft:stick"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"alias of minecraft:stick"}, aliases)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return([]string{"Rod"}, true)

	cache := cachemanager.NewReadThroughCache[string, []string, aliasInput](managerMock, translateAliases, false)

	aliases, err := cache.Get(context.Background(), "key", aliasInput{UID: "minecraft:stick"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"Rod"}, aliases)
}

func TestReadThroughCache_Get_EmptyCache(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return(nil, false)
	managerMock.EXPECT().Set(mock.Anything, "key", []string{"alias of minecraft:stick"}, mock.Anything).Return()

	cache := cachemanager.NewReadThroughCache[string, []string, aliasInput](managerMock, translateAliases, false)

	aliases, err := cache.Get(context.Background(), "key", aliasInput{UID: "minecraft:stick"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"alias of minecraft:stick"}, aliases)
}

func TestReadThroughCache_Get_ComputeError(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return(nil, false)

	cache := cachemanager.NewReadThroughCache[string, []string, aliasInput](
		managerMock,
		func(ctx context.Context, input aliasInput) ([]string, error) {
			return nil, errors.New("missing translation table")
		},
		false,
	)

	_, err := cache.Get(context.Background(), "key", aliasInput{UID: "minecraft:stick"}, time.Minute)
	require.Error(t, err)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []string](t)
	managerMock.EXPECT().Flush(mock.Anything).Return(nil)

	cache := cachemanager.NewReadThroughCache[string, []string, aliasInput](managerMock, translateAliases, false)
	require.NoError(t, cache.Invalidate(context.Background()))
}
