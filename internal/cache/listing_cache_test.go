package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petspotter/internal/model"
)

func newTestCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewListingCache(client, time.Minute, 5*time.Second), mr
}

func TestListingCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, hit, err := c.GetList(ctx, "exact:all")
	require.NoError(t, err)
	assert.False(t, hit)

	listings := []model.Listing{
		{ID: "a", Status: model.StatusLost, Species: "cat", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	require.NoError(t, c.SetList(ctx, "exact:all", listings))

	got, hit, err := c.GetList(ctx, "exact:all")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, listings, got)
	assert.Equal(t, time.Minute, mr.TTL(listingsKey))
}

func TestListingCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, "exact:status:lost", []model.Listing{{ID: "a"}}))
	require.NoError(t, c.SetList(ctx, "exact:status:found", []model.Listing{{ID: "b"}}))
	require.NoError(t, c.Invalidate(ctx))

	for _, key := range []string{"exact:status:lost", "exact:status:found"} {
		_, hit, err := c.GetList(ctx, key)
		require.NoError(t, err)
		assert.False(t, hit, key)
	}
}

func TestListingCache_DirtyMarkerExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	dirty, err := c.IsDirty(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, c.MarkDirty(ctx))
	dirty, err = c.IsDirty(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	mr.FastForward(6 * time.Second)
	dirty, err = c.IsDirty(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestListingCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	mr.HSet(listingsKey, "exact:all", "{not json")

	_, hit, err := c.GetList(context.Background(), "exact:all")
	require.Error(t, err)
	assert.False(t, hit)
}

func TestListingCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.IsDirty(context.Background())
	assert.Error(t, err)
}
