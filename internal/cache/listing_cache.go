package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	redisv9 "github.com/redis/go-redis/v9"

	"petspotter/internal/model"
)

const (
	listingsKey      = "petposts:lists"
	listingsDirtyKey = "petposts:lists:dirty"
)

// ListingCache stores listing query results in one redis hash keyed by
// query. Writes mark the cache dirty first so a read racing a write does
// not repopulate it with stale rows.
type ListingCache struct {
	client         *redisv9.Client
	listTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewListingCache(client *redisv9.Client, listTTL, dirtyMarkerTTL time.Duration) *ListingCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &ListingCache{
		client:         client,
		listTTL:        listTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *ListingCache) GetList(ctx context.Context, key string) ([]model.Listing, bool, error) {
	raw, err := c.client.HGet(ctx, listingsKey, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get listings failed: %w", err)
	}

	var listings []model.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached listings failed: %w", err)
	}
	return listings, true, nil
}

func (c *ListingCache) SetList(ctx context.Context, key string, listings []model.Listing) error {
	payload, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("marshal listings cache failed: %w", err)
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, listingsKey, key, payload)
	pipe.Expire(ctx, listingsKey, c.listTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set listings failed: %w", err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingsKey).Err(); err != nil {
		return fmt.Errorf("redis delete listings failed: %w", err)
	}
	return nil
}

func (c *ListingCache) MarkDirty(ctx context.Context) error {
	if err := c.client.Set(ctx, listingsDirtyKey, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *ListingCache) IsDirty(ctx context.Context) (bool, error) {
	exists, err := c.client.Exists(ctx, listingsDirtyKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}
