package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"camperhub/internal/app/services/ownerstats"
)

const ownerStatsKey = "camperhub:owner_stats"

// OwnerStatsCache stores the aggregated owner rows as a single JSON blob.
type OwnerStatsCache struct {
	client *redis.Client
}

func NewOwnerStatsCache(client *redis.Client) *OwnerStatsCache {
	return &OwnerStatsCache{client: client}
}

// Get returns the cached rows, or (nil, nil) on a miss.
func (c *OwnerStatsCache) Get(ctx context.Context) ([]ownerstats.Row, error) {
	raw, err := c.client.Get(ctx, ownerStatsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rows []ownerstats.Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *OwnerStatsCache) Set(ctx context.Context, rows []ownerstats.Row, ttl time.Duration) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ownerStatsKey, raw, ttl).Err()
}

var _ ownerstats.Cache = (*OwnerStatsCache)(nil)
