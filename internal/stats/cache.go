package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 5 * time.Minute
	// UpdateChannel carries freshly published stats documents to broadcast
	// subscribers.
	UpdateChannel = "stats:updates"
)

// Cache provides Redis-backed caching of published stats so the read path
// rarely touches Postgres between aggregation runs.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a stats cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(puzzleID string) string {
	return "stats:" + puzzleID
}

// Get returns the cached stats for a puzzle, or nil on a miss.
func (c *Cache) Get(ctx context.Context, puzzleID string) (*PuzzleStats, error) {
	data, err := c.client.Get(ctx, c.key(puzzleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var stats PuzzleStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores freshly aggregated stats with the configured TTL.
func (c *Cache) Set(ctx context.Context, stats PuzzleStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(stats.PuzzleID), data, c.ttl).Err()
}

// Announce publishes a stats document on the update channel for WebSocket
// fan-out.
func (c *Cache) Announce(ctx context.Context, stats PuzzleStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, UpdateChannel, data).Err()
}
