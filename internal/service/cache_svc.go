package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/middha141/VowSelect/internal/metrics"
)

// Cache TTLs. Rankings churn with every vote so they get a short TTL on top
// of explicit invalidation; room detail is nearly static.
const (
	RankingCacheTTL    = 30 * time.Second
	RoomDetailCacheTTL = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for ranking and room
// lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetRankings retrieves a cached ranking response. Returns nil if not cached
// or caching is disabled.
func (c *CacheService) GetRankings(ctx context.Context, roomID string) ([]byte, error) {
	return c.get(ctx, rankingKey(roomID))
}

// SetRankings caches a computed ranking for a room.
func (c *CacheService) SetRankings(ctx context.Context, roomID string, data any) error {
	return c.set(ctx, rankingKey(roomID), data, RankingCacheTTL)
}

// InvalidateRankings drops a room's cached ranking. Called after every vote,
// undo, and cataloged photo, the writes that can change the leaderboard.
func (c *CacheService) InvalidateRankings(ctx context.Context, roomID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, rankingKey(roomID)).Err()
}

// GetRoomDetail retrieves a cached room detail response.
func (c *CacheService) GetRoomDetail(ctx context.Context, roomID string) ([]byte, error) {
	return c.get(ctx, roomKey(roomID))
}

// SetRoomDetail caches a room detail response.
func (c *CacheService) SetRoomDetail(ctx context.Context, roomID string, data any) error {
	return c.set(ctx, roomKey(roomID), data, RoomDetailCacheTTL)
}

// InvalidateRoomDetail drops a room's cached detail (joins, imports).
func (c *CacheService) InvalidateRoomDetail(ctx context.Context, roomID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, roomKey(roomID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		if metrics.Metrics.CacheMisses != nil {
			metrics.Metrics.CacheMisses.Inc()
		}
		return nil, nil
	}
	if err == nil && metrics.Metrics.CacheHits != nil {
		metrics.Metrics.CacheHits.Inc()
	}
	return data, err
}

func (c *CacheService) set(ctx context.Context, key string, data any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func rankingKey(roomID string) string {
	return fmt.Sprintf("rankings:%s", roomID)
}

func roomKey(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}
