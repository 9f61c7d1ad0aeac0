package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client

// InitRedis connects to addr. An empty or unreachable address leaves RDB nil
// and the server runs without rate limiting.
func InitRedis(ctx context.Context, addr string) {
	if addr == "" {
		log.Println("[REDIS] ⚠ REDIS_URL not set, running without rate limiting")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] ⚠ Redis unavailable: %v", err)
		client.Close()
		return
	}

	RDB = client
	log.Println("[REDIS] ✓ connected")
}

// Counter is a fixed-window counter backed by RDB.
type Counter struct {
	client *redis.Client
}

func NewCounter(client *redis.Client) *Counter {
	if client == nil {
		return nil
	}
	return &Counter{client: client}
}

// Incr bumps key and starts its expiry on the first hit of a window.
func (c *Counter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func Close() {
	if RDB != nil {
		RDB.Close()
	}
}
