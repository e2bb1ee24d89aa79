package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is optional: it only caches reverse-geocode results so repeat
// runs (and nearby dives) do not hit Nominatim again. Every helper is
// nil-safe; with no Redis the cache just always misses.

var ctx = context.Background()
var rdb *redis.Client

const placeTTL = 30 * 24 * time.Hour

func InitRedis(addr string, db int) error {
	rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb = nil
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func SavePlaceSafe(key string, payload []byte) {
	if rdb == nil {
		return
	}
	_ = rdb.Set(ctx, key, payload, placeTTL).Err()
}

func GetPlace(key string) ([]byte, bool) {
	if rdb == nil {
		return nil, false
	}
	val, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}
