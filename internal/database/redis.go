package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RDB is nil when REDIS_ADDR is unset or unreachable; callers treat a nil
// client as "caching disabled" and fall through to the database.
var RDB *redis.Client

var rctx = context.Background()

func InitRedis(addr string) {
	if addr == "" {
		log.Println("REDIS_ADDR not set, caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{Addr: addr})

	if _, err := RDB.Ping(rctx).Result(); err != nil {
		log.Printf("failed to connect to redis: %v (caching disabled)", err)
		RDB = nil
		return
	}

	log.Println("connected to redis")
}

func CacheGet(key string) (string, bool) {
	if RDB == nil {
		return "", false
	}
	val, err := RDB.Get(rctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func CacheSet(key, val string, ttl time.Duration) {
	if RDB == nil {
		return
	}
	_ = RDB.Set(rctx, key, val, ttl).Err()
}

func CacheDel(keys ...string) {
	if RDB == nil || len(keys) == 0 {
		return
	}
	_ = RDB.Del(rctx, keys...).Err()
}
