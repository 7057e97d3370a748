// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"buscalocal/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client backing the local fallback store.
var CacheClient *redis.Client

// InitRedis initializes the Redis client used as the local mirror of the
// cloud document store.
func InitRedis() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
}

// GetCacheClient returns the Redis client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitRedis()
	}
	return CacheClient
}
