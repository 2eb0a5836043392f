package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"glowbook/config"
)

var (
	// FavoritesCacheClient is the dedicated client for the per-account favorites store.
	FavoritesCacheClient *redis.Client
	// SnapshotCacheClient is the dedicated client for short-lived reference data (booking policy).
	SnapshotCacheClient *redis.Client
)

// InitFavoritesCache initializes the Redis client backing the favorites store.
func InitFavoritesCache() {
	FavoritesCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisFavoritesDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := FavoritesCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Favorites): %v", err)
	}
}

// GetFavoritesCacheClient returns the Redis client backing the favorites store.
func GetFavoritesCacheClient() *redis.Client {
	if FavoritesCacheClient == nil {
		InitFavoritesCache()
	}
	return FavoritesCacheClient
}

// InitSnapshotCache initializes the Redis client for cached reference data.
func InitSnapshotCache() {
	SnapshotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSnapshotDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SnapshotCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Snapshot): %v", err)
	}
}

// GetSnapshotCacheClient returns the Redis client for cached reference data.
func GetSnapshotCacheClient() *redis.Client {
	if SnapshotCacheClient == nil {
		InitSnapshotCache()
	}
	return SnapshotCacheClient
}
