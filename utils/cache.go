// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"zagroda/config"

	"github.com/go-redis/redis/v8"
)

// SessionClient holds wizard sessions while a guest walks through the booking steps.
var SessionClient *redis.Client

// InitSessionStore initializes the Redis client backing booking wizard sessions.
func InitSessionStore() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (sessions): %v", err)
	}
}

// GetSessionClient returns the Redis client for wizard sessions.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionStore()
	}
	return SessionClient
}
