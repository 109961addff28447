package utils

import (
	"context"
	"fmt"
	"time"

	DB "github.com/hamzaRio/MarrakechTours/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database
// package. Nil means the app is running without Redis and the blacklist is
// skipped (development mode).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// BlacklistToken records a jti so a logged-out token stops working before
// it expires.
func BlacklistToken(jti string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	if err := client.Set(Ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a jti was revoked. Without Redis every
// token passes.
func IsTokenBlacklisted(jti string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	if _, err := client.Get(Ctx, key).Result(); err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return true, nil
}
