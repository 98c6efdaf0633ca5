package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes the redis client used for request rate limiting.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
