package database

import "github.com/redis/go-redis/v9"

// NewRedis creates the redis client backing the rate limiter.
func NewRedis(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}
