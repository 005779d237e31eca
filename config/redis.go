package config

import (
	"os"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance
var RedisClient *redis.Client

//Accessed as config.RedisClient in other files

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
}

// RedisLocker returns a lock client bound to RedisClient, or nil when Redis is not configured.
func RedisLocker() *redislock.Client {
	if RedisClient == nil {
		return nil
	}
	return redislock.New(RedisClient)
}

