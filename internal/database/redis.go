package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Redis stays nil when REDIS_ADDR is unset; every helper below degrades to a no-op.
var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	addr := config.AppConfig.RedisAddr
	if addr == "" {
		logger.Warn().Msg("REDIS_ADDR not set. Token revocation and caching are disabled.")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.AppConfig.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := Redis.Ping(Ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis. Token revocation and caching are disabled.")
		Redis.Close()
		Redis = nil
		return
	}
	logger.Info().Str("addr", addr).Msg("Connected to Redis")
}

// Rate Limiting
func CheckRateLimit(key string, limit int, duration time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}
	k := fmt.Sprintf("rate_limit:%s", key)
	count, err := Redis.Incr(Ctx, k).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, k, duration)
	}

	return count <= int64(limit), nil
}

// Token revocation

func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(Ctx, "token_blacklist:"+jti, "1", ttl).Err()
}

func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	n, err := Redis.Exists(Ctx, "token_blacklist:"+jti).Result()
	return err == nil && n > 0
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, payload, expiration).Err()
}

// CacheGet returns redis.Nil on a miss and when Redis is disabled.
func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// CacheGeneration reads a counter used to version cache keys. An unset counter
// is generation 0. It returns redis.Nil when Redis is disabled.
func CacheGeneration(key string) (int64, error) {
	if Redis == nil {
		return 0, redis.Nil
	}
	gen, err := Redis.Get(Ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func BumpCacheGeneration(key string) error {
	if Redis == nil {
		return nil
	}
	return Redis.Incr(Ctx, key).Err()
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := Redis.Scan(Ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := Redis.Del(Ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
