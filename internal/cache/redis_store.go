package cache

import (
	"context"
	"time"

	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storeops:cache:"

// RedisStore Redis 캐시 백엔드. 여러 인스턴스를 띄우는 배포에서 사용한다.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) redisKey(fn, key string) string {
	return redisKeyPrefix + fn + ":" + key
}

func (s *RedisStore) Get(fn, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, s.redisKey(fn, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("Redis cache get failed", map[string]interface{}{
			"fn":    fn,
			"error": err.Error(),
		})
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(fn, key string, data []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, s.redisKey(fn, key), data, ttl).Err(); err != nil {
		logger.Warn("Redis cache set failed", map[string]interface{}{
			"fn":    fn,
			"error": err.Error(),
		})
	}
}

func (s *RedisStore) DeleteFunc(fn string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var deleted int
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+fn+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err == nil {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Redis cache scan failed during invalidation", map[string]interface{}{
			"fn":    fn,
			"error": err.Error(),
		})
	}
	return deleted
}

func (s *RedisStore) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
}
