package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// 철회된 인증 토큰의 키 prefix. 캐시 키("storeops:cache:")와 네임스페이스를 분리한다.
const blacklistPrefix = "storeops:auth:blacklist:"

var client *redis.Client

// Init connects to Redis and verifies the connection with a ping.
func Init(cfg *config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("Redis connection established", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return nil
}

// GetClient returns the shared Redis client.
func GetClient() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Closing Redis connection", nil)
	return client.Close()
}

// BlacklistToken 토큰을 철회 목록에 올린다. expiry는 토큰의 남은 수명 이상이어야 한다.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if err := client.Set(ctx, blacklistPrefix+token, "1", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	logger.Debug("Token blacklisted", map[string]interface{}{"expiry": expiry.String()})
	return nil
}

// IsTokenBlacklisted 토큰 철회 여부를 확인한다.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := client.Get(ctx, blacklistPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
