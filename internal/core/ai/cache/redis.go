package cache

import (
	"context"
	"fmt"
	"time"

	"recipe-assistant/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// redisStore redis 快取後端
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// newRedisStore 創建 redis 快取後端並驗證連線
func newRedisStore(addr string, ttl time.Duration) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get 獲取快取值
func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置快取值
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 redis 連線
func (s *redisStore) Close() error {
	return s.client.Close()
}
