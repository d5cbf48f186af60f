package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func memoryConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestNewManagerDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	assert.Nil(t, m)

	// nil 管理器的操作必須安全
	_, err := m.Get(context.Background(), "prompt")
	assert.Error(t, err)
	assert.NoError(t, m.Set(context.Background(), "prompt", "value"))
	assert.NoError(t, m.Close())
}

func TestCacheRoundTrip(t *testing.T) {
	m := NewManager(memoryConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()

	_, err := m.Get(ctx, "prompt-a")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "prompt-a", "completion-a"))

	value, err := m.Get(ctx, "prompt-a")
	require.NoError(t, err)
	assert.Equal(t, "completion-a", value)

	// 不同 prompt 不會互相污染
	_, err = m.Get(ctx, "prompt-b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestCacheTTLExpiry(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.TTL = 10 * time.Millisecond

	m := NewManager(cfg)
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "value"))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestCacheLRUEviction(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.MaxSize = 2

	m := NewManager(cfg)
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt-a", "a"))
	require.NoError(t, m.Set(ctx, "prompt-b", "b"))

	// 提升 a 的訪問次數，b 成為淘汰目標
	_, err := m.Get(ctx, "prompt-a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "prompt-c", "c"))

	_, err = m.Get(ctx, "prompt-b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	value, err := m.Get(ctx, "prompt-a")
	require.NoError(t, err)
	assert.Equal(t, "a", value)

	value, err = m.Get(ctx, "prompt-c")
	require.NoError(t, err)
	assert.Equal(t, "c", value)
}

func TestCacheStats(t *testing.T) {
	m := NewManager(memoryConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "value"))

	_, _ = m.Get(ctx, "prompt")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestCacheRedisFallsBackToMemory(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Backend = "redis"
	// 不可達的位址，初始化時必須退回記憶體後端
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	m := NewManager(cfg)
	require.NotNil(t, m)
	defer m.Close()

	assert.Equal(t, "memory", m.backendName())

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "value"))
	value, err := m.Get(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}
