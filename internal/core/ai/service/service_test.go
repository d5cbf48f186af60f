package service

import (
	"context"
	"os"
	"testing"
	"time"

	"recipe-assistant/internal/core/ai/cache"
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

// fakeProvider 記錄呼叫次數的完成引擎提供者
type fakeProvider struct {
	content string
	err     error
	calls   int
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func (f *fakeProvider) GetModel() string          { return "fake-model" }
func (f *fakeProvider) GetTimeout() time.Duration { return time.Second }

func cacheConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestCompleteCachesByPrompt(t *testing.T) {
	p := &fakeProvider{content: "completion"}
	manager := cache.NewManager(cacheConfig())
	require.NotNil(t, manager)
	defer manager.Close()

	s := NewService(p, manager)
	ctx := context.Background()

	content, err := s.Complete(ctx, "same prompt")
	require.NoError(t, err)
	assert.Equal(t, "completion", content)
	assert.Equal(t, 1, p.calls)

	// 相同 prompt 第二次由快取供應
	content, err = s.Complete(ctx, "same prompt")
	require.NoError(t, err)
	assert.Equal(t, "completion", content)
	assert.Equal(t, 1, p.calls)

	// 不同 prompt 仍需呼叫提供者
	_, err = s.Complete(ctx, "another prompt")
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestCompleteWithoutCache(t *testing.T) {
	p := &fakeProvider{content: "completion"}
	s := NewService(p, nil)

	for i := 0; i < 3; i++ {
		content, err := s.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "completion", content)
	}
	assert.Equal(t, 3, p.calls)
}

func TestCompleteErrorNotCached(t *testing.T) {
	p := &fakeProvider{err: common.NewEngineUnavailableError("down", nil)}
	manager := cache.NewManager(cacheConfig())
	require.NotNil(t, manager)
	defer manager.Close()

	s := NewService(p, manager)

	_, err := s.Complete(context.Background(), "prompt")
	require.Error(t, err)

	// 失敗不落快取，下一次仍會打到提供者
	_, err = s.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 2, p.calls)
}
