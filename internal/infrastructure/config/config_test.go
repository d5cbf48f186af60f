package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("ingredient-parser", 8000)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "ingredient-parser", cfg.App.Name)
	assert.Equal(t, "https://api.anthropic.com", cfg.Anthropic.BaseURL)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Anthropic.Model)
	assert.Equal(t, 4096, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 0.7, cfg.Anthropic.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Anthropic.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 1000, cfg.Cache.MaxSize)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-value")
	t.Setenv("ANTHROPIC_MODEL", "claude-test-model")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := LoadConfig("meal-planner", 8001)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-value", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-test-model", cfg.Anthropic.Model)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server: ServerConfig{Port: 8000},
		Anthropic: AnthropicConfig{
			MaxTokens: 4096,
			Timeout:   time.Minute,
		},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	}
	assert.NoError(t, validateConfig(valid))

	noPort := *valid
	noPort.Server.Port = 0
	assert.Error(t, validateConfig(&noPort))

	badTokens := *valid
	badTokens.Anthropic.MaxTokens = 0
	assert.Error(t, validateConfig(&badTokens))

	badBackend := *valid
	badBackend.Cache.Backend = "memcached"
	assert.Error(t, validateConfig(&badBackend))

	// 快取關閉時不檢查快取設定
	cacheOff := *valid
	cacheOff.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, validateConfig(&cacheOff))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}
