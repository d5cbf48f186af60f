package service

import (
	"context"
	"time"

	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/pkg/common"
)

// Service 完成引擎服務
// 快取查詢 -> 提供者呼叫 -> 快取回填，單次外部呼叫，不重試
type Service struct {
	provider     provider.Provider
	cacheManager *cache.CacheManager
}

// NewService 創建完成引擎服務
func NewService(p provider.Provider, cacheManager *cache.CacheManager) *Service {
	return &Service{
		provider:     p,
		cacheManager: cacheManager,
	}
}

// Complete 統一對外方法
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	// 檢查快取
	if s.cacheManager != nil {
		if value, err := s.cacheManager.Get(ctx, prompt); err == nil && value != "" {
			return value, nil
		}
	}

	start := time.Now()
	content, err := s.provider.Complete(ctx, prompt)
	common.LogAICall(time.Since(start), err, "")
	if err != nil {
		return "", err
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.Set(ctx, prompt, content)
	}

	return content, nil
}
