package provider

import (
	"context"
	"time"
)

// Provider 定義完成引擎提供者介面
type Provider interface {
	// Complete 以單輪對話取得完成文字
	Complete(ctx context.Context, prompt string) (string, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// GetTimeout 獲取請求超時時間
	GetTimeout() time.Duration
}
