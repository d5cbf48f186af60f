package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiVersion = "2023-06-01"

// Client Anthropic messages API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// message 單輪對話消息
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request messages API 請求
type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

// contentBlock 回應中的內容區塊
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// response messages API 回應
type response struct {
	Content []contentBlock `json:"content"`
}

// NewClient 創建 Anthropic 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Anthropic.BaseURL).
		SetTimeout(cfg.Anthropic.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.Anthropic.APIKey).
		SetHeader("anthropic-version", apiVersion)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 提交 prompt 取得完成文字
// 失敗一律包成 ENGINE_UNAVAILABLE，由呼叫端決定如何呈現，不做重試
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.config.Anthropic.APIKey == "" {
		return "", common.NewEngineUnavailableError(
			"API key not configured. Please add ANTHROPIC_API_KEY to your environment variables.", nil)
	}

	req := request{
		Model:       c.config.Anthropic.Model,
		MaxTokens:   c.config.Anthropic.MaxTokens,
		Temperature: c.config.Anthropic.Temperature,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	common.LogInfo("發送請求至完成引擎",
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	var result response
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/v1/messages")

	if err != nil {
		common.LogError("完成引擎請求失敗",
			zap.Error(err),
			zap.String("model", req.Model),
			zap.Duration("耗時", time.Since(start)),
		)
		return "", common.NewEngineUnavailableError(
			fmt.Sprintf("Failed to call Claude API: %s", err.Error()), err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return "", common.NewEngineUnavailableError("API key not configured properly.", nil)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogError("完成引擎回傳錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("response", resp.String()),
		)
		return "", common.NewEngineUnavailableError(
			fmt.Sprintf("Claude API error: HTTP %d", resp.StatusCode()), nil)
	}

	if len(result.Content) == 0 || result.Content[0].Text == "" {
		return "", common.NewEngineUnavailableError("No content in Claude's response", nil)
	}

	common.LogInfo("完成引擎回應成功",
		zap.String("model", req.Model),
		zap.Int("content_length", len(result.Content[0].Text)),
		zap.Duration("耗時", time.Since(start)),
	)

	return result.Content[0].Text, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Anthropic.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Anthropic.Timeout
}
