package ingredient

import (
	"net/http"

	"recipe-assistant/internal/core/parser"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseRequest 單筆解析請求
// text 允許空字串（降級為 fallback），但鍵本身必須存在
type ParseRequest struct {
	Text *string `json:"text" binding:"required"`
}

// BatchParseRequest 批次解析請求
type BatchParseRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// BatchParseResponse 批次解析響應，與輸入一一對應
type BatchParseResponse struct {
	Ingredients []parser.ParsedIngredient `json:"ingredients"`
}

// Handler 食材解析處理程序
type Handler struct {
	normalizer *parser.Normalizer
}

// NewHandler 創建食材解析處理程序
func NewHandler(normalizer *parser.Normalizer) *Handler {
	return &Handler{normalizer: normalizer}
}

// HandleParse 解析單筆食材文字
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": common.ErrInvalidRequest.Message,
			"code":  common.ErrInvalidRequest.Code,
		})
		return
	}

	// 正規化絕不失敗，引擎問題一律吸收為 fallback 紀錄
	result := h.normalizer.Normalize(*req.Text)

	common.LogInfo("食材解析完成",
		zap.String("request_id", requestID),
		zap.Int("text_length", len(*req.Text)),
		zap.Bool("has_quantity", result.Quantity != nil),
	)

	c.JSON(http.StatusOK, result)
}

// HandleParseBatch 批次解析食材文字，保持輸入順序與長度
func (h *Handler) HandleParseBatch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": common.ErrInvalidRequest.Message,
			"code":  common.ErrInvalidRequest.Code,
		})
		return
	}

	results := h.normalizer.NormalizeBatch(req.Ingredients)

	common.LogInfo("批次食材解析完成",
		zap.String("request_id", requestID),
		zap.Int("count", len(results)),
	)

	c.JSON(http.StatusOK, BatchParseResponse{Ingredients: results})
}
