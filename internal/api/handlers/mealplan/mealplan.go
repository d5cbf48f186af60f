package mealplan

import (
	"net/http"

	mealplanService "recipe-assistant/internal/core/mealplan"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MealPlanRequest 排餐請求，days 與 preferences 缺席時套用預設值
type MealPlanRequest struct {
	Recipes     []mealplanService.Recipe `json:"recipes"`
	Days        int                      `json:"days"`
	Preferences map[string]interface{}   `json:"preferences"`
}

// Handler 排餐與替換處理程序
type Handler struct {
	service *mealplanService.Service
}

// NewHandler 創建排餐處理程序
func NewHandler(service *mealplanService.Service) *Handler {
	return &Handler{service: service}
}

// HandleGenerateMealPlan 生成排餐
func (h *Handler) HandleGenerateMealPlan(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理排餐請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req MealPlanRequest
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

	plan, err := h.service.GenerateMealPlan(c.Request.Context(), req.Recipes, req.Days, req.Preferences)
	if err != nil {
		common.LogError("排餐生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		writeServiceError(c, err, "")
		return
	}

	common.LogInfo("排餐生成完成",
		zap.String("request_id", requestID),
		zap.Int("days", len(plan.Week)),
	)

	c.JSON(http.StatusOK, plan)
}

// HandleRecipeSubstitutions 生成食材替換
func (h *Handler) HandleRecipeSubstitutions(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食材替換請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req mealplanService.SubstitutionRequest
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

	// 必要欄位缺一即拒絕
	if req.RecipeID == "" || req.Title == "" || len(req.Ingredients) == 0 || req.Instructions == "" {
		common.LogWarn("食材替換請求缺少必要欄位",
			zap.String("request_id", requestID),
			zap.Bool("has_recipe_id", req.RecipeID != ""),
			zap.Bool("has_title", req.Title != ""),
			zap.Bool("has_ingredients", len(req.Ingredients) > 0),
			zap.Bool("has_instructions", req.Instructions != ""),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	result, err := h.service.GenerateSubstitutions(c.Request.Context(), &req)
	if err != nil {
		common.LogError("食材替換生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		// 替換路徑的引擎錯誤一律用固定訊息，不透出細節
		writeServiceError(c, err, "Failed to generate substitutions")
		return
	}

	common.LogInfo("食材替換生成完成",
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, result)
}

// writeServiceError 將服務層錯誤映射為 HTTP 響應
// engineMessage 非空時覆蓋 ENGINE_UNAVAILABLE 的對外訊息
func writeServiceError(c *gin.Context, err error, engineMessage string) {
	ce := common.AsCustomError(err)
	if ce == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": common.ErrInternalError.Message,
			"code":  common.ErrInternalError.Code,
		})
		return
	}

	message := ce.Message
	if engineMessage != "" && ce.Code == common.ErrCodeEngineUnavailable {
		message = engineMessage
	}

	c.JSON(ce.Status, gin.H{
		"error": message,
		"code":  ce.Code,
	})
}
