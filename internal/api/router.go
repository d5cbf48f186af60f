package api

import (
	"context"
	"net/http"
	"time"

	"recipe-assistant/internal/api/handlers/health"
	ingredientHandler "recipe-assistant/internal/api/handlers/ingredient"
	mealplanHandler "recipe-assistant/internal/api/handlers/mealplan"
	"recipe-assistant/internal/api/middleware"
	"recipe-assistant/internal/core/mealplan"
	"recipe-assistant/internal/core/parser"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	parserTimeout   = 30 * time.Second
	mealPlanTimeout = 60 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// newBaseRouter 創建帶基礎中間件的路由引擎
func newBaseRouter(cfg *config.Config, timeout time.Duration) *gin.Engine {
	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 全局超時中間件
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeout),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/ready", health.ReadinessCheck(cfg.App.Version))

	return router
}

// SetupIngredientRouter 設置食材解析服務路由
func SetupIngredientRouter(cfg *config.Config, normalizer *parser.Normalizer) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.String("service", cfg.App.Name),
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	router := newBaseRouter(cfg, parserTimeout)

	handler := ingredientHandler.NewHandler(normalizer)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Ingredient Parser Service",
			"version": cfg.App.Version,
		})
	})
	router.POST("/parse", handler.HandleParse)
	router.POST("/parse-batch", handler.HandleParseBatch)

	common.LogInfo("Router setup completed successfully",
		zap.String("service", cfg.App.Name),
		zap.Duration("timeout", parserTimeout),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}

// SetupMealPlanRouter 設置排餐服務路由
func SetupMealPlanRouter(cfg *config.Config, planService *mealplan.Service) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.String("service", cfg.App.Name),
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("model", cfg.Anthropic.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	router := newBaseRouter(cfg, mealPlanTimeout)

	handler := mealplanHandler.NewHandler(planService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Meal Planner Service",
			"status":  "running",
		})
	})
	router.POST("/generate-meal-plan", handler.HandleGenerateMealPlan)
	router.POST("/recipe-substitutions", handler.HandleRecipeSubstitutions)

	common.LogInfo("Router setup completed successfully",
		zap.String("service", cfg.App.Name),
		zap.Duration("timeout", mealPlanTimeout),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}
