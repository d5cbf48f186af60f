package mealplan

import (
	"context"
	"fmt"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultPlanDays 排餐預設天數
const DefaultPlanDays = 7

// Completer 完成引擎的消費端介面
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service 排餐與食材替換服務
// 兩個操作都是無狀態單趟管線：渲染 -> 呼叫引擎 -> 解析驗證 -> 重塑
type Service struct {
	completer Completer
}

// NewService 創建排餐服務
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// GenerateMealPlan 依現有食譜與偏好生成排餐
func (s *Service) GenerateMealPlan(ctx context.Context, recipes []Recipe, days int, preferences map[string]interface{}) (*MealPlan, error) {
	if days <= 0 {
		days = DefaultPlanDays
	}

	prompt := RenderPrompt(TemplateMealPlan, PromptInput{
		Days:        days,
		Recipes:     recipes,
		Preferences: preferences,
	})

	content, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// 去除可選的 code fence 後解析頂層 JSON
	cleaned := common.StripJSONFence(content)

	var payload struct {
		Week         []map[string]interface{} `json:"week"`
		ShoppingList []map[string]interface{} `json:"shopping_list"`
		Notes        string                   `json:"notes"`
	}
	if err := common.ParseJSON(cleaned, &payload); err != nil {
		common.LogError("排餐回應解析失敗",
			zap.Error(err),
			zap.Int("content_length", len(cleaned)),
		)
		// 排餐路徑允許向呼叫端透出底層解析錯誤訊息
		return nil, common.NewResponseParseError(
			fmt.Sprintf("Failed to parse Claude's response: %s", err.Error()), err)
	}

	plan := &MealPlan{
		Week:         payload.Week,
		ShoppingList: payload.ShoppingList,
		Notes:        payload.Notes,
	}

	// 頂層鍵各自獨立補預設值
	if plan.Week == nil {
		plan.Week = []map[string]interface{}{}
	}
	if plan.ShoppingList == nil {
		plan.ShoppingList = []map[string]interface{}{}
	}

	// 校準 recipeId：標題完全吻合的餐點必帶對應 id，
	// 不在清單內的餐點不得殘留 recipeId 欄位
	reconcileRecipeIDs(plan.Week, recipes)

	return plan, nil
}

// GenerateSubstitutions 依飲食限制與被點名的食材生成替換後食譜
func (s *Service) GenerateSubstitutions(ctx context.Context, req *SubstitutionRequest) (*SubstitutionResult, error) {
	prompt := RenderPrompt(TemplateSubstitution, PromptInput{Substitution: req})

	content, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := common.StripJSONFence(content)

	var payload map[string]interface{}
	if err := common.ParseJSON(cleaned, &payload); err != nil {
		common.LogError("替換建議回應解析失敗",
			zap.Error(err),
			zap.Int("content_length", len(cleaned)),
		)
		// 替換路徑使用固定訊息，不透出底層解析錯誤
		return nil, common.NewResponseParseError(
			"Failed to parse substitution suggestions. Please try again.", err)
	}

	// 三個必要欄位缺一不可，且不得為空
	if isEmptyValue(payload["ingredients"]) ||
		isEmptyValue(payload["instructions"]) ||
		isEmptyValue(payload["substitutionNotes"]) {
		common.LogError("替換建議回應缺少必要欄位",
			zap.Bool("has_ingredients", !isEmptyValue(payload["ingredients"])),
			zap.Bool("has_instructions", !isEmptyValue(payload["instructions"])),
			zap.Bool("has_substitution_notes", !isEmptyValue(payload["substitutionNotes"])),
		)
		return nil, common.NewInvalidResponseError("Invalid response format from AI. Please try again.")
	}

	result := &SubstitutionResult{
		OriginalRecipe: OriginalRecipe{
			Title:        req.Title,
			Description:  req.Description,
			Instructions: req.Instructions,
			PrepTime:     req.PrepTime,
			CookTime:     req.CookTime,
			Servings:     req.Servings,
		},
		SubstitutedRecipe: SubstitutedRecipe{
			Title:             stringOr(payload, "title", req.Title),
			Description:       stringOr(payload, "description", req.Description),
			Ingredients:       payload["ingredients"],
			Instructions:      payload["instructions"],
			SubstitutionNotes: payload["substitutionNotes"],
		},
	}

	return result, nil
}

// reconcileRecipeIDs 讓 week 內的餐點符合 recipeId 約定：
// 標題與現有食譜完全吻合 -> 寫入該食譜的 id；
// recipeId 對不上任何現有食譜 -> 移除該欄位（缺席，不是 null 或空字串）
func reconcileRecipeIDs(week []map[string]interface{}, recipes []Recipe) {
	if len(week) == 0 {
		return
	}

	titleToID := make(map[string]string, len(recipes))
	knownIDs := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if r.Title != "" {
			titleToID[r.Title] = r.ID
		}
		if r.ID != "" {
			knownIDs[r.ID] = struct{}{}
		}
	}

	for _, day := range week {
		for _, slot := range []string{"breakfast", "lunch", "dinner"} {
			meal, ok := day[slot].(map[string]interface{})
			if !ok {
				continue
			}

			title, _ := meal["recipe"].(string)
			if id, ok := titleToID[title]; ok && id != "" {
				meal["recipeId"] = id
				continue
			}

			if raw, present := meal["recipeId"]; present {
				id, _ := raw.(string)
				if _, known := knownIDs[id]; !known {
					delete(meal, "recipeId")
				}
			}
		}
	}
}

// isEmptyValue 依 JSON 語意判斷值是否缺席或為空（nil、空字串、空陣列、空物件）
func isEmptyValue(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []interface{}:
		return len(value) == 0
	case map[string]interface{}:
		return len(value) == 0
	default:
		return false
	}
}

// stringOr 取出 map 中的非空字串，否則回傳預設值
func stringOr(payload map[string]interface{}, key, fallback string) string {
	if value, ok := payload[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
