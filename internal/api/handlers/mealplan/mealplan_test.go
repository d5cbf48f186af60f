package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	mealplanService "recipe-assistant/internal/core/mealplan"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// fakeCompleter 回傳固定內容的完成引擎
type fakeCompleter struct {
	content string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func setupRouter(completer *fakeCompleter) *gin.Engine {
	h := NewHandler(mealplanService.NewService(completer))

	r := gin.New()
	r.POST("/generate-meal-plan", h.HandleGenerateMealPlan)
	r.POST("/recipe-substitutions", h.HandleRecipeSubstitutions)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const mealPlanContent = `{
	"week": [
		{
			"day": "Monday",
			"breakfast": {"recipe": "Toast and eggs", "notes": ""},
			"lunch": {"recipe": "Greek Salad", "notes": ""},
			"dinner": {"recipe": "Pasta Carbonara", "recipeId": "r-1", "notes": ""}
		}
	],
	"shopping_list": [{"item": "pasta", "quantity": "400", "unit": "g"}],
	"notes": "Enjoy"
}`

const mealPlanRequestBody = `{
	"recipes": [
		{"id": "r-1", "title": "Pasta Carbonara", "ingredients": ["pasta"], "instructions": "Cook.", "servings": 4, "prepTime": 10, "cookTime": 20}
	],
	"days": 7,
	"preferences": {"diet": "none"}
}`

func TestHandleGenerateMealPlan(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: mealPlanContent})

	w := postJSON(t, r, "/generate-meal-plan", mealPlanRequestBody)
	require.Equal(t, http.StatusOK, w.Code)

	var plan mealplanService.MealPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	require.Len(t, plan.Week, 1)
	assert.Equal(t, "Monday", plan.Week[0]["day"])
	assert.Equal(t, "Enjoy", plan.Notes)
}

func TestHandleGenerateMealPlanEmptyBodyUsesDefaults(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: `{"week": [], "shopping_list": [], "notes": ""}`})

	w := postJSON(t, r, "/generate-meal-plan", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGenerateMealPlanMalformedBody(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: mealPlanContent})

	w := postJSON(t, r, "/generate-meal-plan", `{"recipes": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestHandleGenerateMealPlanParseError(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: "sorry, no json here"})

	w := postJSON(t, r, "/generate-meal-plan", mealPlanRequestBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RESPONSE_PARSE_ERROR", body["code"])
	assert.Contains(t, body["error"], "Failed to parse Claude's response: ")
}

func TestHandleGenerateMealPlanEngineError(t *testing.T) {
	r := setupRouter(&fakeCompleter{
		err: common.NewEngineUnavailableError("Claude API error: HTTP 503", nil),
	})

	w := postJSON(t, r, "/generate-meal-plan", mealPlanRequestBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ENGINE_UNAVAILABLE", body["code"])
	assert.Equal(t, "Claude API error: HTTP 503", body["error"])
}

const substitutionContent = `{
	"title": "Vegetarian Pasta",
	"description": "Meat-free version",
	"ingredients": [{"name": "smoked tofu", "quantity": "150", "unit": "g"}],
	"instructions": "Cook pasta with tofu.",
	"substitutionNotes": "Tofu replaces bacon."
}`

const substitutionRequestBody = `{
	"recipeId": "r-1",
	"title": "Pasta Carbonara",
	"description": "Classic",
	"ingredients": [
		{"id": "i-1", "name": "pasta", "quantity": "400", "unit": "g"},
		{"id": "i-2", "name": "bacon", "quantity": "150", "unit": "g"}
	],
	"instructions": "Cook pasta with bacon.",
	"dietaryOptions": ["vegetarian"],
	"specificIngredients": ["i-2"]
}`

func TestHandleRecipeSubstitutions(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: substitutionContent})

	w := postJSON(t, r, "/recipe-substitutions", substitutionRequestBody)
	require.Equal(t, http.StatusOK, w.Code)

	var result mealplanService.SubstitutionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, "Pasta Carbonara", result.OriginalRecipe.Title)
	assert.Equal(t, "Vegetarian Pasta", result.SubstitutedRecipe.Title)
	assert.Equal(t, "Tofu replaces bacon.", result.SubstitutedRecipe.SubstitutionNotes)
}

func TestHandleRecipeSubstitutionsMissingRequiredFields(t *testing.T) {
	r := setupRouter(&fakeCompleter{content: substitutionContent})

	bodies := []string{
		`{"title": "T", "ingredients": [{"id": "i-1", "name": "a"}], "instructions": "x"}`,
		`{"recipeId": "r-1", "ingredients": [{"id": "i-1", "name": "a"}], "instructions": "x"}`,
		`{"recipeId": "r-1", "title": "T", "instructions": "x"}`,
		`{"recipeId": "r-1", "title": "T", "ingredients": [{"id": "i-1", "name": "a"}]}`,
	}

	for _, reqBody := range bodies {
		w := postJSON(t, r, "/recipe-substitutions", reqBody)
		require.Equal(t, http.StatusBadRequest, w.Code, reqBody)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Missing required fields", body["error"], reqBody)
		assert.Equal(t, "INVALID_REQUEST", body["code"], reqBody)
	}
}

func TestHandleRecipeSubstitutionsEngineErrorUsesFixedMessage(t *testing.T) {
	r := setupRouter(&fakeCompleter{
		err: common.NewEngineUnavailableError("API key not configured properly.", nil),
	})

	w := postJSON(t, r, "/recipe-substitutions", substitutionRequestBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ENGINE_UNAVAILABLE", body["code"])
	// 替換路徑不透出引擎錯誤細節
	assert.Equal(t, "Failed to generate substitutions", body["error"])
}

func TestHandleRecipeSubstitutionsInvalidResponse(t *testing.T) {
	r := setupRouter(&fakeCompleter{
		content: `{"ingredients": [], "instructions": "", "substitutionNotes": ""}`,
	})

	w := postJSON(t, r, "/recipe-substitutions", substitutionRequestBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_RESPONSE", body["code"])
	assert.Equal(t, "Invalid response format from AI. Please try again.", body["error"])
}
