package mealplan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateKind 指令模板種類
type TemplateKind int

const (
	// TemplateMealPlan 排餐指令模板
	TemplateMealPlan TemplateKind = iota
	// TemplateSubstitution 食材替換指令模板
	TemplateSubstitution
)

// 標記需要替換的食材
const substituteMarker = "[SUBSTITUTE] "

// mealPlanTemplate 排餐指令模板（版本化常數，勿在呼叫端內聯修改）
// 佔位符依序為：天數、食譜區塊、偏好文字
const mealPlanTemplate = `You are a helpful meal planning assistant. Based on the following recipes available to the user, create a %d-day meal plan.

Available Recipes:
%s

User Preferences:
%s

Please create a meal plan that:
1. Uses the available recipes efficiently
2. Provides variety throughout the week
3. Considers the cooking time and complexity
4. Minimizes food waste by using similar ingredients across meals
5. Includes breakfast, lunch, and dinner for each day
6. IMPORTANT: When using a recipe from the available list, include both the recipe title AND the recipe ID

Return the response as a valid JSON object with this structure:
{
    "week": [
        {
            "day": "Monday",
            "breakfast": {"recipe": "Recipe Title", "recipeId": "recipe-id-if-from-available-list", "notes": "Any modifications"},
            "lunch": {"recipe": "Recipe Title", "recipeId": "recipe-id-if-from-available-list", "notes": "Any modifications"},
            "dinner": {"recipe": "Recipe Title", "recipeId": "recipe-id-if-from-available-list", "notes": "Any modifications"}
        },
        // ... more days
    ],
    "shopping_list": [
        {"item": "ingredient name", "quantity": "amount", "unit": "unit of measurement"},
        // ... more items
    ],
    "notes": "General tips or suggestions for the meal plan"
}

Make sure to only use recipes from the available list. For breakfast, if no breakfast recipes are available, suggest simple options like "Toast and eggs" or "Yogurt and fruit" (these should NOT have a recipeId since they're not from the available recipes).

IMPORTANT:
- If using a recipe from the available list, ALWAYS include the recipeId field with the exact ID provided
- If suggesting a simple meal not from the list, do NOT include a recipeId field
- Double-check that recipe IDs match exactly with the ones provided in the available recipes list`

// substitutionTemplate 食材替換指令模板（版本化常數）
// 佔位符依序為：標題、描述行、食材清單、作法、修改要求區塊
const substitutionTemplate = `You are a professional chef helping to modify a recipe based on dietary requirements and ingredient substitutions.

Original Recipe:
Title: %s
%s

Ingredients:
%s

Instructions:
%s

Requested Modifications:
%s

Please provide:
1. A modified ingredients list with appropriate substitutions
2. Updated instructions if any cooking methods need to change
3. Important notes about the substitutions and how they affect the recipe

Format your response as JSON with this structure:
{
  "title": "Modified recipe title if needed",
  "description": "Updated description if needed",
  "ingredients": [
    {"name": "ingredient name", "quantity": "amount", "unit": "unit of measurement"}
  ],
  "instructions": "Step-by-step instructions, separated by newlines",
  "substitutionNotes": "Detailed notes about the substitutions made and any important considerations"
}`

// PromptInput 模板渲染輸入，依模板種類取用對應欄位
type PromptInput struct {
	// TemplateMealPlan
	Days        int
	Recipes     []Recipe
	Preferences map[string]interface{}

	// TemplateSubstitution
	Substitution *SubstitutionRequest
}

// RenderPrompt 依模板種類渲染指令文字
func RenderPrompt(kind TemplateKind, in PromptInput) string {
	switch kind {
	case TemplateMealPlan:
		return fmt.Sprintf(mealPlanTemplate,
			in.Days,
			formatRecipeBlocks(in.Recipes),
			formatPreferences(in.Preferences),
		)
	case TemplateSubstitution:
		req := in.Substitution
		descriptionLine := ""
		if req.Description != "" {
			descriptionLine = fmt.Sprintf("Description: %s", req.Description)
		}
		return fmt.Sprintf(substitutionTemplate,
			req.Title,
			descriptionLine,
			formatSubstitutionIngredients(req.Ingredients, req.SpecificIngredients),
			req.Instructions,
			formatModifications(req.DietaryOptions, req.SpecificIngredients),
		)
	default:
		return ""
	}
}

// formatRecipeBlocks 將食譜渲染為固定格式的多行文字區塊，區塊間以空行分隔
func formatRecipeBlocks(recipes []Recipe) string {
	blocks := make([]string, 0, len(recipes))
	for _, r := range recipes {
		tags := "None"
		if len(r.Tags) > 0 {
			tags = strings.Join(r.Tags, ", ")
		}
		block := fmt.Sprintf(`Recipe ID: %s
Recipe: %s
Ingredients: %s
Servings: %d
Prep Time: %d minutes
Cook Time: %d minutes
Tags: %s`,
			r.ID,
			r.Title,
			strings.Join(r.Ingredients, ", "),
			r.Servings,
			r.PrepTime,
			r.CookTime,
			tags)
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

// formatPreferences 將偏好渲染為縮排 JSON，為空時使用固定字串
func formatPreferences(preferences map[string]interface{}) string {
	if len(preferences) == 0 {
		return "No specific preferences"
	}
	data, err := json.MarshalIndent(preferences, "", "  ")
	if err != nil {
		return "No specific preferences"
	}
	return string(data)
}

// formatSubstitutionIngredients 渲染食材清單，被點名替換的加上標記
func formatSubstitutionIngredients(ingredients []SubstitutionIngredient, specific []string) string {
	marked := make(map[string]struct{}, len(specific))
	for _, id := range specific {
		marked[id] = struct{}{}
	}

	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		text := strings.TrimSpace(fmt.Sprintf("%s %s %s", ing.Quantity, ing.Unit, ing.Name))
		if _, ok := marked[ing.ID]; ok {
			text = substituteMarker + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// formatModifications 渲染修改要求區塊，沒有任何要求時為空
func formatModifications(dietaryOptions, specificIngredients []string) string {
	var lines []string
	if len(dietaryOptions) > 0 {
		lines = append(lines, fmt.Sprintf("- Dietary requirements: %s", strings.Join(dietaryOptions, ", ")))
	}
	if len(specificIngredients) > 0 {
		lines = append(lines, "- Specific ingredients marked with [SUBSTITUTE] need alternatives")
	}
	return strings.Join(lines, "\n")
}
