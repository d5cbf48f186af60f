package mealplan

// Recipe 使用者現有的食譜，作為排餐素材
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Servings     int      `json:"servings"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Tags         []string `json:"tags"`
}

// MealPlan 排餐結果
// week 與 shopping_list 的內部形狀信任完成引擎的輸出，僅做頂層鍵抽取
type MealPlan struct {
	Week         []map[string]interface{} `json:"week"`
	ShoppingList []map[string]interface{} `json:"shopping_list"`
	Notes        string                   `json:"notes"`
}

// SubstitutionIngredient 替換請求中的單筆食材
type SubstitutionIngredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// SubstitutionRequest 食材替換請求
// specificIngredients 列出被標記為必須替換的食材 id
type SubstitutionRequest struct {
	RecipeID            string                   `json:"recipeId"`
	Title               string                   `json:"title"`
	Description         string                   `json:"description"`
	Ingredients         []SubstitutionIngredient `json:"ingredients"`
	Instructions        string                   `json:"instructions"`
	PrepTime            *int                     `json:"prepTime"`
	CookTime            *int                     `json:"cookTime"`
	Servings            *int                     `json:"servings"`
	DietaryOptions      []string                 `json:"dietaryOptions"`
	SpecificIngredients []string                 `json:"specificIngredients"`
}

// OriginalRecipe 替換回應中的原始食譜摘要
type OriginalRecipe struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	PrepTime     *int   `json:"prepTime"`
	CookTime     *int   `json:"cookTime"`
	Servings     *int   `json:"servings"`
}

// SubstitutedRecipe 完成引擎產生的替換後食譜
// ingredients / instructions / substitutionNotes 為必要欄位，內容則信任引擎輸出
type SubstitutedRecipe struct {
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Ingredients       interface{} `json:"ingredients"`
	Instructions      interface{} `json:"instructions"`
	SubstitutionNotes interface{} `json:"substitutionNotes"`
}

// SubstitutionResult 替換操作的完整回應
type SubstitutionResult struct {
	OriginalRecipe    OriginalRecipe    `json:"originalRecipe"`
	SubstitutedRecipe SubstitutedRecipe `json:"substitutedRecipe"`
}
