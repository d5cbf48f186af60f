package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NameToken 解析引擎回傳的名稱片段
type NameToken struct {
	Text string
}

// Amount 解析引擎回傳的數量資訊，欄位皆可能缺席
type Amount struct {
	Quantity *string
	Unit     *string
}

// FieldText 帶文字的可選欄位（comment / preparation / purpose）
type FieldText struct {
	Text string
}

// ParseResult 解析引擎的原始結果
// 所有欄位都是可選的：缺席以 nil / 空切片表示，不使用空字串哨兵值
type ParseResult struct {
	Name        []NameToken
	Amount      []Amount
	Comment     *FieldText
	Preparation *FieldText
	Purpose     *FieldText
}

// Engine 定義食材解析引擎介面，對輸入格式錯誤時允許回傳錯誤
type Engine interface {
	Parse(text string) (*ParseResult, error)
}

// HeuristicEngine 規則式解析引擎
// 依序抽取：開頭數量、單位詞彙、名稱、逗號後的補充子句
type HeuristicEngine struct{}

// NewHeuristicEngine 創建規則式解析引擎
func NewHeuristicEngine() *HeuristicEngine {
	return &HeuristicEngine{}
}

var (
	// 開頭數量：整數、帶分數、小數或純分數
	leadingAmountPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?)(?:\s+|$)`)

	// 單位詞彙表（單複數與常見縮寫）
	unitVocabulary = map[string]struct{}{
		"cup": {}, "cups": {},
		"tablespoon": {}, "tablespoons": {}, "tbsp": {},
		"teaspoon": {}, "teaspoons": {}, "tsp": {},
		"gram": {}, "grams": {}, "g": {},
		"kilogram": {}, "kilograms": {}, "kg": {},
		"milliliter": {}, "milliliters": {}, "ml": {},
		"liter": {}, "liters": {}, "l": {},
		"ounce": {}, "ounces": {}, "oz": {},
		"pound": {}, "pounds": {}, "lb": {}, "lbs": {},
		"pinch": {}, "pinches": {},
		"clove": {}, "cloves": {},
		"slice": {}, "slices": {},
		"can": {}, "cans": {},
		"stick": {}, "sticks": {},
		"piece": {}, "pieces": {},
		"bunch": {}, "bunches": {},
		"dash": {}, "dashes": {},
		"quart": {}, "quarts": {},
		"pint": {}, "pints": {},
		"gallon": {}, "gallons": {},
		"package": {}, "packages": {}, "pkg": {},
		"head": {}, "heads": {},
		"sprig": {}, "sprigs": {},
		"handful": {}, "handfuls": {},
	}

	// 準備動作詞彙，用於分類逗號後的子句
	preparationWords = map[string]struct{}{
		"chopped": {}, "sifted": {}, "diced": {}, "minced": {}, "sliced": {},
		"melted": {}, "softened": {}, "beaten": {}, "grated": {}, "peeled": {},
		"crushed": {}, "drained": {}, "rinsed": {}, "cubed": {}, "shredded": {},
		"toasted": {}, "trimmed": {}, "halved": {}, "quartered": {}, "julienned": {},
		"mashed": {}, "whisked": {}, "zested": {}, "juiced": {}, "cooked": {},
		"thawed": {}, "washed": {}, "finely": {}, "roughly": {}, "coarsely": {},
		"freshly": {}, "thinly": {},
	}
)

// Parse 解析一段食材文字
func (e *HeuristicEngine) Parse(text string) (*ParseResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty ingredient text")
	}

	result := &ParseResult{}

	// 以逗號切出主要子句與補充子句
	clauses := strings.Split(trimmed, ",")
	head := strings.TrimSpace(clauses[0])

	// 抽取開頭數量，引擎端一律轉為十進位字串表示
	if m := leadingAmountPattern.FindStringSubmatch(head); m != nil {
		quantity := normalizeQuantity(m[1])
		head = strings.TrimSpace(head[len(m[0]):])
		amount := Amount{Quantity: &quantity}

		// 數量後的第一個 token 若在單位詞彙表中，視為單位
		tokens := strings.Fields(head)
		if len(tokens) > 0 {
			candidate := strings.ToLower(strings.TrimSuffix(tokens[0], "."))
			if _, ok := unitVocabulary[candidate]; ok {
				unit := strings.TrimSuffix(tokens[0], ".")
				amount.Unit = &unit
				head = strings.TrimSpace(strings.Join(tokens[1:], " "))
			}
		}
		result.Amount = []Amount{amount}
	}

	// 去掉冠詞後，剩餘主要子句即為名稱
	if head != "" {
		result.Name = []NameToken{{Text: head}}
	}

	// 分類補充子句：for 開頭為用途、準備動作詞開頭為處理方式、其餘為備註
	for _, clause := range clauses[1:] {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		lower := strings.ToLower(clause)
		firstWord := lower
		if idx := strings.IndexByte(lower, ' '); idx >= 0 {
			firstWord = lower[:idx]
		}

		switch {
		case strings.HasPrefix(lower, "for "):
			appendField(&result.Purpose, clause)
		case isPreparationWord(firstWord):
			appendField(&result.Preparation, clause)
		default:
			appendField(&result.Comment, clause)
		}
	}

	return result, nil
}

// appendField 設置或串接可選欄位文字
func appendField(field **FieldText, text string) {
	if *field == nil {
		*field = &FieldText{Text: text}
		return
	}
	(*field).Text += ", " + text
}

// isPreparationWord 判斷是否為準備動作詞
func isPreparationWord(word string) bool {
	_, ok := preparationWords[word]
	return ok
}

// normalizeQuantity 將數量字串轉為十進位表示（"1 1/2" -> "1.5"）
// 混合分數的原始寫法由上層以 regex 另行保留
func normalizeQuantity(raw string) string {
	raw = strings.TrimSpace(raw)

	// 帶分數：整數 + 空白 + 分數
	if parts := strings.Fields(raw); len(parts) == 2 && strings.Contains(parts[1], "/") {
		whole, err1 := strconv.ParseFloat(parts[0], 64)
		frac, err2 := parseFraction(parts[1])
		if err1 == nil && err2 == nil {
			return strconv.FormatFloat(whole+frac, 'g', -1, 64)
		}
		return raw
	}

	// 純分數
	if strings.Contains(raw, "/") {
		if frac, err := parseFraction(raw); err == nil {
			return strconv.FormatFloat(frac, 'g', -1, 64)
		}
		return raw
	}

	// 整數或小數照原樣回傳
	return raw
}

// parseFraction 解析 "a/b" 形式的分數
func parseFraction(s string) (float64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("not a fraction: %s", s)
	}
	numerator, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, err
	}
	denominator, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	if denominator == 0 {
		return 0, fmt.Errorf("zero denominator: %s", s)
	}
	return numerator / denominator, nil
}
