package parser

import (
	"regexp"
	"strings"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// ParsedIngredient 正規化後的食材紀錄
// quantity / unit / comment 缺席時輸出 null，與空字串有別
type ParsedIngredient struct {
	Name         string  `json:"name"`
	Quantity     *string `json:"quantity"`
	Unit         *string `json:"unit"`
	Comment      *string `json:"comment"`
	OriginalText string  `json:"original_text"`
}

// 開頭數量的文字形式：整數、帶分數、小數或純分數，後面必須接空白
// 優先於引擎的結構化數量，以保留 "1 1/2" 這類混合分數的原始寫法
var quantityPattern = regexp.MustCompile(`^(\d+(?:\s+\d+/\d+|\.\d+|/\d+)?)\s+`)

// Normalizer 食材正規化服務
type Normalizer struct {
	engine Engine
}

// NewNormalizer 創建食材正規化服務
func NewNormalizer(engine Engine) *Normalizer {
	return &Normalizer{engine: engine}
}

// Normalize 將一段食材文字正規化為 ParsedIngredient
// 引擎的任何失敗都被吸收為 fallback 紀錄，絕不向呼叫端回傳錯誤
func (n *Normalizer) Normalize(text string) (result ParsedIngredient) {
	fallback := ParsedIngredient{
		Name:         text,
		OriginalText: text,
	}
	result = fallback

	// 引擎或後續欄位存取的任何 panic 一律降級為 fallback
	defer func() {
		if r := recover(); r != nil {
			common.LogWarn("食材解析引擎 panic，使用 fallback",
				zap.Any("panic", r),
			)
			result = fallback
		}
	}()

	parsed, err := n.engine.Parse(text)
	if err != nil || parsed == nil {
		return fallback
	}

	// 名稱：取第一個名稱片段，修剪空白與結尾逗號
	name := ""
	if len(parsed.Name) > 0 {
		name = parsed.Name[0].Text
	}
	name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), ","))

	// 數量：先用 regex 保留原始文字形式，再退回引擎的結構化數量
	var quantity *string
	if m := quantityPattern.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		q := m[1]
		quantity = &q
	}

	// 單位：只來自引擎的結構化結果
	var unit *string
	if len(parsed.Amount) > 0 {
		amount := parsed.Amount[0]
		if quantity == nil && amount.Quantity != nil {
			q := *amount.Quantity
			quantity = &q
		}
		if amount.Unit != nil {
			u := *amount.Unit
			unit = &u
		}
	}

	// 備註：依固定順序收集 comment / preparation / purpose，以 ", " 連接
	var notes []string
	for _, field := range []*FieldText{parsed.Comment, parsed.Preparation, parsed.Purpose} {
		if field != nil && field.Text != "" {
			notes = append(notes, field.Text)
		}
	}
	var comment *string
	if len(notes) > 0 {
		joined := strings.Join(notes, ", ")
		comment = &joined
	}

	// 名稱抽取不到任何內容時退回完整原文
	if name == "" {
		name = text
	}

	return ParsedIngredient{
		Name:         name,
		Quantity:     quantity,
		Unit:         unit,
		Comment:      comment,
		OriginalText: text,
	}
}

// NormalizeBatch 依輸入順序逐筆正規化，輸出與輸入一一對應
// 單筆失敗不影響其他筆的結果
func (n *Normalizer) NormalizeBatch(texts []string) []ParsedIngredient {
	results := make([]ParsedIngredient, len(texts))
	for i, text := range texts {
		results[i] = n.Normalize(text)
	}
	return results
}
