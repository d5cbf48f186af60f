package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"trailing fence only", "{\"a\": 1}\n```", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripJSONFence(tt.input))
		})
	}
}

func TestStripJSONFenceEquivalence(t *testing.T) {
	// 有無 fence 的同一份內容必須解析出相同結果
	raw := `{"week": [], "notes": "hi"}`
	fenced := "```json\n" + raw + "\n```"

	var a, b map[string]interface{}
	require.NoError(t, ParseJSON(StripJSONFence(raw), &a))
	require.NoError(t, ParseJSON(StripJSONFence(fenced), &b))
	assert.Equal(t, a, b)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSON(`{"name": "flour"}`, &v))
	assert.Equal(t, "flour", v.Name)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1} {"b": 2}`, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected extra JSON data")
}

func TestParseJSONMalformed(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, ParseJSON(`{"a": `, &v))
}

func TestParseJSONUsesNumbers(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"n": 42}`, &v))
	assert.Equal(t, json.Number("42"), v["n"])
}

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	assert.Error(t, ParseJSONStrict(`{"name": "a", "extra": true}`, &v))
	assert.NoError(t, ParseJSON(`{"name": "a", "extra": true}`, &v))
}

func TestToJSON(t *testing.T) {
	s, err := ToJSON(map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "b"}`, s)
}
