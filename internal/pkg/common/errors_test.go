package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsCustomError(t *testing.T) {
	ce := NewEngineUnavailableError("engine down", nil)

	got := AsCustomError(ce)
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeEngineUnavailable, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)

	// 包裹後仍可解出
	wrapped := fmt.Errorf("outer: %w", ce)
	got = AsCustomError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeEngineUnavailable, got.Code)

	assert.Nil(t, AsCustomError(fmt.Errorf("plain error")))
	assert.Nil(t, AsCustomError(nil))
}

func TestCustomErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	ce := NewResponseParseError("parse failed", inner)

	assert.Equal(t, inner, ce.Unwrap())
	// 有原始錯誤時 Error() 透出原始錯誤，否則用 Message
	assert.Equal(t, "connection refused", ce.Error())
	assert.Equal(t, "engine down", NewEngineUnavailableError("engine down", nil).Error())
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidRequest.Status)
	assert.Equal(t, "Invalid request format", ErrInvalidRequest.Message)
	assert.Equal(t, http.StatusInternalServerError, NewInvalidResponseError("x").Status)
	assert.Equal(t, ErrCodeInvalidResponse, NewInvalidResponseError("x").Code)
}
