package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidID, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.CodeNotFound, ErrCodeNotFound},
		{shared.CodeAlreadyExists, ErrCodeAlreadyExists},
		{shared.CodeInvalidID, ErrCodeInvalidID},
		{shared.CodeConflict, ErrCodeConflict},
		{shared.CodeValidation, ErrCodeValidation},
		{"STORAGE_DISABLED", ErrCodeUnavailable},
		{"PRINTING_DISABLED", ErrCodeUnavailable},
		{ErrCodeRateLimited, ErrCodeRateLimited},
		{"SOMETHING_ELSE", ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewListResponse(t *testing.T) {
	t.Run("count matches items", func(t *testing.T) {
		resp := NewListResponse([]string{"a", "b"})
		require.NotNil(t, resp.Count)
		assert.Equal(t, 2, *resp.Count)
		assert.True(t, resp.Success)
	})

	t.Run("nil slice encodes as empty array", func(t *testing.T) {
		body, err := json.Marshal(NewListResponse[string](nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, string(body))
	})
}

func TestErrorEnvelopeShape(t *testing.T) {
	body, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNotFound, "menu item not found", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"menu item not found","code":"ERR_NOT_FOUND","requestId":"req-1"}`, string(body))
}

func TestDecimalEncodesAsNumber(t *testing.T) {
	body, err := json.Marshal(NewSuccessResponse(map[string]decimal.Decimal{"price": decimal.RequireFromString("120.50")}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"price":120.5}}`, string(body))
}
