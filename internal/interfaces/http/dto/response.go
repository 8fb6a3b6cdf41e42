// Package dto holds the wire envelope shared by every HTTP handler.
package dto

import (
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Response is the uniform envelope written by every endpoint
type Response struct {
	Success   bool                `json:"success"`
	Data      any                 `json:"data,omitempty"`
	Count     *int                `json:"count,omitempty"`
	Msg       string              `json:"msg,omitempty"`
	Error     string              `json:"error,omitempty"`
	Code      string              `json:"code,omitempty"`
	Details   []shared.FieldError `json:"details,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMsg creates a success response carrying a message
func NewSuccessResponseWithMsg(data any, msg string) Response {
	return Response{
		Success: true,
		Data:    data,
		Msg:     msg,
	}
}

// NewListResponse creates a success response with the item count set
func NewListResponse[T any](items []T) Response {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Response{
		Success: true,
		Data:    items,
		Count:   &n,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error:   message,
		Code:    code,
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 body with per-field details
func NewValidationErrorResponse(message, requestID string, details []shared.FieldError) Response {
	return Response{
		Success:   false,
		Error:     message,
		Code:      ErrCodeValidation,
		Details:   details,
		RequestID: requestID,
	}
}
