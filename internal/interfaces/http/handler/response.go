package handler

import (
	analyticsapp "github.com/restaurant/backend/internal/application/analytics"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/domain/shared"
)

// Types in this file only shape the OpenAPI document.

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool   `json:"success" example:"true"`
	Data    T      `json:"data,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// ListResponse is a list response carrying the item count
// @Description List response with count
type ListResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    []T  `json:"data"`
	Count   int  `json:"count" example:"2"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success   bool                `json:"success" example:"false"`
	Error     string              `json:"error" example:"menu item not found"`
	Code      string              `json:"code" example:"ERR_NOT_FOUND"`
	Details   []shared.FieldError `json:"details,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// Concrete instantiations referenced from swagger annotations
type (
	MenuItemResponse     = APIResponse[menuapp.MenuItemResponse]
	MenuItemListResponse = ListResponse[menuapp.MenuItemResponse]
	OrderResponse        = APIResponse[orderapp.OrderResponse]
	OrderListResponse    = APIResponse[orderapp.OrderListResponse]
	TopSellersResponse   = APIResponse[[]analyticsapp.TopSellerResponse]
)
