package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// Defaults for order listing
const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

// LineItemRequest is one line of a new order
type LineItemRequest struct {
	MenuItem string           `json:"menuItem" binding:"required" example:"6f1c1d1e-8c1a-4a43-9f4b-3c0e0d1e2f30"`
	Quantity int              `json:"quantity" binding:"required,min=1" example:"3"`
	Price    *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"120"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Items        []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount  *decimal.Decimal  `json:"totalAmount" binding:"required" swaggertype:"number" example:"120"`
	Status       string            `json:"status" example:"Pending"`
	CustomerName string            `json:"customerName" binding:"required,max=200" example:"Amit"`
	TableNumber  *int              `json:"tableNumber" binding:"omitempty,min=1" example:"5"`
}

// UpdateStatusRequest changes an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Preparing"`
}

// ListOrdersQuery carries list parameters from the query string
type ListOrdersQuery struct {
	Status string `form:"status"`
	Page   *int   `form:"page"`
	Limit  *int   `form:"limit"`
}

// MenuItemSnapshot is the current catalog state of a line's menu item
type MenuItemSnapshot struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price" swaggertype:"number"`
	IsAvailable     bool            `json:"isAvailable"`
	PreparationTime *int            `json:"preparationTime,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
}

// LineItemResponse is an order line with its menu item dereferenced.
// MenuItem is null when the item no longer exists; Quantity and Price
// always reflect the order as placed.
type LineItemResponse struct {
	MenuItemID uuid.UUID         `json:"menuItemId"`
	MenuItem   *MenuItemSnapshot `json:"menuItem"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price" swaggertype:"number"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID          `json:"id"`
	OrderNumber  string             `json:"orderNumber"`
	Items        []LineItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"totalAmount" swaggertype:"number"`
	Status       string             `json:"status"`
	CustomerName string             `json:"customerName"`
	TableNumber  *int               `json:"tableNumber,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// OrderListResponse is one page of orders
type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
	TotalOrders int64           `json:"totalOrders"`
	TotalPages  int             `json:"totalPages"`
}

// ToOrderResponse converts an order, expanding lines from catalog.
// Lines whose menu item is missing from catalog get a null snapshot.
func ToOrderResponse(o *order.Order, catalog map[uuid.UUID]menu.MenuItem) OrderResponse {
	lines := make([]LineItemResponse, len(o.Items))
	for i, it := range o.Items {
		lines[i] = LineItemResponse{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
		if m, ok := catalog[it.MenuItemID]; ok {
			lines[i].MenuItem = toSnapshot(&m)
		}
	}

	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Items:        lines,
		TotalAmount:  o.TotalAmount,
		Status:       string(o.Status),
		CustomerName: o.CustomerName,
		TableNumber:  o.TableNumber,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toSnapshot(m *menu.MenuItem) *MenuItemSnapshot {
	return &MenuItemSnapshot{
		ID:              m.ID,
		Name:            m.Name,
		Category:        string(m.Category),
		Price:           m.Price,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		ImageURL:        m.ImageURL,
	}
}
