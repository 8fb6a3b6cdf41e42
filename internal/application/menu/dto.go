package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// ListMenuItemsQuery carries raw list filters from the query string.
// Values are parsed by the service so that malformed input surfaces as
// a validation error.
type ListMenuItemsQuery struct {
	Category    string `form:"category"`
	IsAvailable string `form:"isAvailable"`
	MinPrice    string `form:"minPrice"`
	MaxPrice    string `form:"maxPrice"`
}

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	Name            string           `json:"name" binding:"required,max=200" example:"Masala Chai"`
	Description     string           `json:"description" binding:"max=2000" example:"Spiced milk tea"`
	Category        string           `json:"category" binding:"required" example:"Beverage"`
	Price           *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"40"`
	Ingredients     []string         `json:"ingredients" example:"Tea,Milk,Cardamom"`
	IsAvailable     *bool            `json:"isAvailable" example:"true"`
	PreparationTime *int             `json:"preparationTime" binding:"omitempty,min=0" example:"5"`
	ImageURL        string           `json:"imageUrl" binding:"omitempty,max=2048"`
}

// UpdateMenuItemRequest represents a partial update; omitted fields are kept
type UpdateMenuItemRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=200"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	Category        *string          `json:"category"`
	Price           *decimal.Decimal `json:"price" swaggertype:"number"`
	Ingredients     *[]string        `json:"ingredients"`
	IsAvailable     *bool            `json:"isAvailable"`
	PreparationTime *int             `json:"preparationTime" binding:"omitempty,min=0"`
	ImageURL        *string          `json:"imageUrl" binding:"omitempty,max=2048"`
}

// UpdateAvailabilityRequest sets the availability flag
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required" example:"false"`
}

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price" swaggertype:"number"`
	Ingredients     []string        `json:"ingredients"`
	IsAvailable     bool            `json:"isAvailable"`
	PreparationTime *int            `json:"preparationTime,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToMenuItemResponse converts a domain MenuItem to a response
func ToMenuItemResponse(m *menu.MenuItem) MenuItemResponse {
	ingredients := m.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return MenuItemResponse{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Category:        string(m.Category),
		Price:           m.Price,
		Ingredients:     ingredients,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		ImageURL:        m.ImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMenuItemResponses converts a slice of domain MenuItems
func ToMenuItemResponses(items []menu.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, len(items))
	for i := range items {
		out[i] = ToMenuItemResponse(&items[i])
	}
	return out
}
