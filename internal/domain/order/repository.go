package order

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows an order listing
type Filter struct {
	Status *Status
	Page   int // 1-based
	Limit  int
}

// Repository defines the interface for order persistence
type Repository interface {
	// Create inserts a new order. A taken order number yields
	// shared.ErrAlreadyExists.
	Create(ctx context.Context, o *Order) error

	// FindByID returns shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns one page of orders, newest first, and the total
	// number of orders matching the status filter
	FindAll(ctx context.Context, filter Filter) ([]Order, int64, error)

	// UpdateStatus writes only the status and returns the updated order
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error)
}
