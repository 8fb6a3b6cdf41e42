package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
)

// DefaultTopSellersLimit is the number of entries returned by default
const DefaultTopSellersLimit = 5

// MaxTopSellersLimit caps caller-supplied limits
const MaxTopSellersLimit = 50

// TopSeller is a derived view: the summed quantity ordered of one menu
// item across all orders, with a snapshot of the item as it is now.
type TopSeller struct {
	MenuItemID uuid.UUID
	TotalSold  int64
	MenuItem   menu.MenuItem
}

// Repository computes top sellers inside the store. Implementations sum
// line quantities per menu item, skip items no longer on the menu, and order
// entries by TotalSold descending, then menu item name ascending, then id
// ascending.
type Repository interface {
	TopSellers(ctx context.Context, limit int) ([]TopSeller, error)
}

// ClampLimit maps a caller-supplied limit into [1, MaxTopSellersLimit],
// using the default for non-positive values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopSellersLimit
	}
	if limit > MaxTopSellersLimit {
		return MaxTopSellersLimit
	}
	return limit
}
