package menu

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter narrows a menu listing. Zero value matches everything.
type Filter struct {
	Category    *Category
	IsAvailable *bool
	MinPrice    *decimal.Decimal // inclusive
	MaxPrice    *decimal.Decimal // inclusive
}

// Matches reports whether m passes every set criterion
func (f Filter) Matches(m *MenuItem) bool {
	if f.Category != nil && m.Category != *f.Category {
		return false
	}
	if f.IsAvailable != nil && m.IsAvailable != *f.IsAvailable {
		return false
	}
	if f.MinPrice != nil && m.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && m.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Repository defines the interface for menu item persistence
type Repository interface {
	// FindAll returns every item matching filter
	FindAll(ctx context.Context, filter Filter) ([]MenuItem, error)

	// Search runs a ranked text search over name, description and
	// ingredients. When that finds nothing it falls back to a literal,
	// case-insensitive substring match on name and ingredients.
	Search(ctx context.Context, query string) ([]MenuItem, error)

	// FindByID returns shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindByIDs returns the items that still exist; missing ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]MenuItem, error)

	// ExistsByName checks name uniqueness, ignoring excludeID when set
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// Create inserts a new item; a taken name yields shared.ErrAlreadyExists
	Create(ctx context.Context, item *MenuItem) error

	// Update persists all fields of an existing item
	Update(ctx context.Context, item *MenuItem) error

	// Delete removes an item; shared.ErrNotFound when absent
	Delete(ctx context.Context, id uuid.UUID) error
}

// NormalizeQuery trims a search query and rejects blank input
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", shared.NewValidationError("q", "Please enter a search query")
	}
	return q, nil
}
