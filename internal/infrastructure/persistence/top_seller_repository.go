package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/analytics"
	"github.com/restaurant/backend/internal/domain/menu"
	"gorm.io/gorm"
)

// GormTopSellerRepository implements analytics.Repository with a
// GROUP BY over order lines joined to the current menu.
type GormTopSellerRepository struct {
	db    *gorm.DB
	menus menu.Repository
}

// NewGormTopSellerRepository creates a new GormTopSellerRepository
func NewGormTopSellerRepository(db *gorm.DB) *GormTopSellerRepository {
	return &GormTopSellerRepository{db: db, menus: NewGormMenuItemRepository(db)}
}

type topSellerRow struct {
	MenuItemID uuid.UUID
	TotalSold  int64
}

// TopSellers returns the limit best-selling items still on the menu
func (r *GormTopSellerRepository) TopSellers(ctx context.Context, limit int) ([]analytics.TopSeller, error) {
	var rows []topSellerRow
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.menu_item_id AS menu_item_id, SUM(oi.quantity) AS total_sold").
		Joins("JOIN menu_items AS mi ON mi.id = oi.menu_item_id").
		Group("oi.menu_item_id, mi.name").
		Order("total_sold DESC, mi.name ASC, oi.menu_item_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("aggregate top sellers", err)
	}
	if len(rows) == 0 {
		return []analytics.TopSeller{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.MenuItemID
	}
	items, err := r.menus.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := menu.Index(items)

	result := make([]analytics.TopSeller, 0, len(rows))
	for _, row := range rows {
		// the item can vanish between the two queries
		item, ok := catalog[row.MenuItemID]
		if !ok {
			continue
		}
		result = append(result, analytics.TopSeller{
			MenuItemID: row.MenuItemID,
			TotalSold:  row.TotalSold,
			MenuItem:   item,
		})
	}
	return result, nil
}

// Ensure GormTopSellerRepository implements analytics.Repository
var _ analytics.Repository = (*GormTopSellerRepository)(nil)
