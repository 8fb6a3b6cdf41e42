package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// searchVector must match the expression index in the migrations
const searchVector = `to_tsvector('english', coalesce(name, '') || ' ' || coalesce(description, '') || ' ' || coalesce(ingredients, ''))`

// GormMenuItemRepository implements menu.Repository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindAll returns items matching filter ordered by name
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter menu.Filter) ([]menu.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var rows []models.MenuItemModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("find menu items", err)
	}
	return toMenuItems(rows), nil
}

// Search ranks items by full-text relevance on postgres. When that finds
// nothing, or on sqlite, it falls back to a literal substring match on
// name and ingredients.
func (r *GormMenuItemRepository) Search(ctx context.Context, q string) ([]menu.MenuItem, error) {
	if r.db.Dialector.Name() == "postgres" {
		var ranked []models.MenuItemModel
		err := r.db.WithContext(ctx).
			Where(searchVector+" @@ plainto_tsquery('english', ?)", q).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:                "ts_rank(" + searchVector + ", plainto_tsquery('english', ?)) DESC, name ASC",
				Vars:               []any{q},
				WithoutParentheses: true,
			}}).
			Find(&ranked).Error
		if err != nil {
			return nil, translateError("search menu items", err)
		}
		if len(ranked) > 0 {
			return toMenuItems(ranked), nil
		}
	}
	return r.searchSubstring(ctx, q)
}

// searchSubstring applies MatchesText to every item. The ingredients
// column holds JSON text with escaped punctuation, so LIKE cannot match it
// literally.
func (r *GormMenuItemRepository) searchSubstring(ctx context.Context, q string) ([]menu.MenuItem, error) {
	var rows []models.MenuItemModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("search menu items", err)
	}

	items := make([]menu.MenuItem, 0, len(rows))
	for i := range rows {
		item := rows[i].ToDomain()
		if item.MatchesText(q) {
			items = append(items, *item)
		}
	}
	return items, nil
}

// FindByID finds a menu item by its ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var row models.MenuItemModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError("find menu item", err)
	}
	return row.ToDomain(), nil
}

// FindByIDs returns the items among ids that exist
func (r *GormMenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]menu.MenuItem, error) {
	if len(ids) == 0 {
		return []menu.MenuItem{}, nil
	}
	var rows []models.MenuItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError("find menu items by ids", err)
	}
	return toMenuItems(rows), nil
}

// ExistsByName checks for an item with exactly this name
func (r *GormMenuItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError("count menu items by name", err)
	}
	return count > 0, nil
}

// Create inserts a new menu item
func (r *GormMenuItemRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	row := models.MenuItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError("create menu item", err)
	}
	return nil
}

// Update persists every column of an existing menu item
func (r *GormMenuItemRepository) Update(ctx context.Context, item *menu.MenuItem) error {
	row := models.MenuItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		return translateError("update menu item", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update menu item", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a menu item. Order lines referencing it are kept.
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MenuItemModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete menu item", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete menu item", gorm.ErrRecordNotFound)
	}
	return nil
}

func toMenuItems(rows []models.MenuItemModel) []menu.MenuItem {
	items := make([]menu.MenuItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

// Ensure GormMenuItemRepository implements menu.Repository
var _ menu.Repository = (*GormMenuItemRepository)(nil)
