package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the order and its lines in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	row := models.OrderModelFromDomain(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	return translateError("create order", err)
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var row models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", preloadLines).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, translateError("find order", err)
	}
	return row.ToDomain(), nil
}

// FindAll returns one page of orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, int64, error) {
	byStatus := func(db *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			return db.Where("status = ?", *filter.Status)
		}
		return db
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Scopes(byStatus).
		Count(&total).Error
	if err != nil {
		return nil, 0, translateError("count orders", err)
	}

	var rows []models.OrderModel
	err = r.db.WithContext(ctx).
		Scopes(byStatus).
		Preload("Items", preloadLines).
		Order("created_at DESC").
		Order("id DESC").
		Offset(shared.Offset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError("find orders", err)
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// UpdateStatus writes status and updated_at in one statement
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*order.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, translateError("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
