package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with the schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockPostgresDB returns a GORM handle on the postgres dialect backed by sqlmock
func newMockPostgresDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func mustMenuItem(t *testing.T, repo *GormMenuItemRepository, name string, category menu.Category, price string, ingredients ...string) *menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(name, category, decimal.RequireFromString(price))
	require.NoError(t, err)
	if len(ingredients) > 0 {
		item.Ingredients = ingredients
	}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func mustOrder(t *testing.T, repo *GormOrderRepository, number string, createdAt time.Time, status order.Status, lines ...order.LineItem) *order.Order {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	o, err := order.NewOrder(order.NewOrderParams{
		OrderNumber:  number,
		CustomerName: "Amit",
		Items:        lines,
		TotalAmount:  total,
		Status:       status,
	})
	require.NoError(t, err)
	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}
