package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTopSellerRepository_TopSellers(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	menus := NewGormMenuItemRepository(db)
	orders := NewGormOrderRepository(db)
	repo := NewGormTopSellerRepository(db)

	t.Run("no orders yields empty list", func(t *testing.T) {
		sellers, err := repo.TopSellers(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, sellers)
	})

	tea := mustMenuItem(t, menus, "Tea", menu.CategoryBeverage, "20")
	coffee := mustMenuItem(t, menus, "Coffee", menu.CategoryBeverage, "30")
	naan := mustMenuItem(t, menus, "Butter Naan", menu.CategoryMainCourse, "35")
	gone := mustMenuItem(t, menus, "Seasonal Soup", menu.CategoryAppetizer, "90")

	now := time.Now().UTC()
	mustOrder(t, orders, "ORD-200001", now, order.StatusPending,
		line(tea.ID, 2, "20"), line(naan.ID, 1, "35"), line(gone.ID, 9, "90"))
	mustOrder(t, orders, "ORD-200002", now, order.StatusDelivered,
		line(tea.ID, 1, "20"), line(coffee.ID, 3, "30"))
	mustOrder(t, orders, "ORD-200003", now, order.StatusCancelled,
		line(naan.ID, 2, "35"))
	require.NoError(t, menus.Delete(ctx, gone.ID))

	t.Run("sums quantities, drops deleted items, breaks ties by name", func(t *testing.T) {
		sellers, err := repo.TopSellers(ctx, 5)
		require.NoError(t, err)
		require.Len(t, sellers, 3)

		// Butter Naan, Coffee and Tea all sold 3
		assert.Equal(t, "Butter Naan", sellers[0].MenuItem.Name)
		assert.Equal(t, "Coffee", sellers[1].MenuItem.Name)
		assert.Equal(t, "Tea", sellers[2].MenuItem.Name)
		for _, s := range sellers {
			assert.Equal(t, int64(3), s.TotalSold)
			assert.Equal(t, s.MenuItem.ID, s.MenuItemID)
		}
	})

	t.Run("limit is honored", func(t *testing.T) {
		mustOrder(t, orders, "ORD-200004", now, order.StatusPending, line(tea.ID, 5, "20"))

		sellers, err := repo.TopSellers(ctx, 2)
		require.NoError(t, err)
		require.Len(t, sellers, 2)
		assert.Equal(t, "Tea", sellers[0].MenuItem.Name)
		assert.Equal(t, int64(8), sellers[0].TotalSold)
		assert.Equal(t, "Butter Naan", sellers[1].MenuItem.Name)
	})
}
