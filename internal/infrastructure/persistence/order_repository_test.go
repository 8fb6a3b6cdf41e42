package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id uuid.UUID, qty int, price string) order.LineItem {
	return order.LineItem{MenuItemID: id, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func orderNumbers(orders []order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderNumber
	}
	return out
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(setupTestDB(t))

	tea, naan, ghost := uuid.New(), uuid.New(), uuid.New()
	table := 4
	o, err := order.NewOrder(order.NewOrderParams{
		OrderNumber:  "ORD-123456",
		CustomerName: "Amit",
		TableNumber:  &table,
		Items:        []order.LineItem{line(tea, 2, "20"), line(naan, 3, "35.50"), line(ghost, 1, "0")},
		TotalAmount:  decimal.RequireFromString("146.50"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-123456", found.OrderNumber)
	assert.Equal(t, order.StatusPending, found.Status)
	assert.Equal(t, "Amit", found.CustomerName)
	require.NotNil(t, found.TableNumber)
	assert.Equal(t, 4, *found.TableNumber)
	assert.True(t, decimal.RequireFromString("146.50").Equal(found.TotalAmount))
	require.Len(t, found.Items, 3)
	assert.Equal(t, tea, found.Items[0].MenuItemID)
	assert.Equal(t, naan, found.Items[1].MenuItemID)
	assert.Equal(t, 3, found.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("35.50").Equal(found.Items[1].Price))
	assert.Equal(t, ghost, found.Items[2].MenuItemID)

	t.Run("duplicate order number is rejected", func(t *testing.T) {
		dup, err := order.NewOrder(order.NewOrderParams{
			OrderNumber:  "ORD-123456",
			CustomerName: "Riya",
			Items:        []order.LineItem{line(tea, 1, "20")},
			TotalAmount:  decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(setupTestDB(t))

	item := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	statuses := []order.Status{
		order.StatusPending, order.StatusReady, order.StatusPending,
		order.StatusDelivered, order.StatusPending, order.StatusPending, order.StatusPending,
	}
	for i, s := range statuses {
		mustOrder(t, repo, fmt.Sprintf("ORD-%06d", 100000+i), base.Add(time.Duration(i)*time.Minute), s, line(item, i+1, "10"))
	}

	t.Run("newest first with total", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, order.Filter{Page: 1, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Equal(t, []string{"ORD-100006", "ORD-100005", "ORD-100004"}, orderNumbers(orders))
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, 7, orders[0].Items[0].Quantity)
	})

	t.Run("last partial page", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, order.Filter{Page: 3, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Equal(t, []string{"ORD-100000"}, orderNumbers(orders))
	})

	t.Run("page beyond the end is empty but keeps the total", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, order.Filter{Page: 10, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Empty(t, orders)
	})

	t.Run("status filter applies to rows and total", func(t *testing.T) {
		s := order.StatusPending
		orders, total, err := repo.FindAll(ctx, order.Filter{Status: &s, Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Equal(t, []string{"ORD-100006", "ORD-100005"}, orderNumbers(orders))
	})
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(setupTestDB(t))

	o := mustOrder(t, repo, "ORD-555555", time.Now().UTC(), order.StatusDelivered, line(uuid.New(), 1, "20"))

	updated, err := repo.UpdateStatus(ctx, o.ID, order.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, updated.Status)
	assert.Len(t, updated.Items, 1)
	assert.True(t, o.TotalAmount.Equal(updated.TotalAmount))

	_, err = repo.UpdateStatus(ctx, uuid.New(), order.StatusReady)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
