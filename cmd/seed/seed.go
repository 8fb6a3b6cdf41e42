package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	menuapp "github.com/restaurant/backend/internal/application/menu"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type seeder struct {
	menu   *menuapp.Service
	orders *orderapp.Service
	rng    *rand.Rand
	log    *zap.Logger
}

// seedMenu inserts the demo catalog. Items whose name is already taken are
// left untouched so the command can be re-run.
func (s *seeder) seedMenu(ctx context.Context) (created, skipped int, err error) {
	for _, req := range demoMenu {
		item, err := s.menu.Create(ctx, req)
		if errors.Is(err, shared.ErrAlreadyExists) {
			skipped++
			s.log.Debug("Menu item exists", zap.String("name", req.Name))
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("seed %q: %w", req.Name, err)
		}
		created++
		s.log.Debug("Menu item created", zap.String("name", item.Name), zap.Stringer("id", item.ID))
	}
	return created, skipped, nil
}

// seedOrders places n random orders drawn from the available menu
func (s *seeder) seedOrders(ctx context.Context, n int) (int, error) {
	items, err := s.menu.List(ctx, menuapp.ListMenuItemsQuery{IsAvailable: "true"})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, errors.New("no available menu items to order from")
	}

	statuses := order.Statuses()
	for i := range n {
		req := s.randomOrder(items, statuses)
		resp, err := s.orders.Create(ctx, req, "")
		if err != nil {
			return i, fmt.Errorf("seed order %d: %w", i+1, err)
		}
		s.log.Debug("Order created",
			zap.String("order_number", resp.OrderNumber),
			zap.String("status", req.Status),
		)
	}
	return n, nil
}

func (s *seeder) randomOrder(items []menuapp.MenuItemResponse, statuses []order.Status) orderapp.CreateOrderRequest {
	count := min(2+s.rng.IntN(3), len(items))
	total := decimal.Zero
	lines := make([]orderapp.LineItemRequest, 0, count)
	for _, idx := range s.rng.Perm(len(items))[:count] {
		item := items[idx]
		qty := 1 + s.rng.IntN(3)
		price := item.Price.Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(price)
		lines = append(lines, orderapp.LineItemRequest{
			MenuItem: item.ID.String(),
			Quantity: qty,
			Price:    &price,
		})
	}

	table := 1 + s.rng.IntN(15)
	return orderapp.CreateOrderRequest{
		Items:        lines,
		TotalAmount:  &total,
		Status:       string(statuses[s.rng.IntN(len(statuses))]),
		CustomerName: fmt.Sprintf("Customer %d", 10+s.rng.IntN(90)),
		TableNumber:  &table,
	}
}
