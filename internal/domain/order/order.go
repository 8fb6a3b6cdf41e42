package order

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is one entry of an order. MenuItemID is a weak reference:
// the menu item may later change or disappear without affecting the line.
// Quantity and Price are frozen at creation.
type LineItem struct {
	MenuItemID uuid.UUID
	Quantity   int
	Price      decimal.Decimal
}

// Order is a customer's order. Items and TotalAmount never change after
// creation; only Status does.
type Order struct {
	shared.BaseEntity
	OrderNumber  string
	Items        []LineItem
	TotalAmount  decimal.Decimal
	Status       Status
	CustomerName string
	TableNumber  *int
}

// NewOrderParams holds the caller-supplied fields of a new order
type NewOrderParams struct {
	OrderNumber  string
	CustomerName string
	TableNumber  *int
	Items        []LineItem
	TotalAmount  decimal.Decimal
	Status       Status // empty means Pending
}

// NewOrder validates params and creates an order. TotalAmount is trusted
// as given and is not checked against the line prices.
func NewOrder(p NewOrderParams) (*Order, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	status := p.Status
	if status == "" {
		status = StatusPending
	}

	items := make([]LineItem, len(p.Items))
	copy(items, p.Items)

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		OrderNumber:  p.OrderNumber,
		Items:        items,
		TotalAmount:  p.TotalAmount,
		Status:       status,
		CustomerName: strings.TrimSpace(p.CustomerName),
		TableNumber:  p.TableNumber,
	}, nil
}

// Validate checks params without creating an order. The order number is
// not checked here since it is assigned after validation.
func Validate(p NewOrderParams) error {
	v := &shared.ValidationError{}

	if len(p.Items) == 0 {
		v.Add("items", "Items must be an array and cannot be empty")
	}
	for i, it := range p.Items {
		if it.MenuItemID == uuid.Nil {
			v.Add(lineField(i, "menuItem"), "Invalid menuItem ID")
		}
		if it.Quantity < 1 {
			v.Add(lineField(i, "quantity"), "Quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			v.Add(lineField(i, "price"), "Price cannot be negative")
		} else if msg := shared.MoneyProblem(it.Price); msg != "" {
			v.Add(lineField(i, "price"), "Price "+msg)
		}
	}
	if strings.TrimSpace(p.CustomerName) == "" {
		v.Add("customerName", "Customer name is required")
	}
	if p.TableNumber != nil && *p.TableNumber < 1 {
		v.Add("tableNumber", "Table number must be a positive number")
	}
	if p.TotalAmount.IsNegative() {
		v.Add("totalAmount", "Total amount cannot be negative")
	} else if msg := shared.MoneyProblem(p.TotalAmount); msg != "" {
		v.Add("totalAmount", "Total amount "+msg)
	}
	if p.Status != "" && !p.Status.IsValid() {
		v.Add("status", "Invalid order status")
	}

	return v.OrNil()
}

// ChangeStatus sets a new status. Any valid status is accepted regardless
// of the current one, including moving a delivered order back to pending.
func (o *Order) ChangeStatus(s Status) error {
	if !s.IsValid() {
		return shared.NewValidationError("status", "Invalid order status")
	}
	o.Status = s
	o.Touch()
	return nil
}

// MenuItemIDs returns the distinct menu item references of the order
func (o *Order) MenuItemIDs() []uuid.UUID {
	return CollectMenuItemIDs([]Order{*o})
}

// ItemCount returns the sum of line quantities
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// CollectMenuItemIDs returns the distinct menu item references across
// orders, in first-seen order.
func CollectMenuItemIDs(orders []Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.MenuItemID]; ok {
				continue
			}
			seen[it.MenuItemID] = struct{}{}
			ids = append(ids, it.MenuItemID)
		}
	}
	return ids
}

func lineField(i int, name string) string {
	return "items[" + strconv.Itoa(i) + "]." + name
}
