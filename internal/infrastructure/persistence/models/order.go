package models

import (
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for order.Order
type OrderModel struct {
	BaseModel
	OrderNumber  string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_order_number"`
	Items        []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Status       order.Status     `gorm:"type:varchar(20);not null;index"`
	CustomerName string           `gorm:"type:varchar(200);not null"`
	TableNumber  *int
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one line of an order. MenuItemID has no foreign key:
// deleting a menu item leaves its order lines intact.
type OrderItemModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the model to an order. Items must be preloaded in
// Position order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:   m.BaseModel.ToDomain(),
		OrderNumber:  m.OrderNumber,
		TotalAmount:  m.TotalAmount,
		Status:       m.Status,
		CustomerName: m.CustomerName,
		TableNumber:  m.TableNumber,
		Items:        make([]order.LineItem, len(m.Items)),
	}
	for i, it := range m.Items {
		o.Items[i] = order.LineItem{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}
	return o
}

// FromDomain populates the model from an order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OrderNumber = o.OrderNumber
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.CustomerName = o.CustomerName
	m.TableNumber = o.TableNumber
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			OrderID:    o.ID,
			Position:   i,
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}
}

// OrderModelFromDomain creates a model from an order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// AllModels lists every model for AutoMigrate
func AllModels() []any {
	return []any{&MenuItemModel{}, &OrderModel{}, &OrderItemModel{}}
}
