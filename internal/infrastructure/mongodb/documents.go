package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type menuItemDocument struct {
	ID              string               `bson:"_id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description,omitempty"`
	Category        string               `bson:"category"`
	Price           primitive.Decimal128 `bson:"price"`
	Ingredients     []string             `bson:"ingredients"`
	IsAvailable     bool                 `bson:"isAvailable"`
	PreparationTime *int                 `bson:"preparationTime,omitempty"`
	ImageURL        string               `bson:"imageUrl,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type lineItemDocument struct {
	MenuItem string               `bson:"menuItem"`
	Quantity int                  `bson:"quantity"`
	Price    primitive.Decimal128 `bson:"price"`
}

type orderDocument struct {
	ID           string               `bson:"_id"`
	OrderNumber  string               `bson:"orderNumber"`
	Items        []lineItemDocument   `bson:"items"`
	TotalAmount  primitive.Decimal128 `bson:"totalAmount"`
	Status       string               `bson:"status"`
	CustomerName string               `bson:"customerName"`
	TableNumber  *int                 `bson:"tableNumber,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v, err)
	}
	return d, nil
}

func newMenuItemDocument(m *menu.MenuItem) (*menuItemDocument, error) {
	price, err := toDecimal128(m.Price)
	if err != nil {
		return nil, err
	}
	ingredients := m.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &menuItemDocument{
		ID:              m.ID.String(),
		Name:            m.Name,
		Description:     m.Description,
		Category:        string(m.Category),
		Price:           price,
		Ingredients:     ingredients,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		ImageURL:        m.ImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func (d *menuItemDocument) toDomain() (*menu.MenuItem, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("menu item id %q: %w", d.ID, err)
	}
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &menu.MenuItem{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt.UTC(),
			UpdatedAt: d.UpdatedAt.UTC(),
		},
		Name:            d.Name,
		Description:     d.Description,
		Category:        menu.Category(d.Category),
		Price:           price,
		Ingredients:     ingredients,
		IsAvailable:     d.IsAvailable,
		PreparationTime: d.PreparationTime,
		ImageURL:        d.ImageURL,
	}, nil
}

func newOrderDocument(o *order.Order) (*orderDocument, error) {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return nil, err
	}
	items := make([]lineItemDocument, len(o.Items))
	for i, it := range o.Items {
		price, err := toDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		items[i] = lineItemDocument{
			MenuItem: it.MenuItemID.String(),
			Quantity: it.Quantity,
			Price:    price,
		}
	}
	return &orderDocument{
		ID:           o.ID.String(),
		OrderNumber:  o.OrderNumber,
		Items:        items,
		TotalAmount:  total,
		Status:       string(o.Status),
		CustomerName: o.CustomerName,
		TableNumber:  o.TableNumber,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}, nil
}

func (d *orderDocument) toDomain() (*order.Order, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("order id %q: %w", d.ID, err)
	}
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	items := make([]order.LineItem, len(d.Items))
	for i, it := range d.Items {
		menuItemID, err := uuid.Parse(it.MenuItem)
		if err != nil {
			return nil, fmt.Errorf("order %s line %d menu item %q: %w", d.ID, i, it.MenuItem, err)
		}
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		items[i] = order.LineItem{MenuItemID: menuItemID, Quantity: it.Quantity, Price: price}
	}
	return &order.Order{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt.UTC(),
			UpdatedAt: d.UpdatedAt.UTC(),
		},
		OrderNumber:  d.OrderNumber,
		Items:        items,
		TotalAmount:  total,
		Status:       order.Status(d.Status),
		CustomerName: d.CustomerName,
		TableNumber:  d.TableNumber,
	}, nil
}
