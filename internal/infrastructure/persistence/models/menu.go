package models

import (
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// MenuItemModel is the persistence model for menu.MenuItem
type MenuItemModel struct {
	BaseModel
	Name            string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_menu_items_name"`
	Description     string          `gorm:"type:text"`
	Category        menu.Category   `gorm:"type:varchar(30);not null;index"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ingredients     []string        `gorm:"type:text;serializer:json"`
	IsAvailable     bool            `gorm:"not null;index"`
	PreparationTime *int
	ImageURL        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the model to a menu item
func (m *MenuItemModel) ToDomain() *menu.MenuItem {
	ingredients := m.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &menu.MenuItem{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Description:     m.Description,
		Category:        m.Category,
		Price:           m.Price,
		Ingredients:     ingredients,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		ImageURL:        m.ImageURL,
	}
}

// FromDomain populates the model from a menu item
func (m *MenuItemModel) FromDomain(item *menu.MenuItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.Name = item.Name
	m.Description = item.Description
	m.Category = item.Category
	m.Price = item.Price
	m.Ingredients = item.Ingredients
	m.IsAvailable = item.IsAvailable
	m.PreparationTime = item.PreparationTime
	m.ImageURL = item.ImageURL
}

// MenuItemModelFromDomain creates a model from a menu item
func MenuItemModelFromDomain(item *menu.MenuItem) *MenuItemModel {
	m := &MenuItemModel{}
	m.FromDomain(item)
	return m
}
