package menu

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category groups menu items on the menu
type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// Categories returns every category in menu order
func Categories() []Category {
	return []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

func invalidCategoryMessage() string {
	names := make([]string, 0, 4)
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return "Invalid category, must be one of: " + strings.Join(names, ", ")
}

// ParseCategory accepts the display value ("Main Course") and the
// compact form ("MainCourse").
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if c == "MainCourse" {
		c = CategoryMainCourse
	}
	if !c.IsValid() {
		return "", shared.NewValidationError("category", invalidCategoryMessage())
	}
	return c, nil
}

const maxNameLength = 200

// MenuItem is a dish or drink offered by the restaurant
type MenuItem struct {
	shared.BaseEntity
	Name            string
	Description     string
	Category        Category
	Price           decimal.Decimal
	Ingredients     []string
	IsAvailable     bool
	PreparationTime *int // minutes
	ImageURL        string
}

// Patch carries a partial change to a menu item. Nil fields are left untouched.
type Patch struct {
	Name            *string
	Description     *string
	Category        *Category
	Price           *decimal.Decimal
	Ingredients     *[]string
	IsAvailable     *bool
	PreparationTime *int
	ImageURL        *string
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Price == nil &&
		p.Ingredients == nil && p.IsAvailable == nil && p.PreparationTime == nil && p.ImageURL == nil
}

// NewMenuItem creates an available menu item
func NewMenuItem(name string, category Category, price decimal.Decimal) (*MenuItem, error) {
	v := &shared.ValidationError{}
	name = strings.TrimSpace(name)
	validateName(v, name)
	validateCategory(v, category)
	validatePrice(v, price)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	return &MenuItem{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Category:    category,
		Price:       price,
		Ingredients: []string{},
		IsAvailable: true,
	}, nil
}

// Apply validates the supplied fields of p and, if all pass, applies them.
// Nothing is changed when any field fails.
func (m *MenuItem) Apply(p Patch) error {
	v := &shared.ValidationError{}
	var name string
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		validateName(v, name)
	}
	if p.Category != nil {
		validateCategory(v, *p.Category)
	}
	if p.Price != nil {
		validatePrice(v, *p.Price)
	}
	if p.PreparationTime != nil && *p.PreparationTime < 0 {
		v.Add("preparationTime", "Preparation time cannot be negative")
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	if p.Name != nil {
		m.Name = name
	}
	if p.Description != nil {
		m.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Ingredients != nil {
		m.Ingredients = cleanIngredients(*p.Ingredients)
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
	if p.PreparationTime != nil {
		pt := *p.PreparationTime
		m.PreparationTime = &pt
	}
	if p.ImageURL != nil {
		m.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	m.Touch()
	return nil
}

// SetAvailability sets only the availability flag
func (m *MenuItem) SetAvailability(available bool) {
	m.IsAvailable = available
	m.Touch()
}

// SetImageURL replaces the image location
func (m *MenuItem) SetImageURL(url string) {
	m.ImageURL = url
	m.Touch()
}

// MatchesText reports whether q occurs, case-insensitively and literally,
// in the name or any ingredient.
func (m *MenuItem) MatchesText(q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(m.Name), q) {
		return true
	}
	for _, ing := range m.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

// Index builds an id lookup over items
func Index(items []MenuItem) map[uuid.UUID]MenuItem {
	idx := make(map[uuid.UUID]MenuItem, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

func validateName(v *shared.ValidationError, name string) {
	if name == "" {
		v.Add("name", "Name is required")
		return
	}
	if len(name) > maxNameLength {
		v.Add("name", "Name cannot exceed 200 characters")
	}
}

func validateCategory(v *shared.ValidationError, c Category) {
	if c == "" {
		v.Add("category", "Category is required")
		return
	}
	if !c.IsValid() {
		v.Add("category", invalidCategoryMessage())
	}
}

func validatePrice(v *shared.ValidationError, price decimal.Decimal) {
	if !price.IsPositive() {
		v.Add("price", "Price must be greater than 0")
		return
	}
	if msg := shared.MoneyProblem(price); msg != "" {
		v.Add("price", "Price "+msg)
	}
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
