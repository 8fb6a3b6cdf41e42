package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImageStorage stores menu item images and reports their public location.
// Implemented by the object storage layer.
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// ErrImageStorageDisabled is returned by AttachImage when no storage is configured
var ErrImageStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Image storage is not configured")

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Service handles menu catalog operations
type Service struct {
	repo   menu.Repository
	images ImageStorage
	logger *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithImageStorage enables image uploads
func WithImageStorage(s ImageStorage) Option {
	return func(svc *Service) {
		svc.images = s
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(svc *Service) {
		svc.logger = l
	}
}

// NewService creates a new menu Service
func NewService(repo menu.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns menu items matching the query filters
func (s *Service) List(ctx context.Context, q ListMenuItemsQuery) ([]MenuItemResponse, error) {
	filter, err := parseFilter(q)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponses(items), nil
}

// Search runs a text search with literal substring fallback
func (s *Service) Search(ctx context.Context, query string) ([]MenuItemResponse, error) {
	q, err := menu.NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponses(items), nil
}

// GetByID returns a single menu item
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Create creates a new menu item
func (s *Service) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	category, err := menu.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, shared.NewValidationError("price", "Price is required")
	}

	item, err := menu.NewMenuItem(req.Name, category, *req.Price)
	if err != nil {
		return nil, err
	}

	patch := menu.Patch{
		Description:     &req.Description,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
		ImageURL:        &req.ImageURL,
	}
	if req.Ingredients != nil {
		patch.Ingredients = &req.Ingredients
	}
	if err := item.Apply(patch); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, item.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nameTaken(item.Name)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nameTaken(item.Name)
		}
		return nil, err
	}

	s.logger.Info("Menu item created",
		zap.String("menu_item_id", item.ID.String()),
		zap.String("name", item.Name),
	)

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Update applies a partial update to a menu item
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	patch := menu.Patch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Ingredients:     req.Ingredients,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
	}
	if req.Category != nil {
		c, err := menu.ParseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &c
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Apply(patch); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		exists, err := s.repo.ExistsByName(ctx, item.Name, &item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, nameTaken(item.Name)
		}
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nameTaken(item.Name)
		}
		return nil, err
	}

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// ToggleAvailability sets only the isAvailable flag
func (s *Service) ToggleAvailability(ctx context.Context, id uuid.UUID, available bool) (*MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.SetAvailability(available)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Delete removes a menu item and returns it. Orders that reference the
// item are left untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Menu item deleted", zap.String("menu_item_id", id.String()))

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// AttachImage uploads an image for a menu item and points imageUrl at it
func (s *Service) AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (*MenuItemResponse, error) {
	if s.images == nil {
		return nil, ErrImageStorageDisabled
	}

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError("image", "Unsupported image type: "+contentType)
	}
	if len(data) == 0 {
		return nil, shared.NewValidationError("image", "Image is empty")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("menu-items/%s/%s%s", item.ID, uuid.NewString(), ext)
	if err := s.images.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	item.SetImageURL(s.images.PublicURL(key))
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Menu item image uploaded",
		zap.String("menu_item_id", item.ID.String()),
		zap.String("filename", filename),
		zap.String("key", key),
	)

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

func nameTaken(name string) error {
	return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Menu item %q already exists", name))
}

func parseFilter(q ListMenuItemsQuery) (menu.Filter, error) {
	var f menu.Filter
	v := &shared.ValidationError{}

	if strings.TrimSpace(q.Category) != "" {
		c, err := menu.ParseCategory(q.Category)
		if err != nil {
			v.Add("category", "Invalid category")
		} else {
			f.Category = &c
		}
	}
	if strings.TrimSpace(q.IsAvailable) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(q.IsAvailable))
		if err != nil {
			v.Add("isAvailable", "isAvailable must be true or false")
		} else {
			f.IsAvailable = &b
		}
	}
	f.MinPrice = parsePrice(v, "minPrice", q.MinPrice)
	f.MaxPrice = parsePrice(v, "maxPrice", q.MaxPrice)

	if err := v.OrNil(); err != nil {
		return menu.Filter{}, err
	}
	return f, nil
}

func parsePrice(v *shared.ValidationError, field, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		v.Add(field, field+" must be a number")
		return nil
	}
	return &d
}
