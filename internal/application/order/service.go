package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	maxNumberAttempts     = 3
	defaultIdempotencyTTL = 24 * time.Hour
	idempotencyKeyPrefix  = "order:create:"
)

// ErrDuplicateRequest is returned when an idempotency key was already used
var ErrDuplicateRequest = shared.NewDomainError(shared.CodeConflict, "Duplicate request: this order was already submitted")

// Metrics records order business metrics
type Metrics interface {
	RecordOrderCreated(ctx context.Context, status string, amount float64, items int)
	RecordStatusChange(ctx context.Context, from, to string)
}

// TicketRenderer renders a kitchen ticket for an order
type TicketRenderer interface {
	Render(ctx context.Context, o OrderResponse) (body []byte, contentType string, err error)
}

// ErrTicketsDisabled is returned when no ticket renderer is configured
var ErrTicketsDisabled = shared.NewDomainError("PRINTING_DISABLED", "Kitchen tickets are not configured")

// Service handles the order lifecycle
type Service struct {
	orders         order.Repository
	menuItems      menu.Repository
	numbers        order.NumberGenerator
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	metrics        Metrics
	tickets        TicketRenderer
	logger         *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithNumberGenerator overrides the order number generator
func WithNumberGenerator(g order.NumberGenerator) Option {
	return func(s *Service) { s.numbers = g }
}

// WithIdempotency enables duplicate submission detection
func WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithMetrics sets the business metrics recorder
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTicketRenderer enables kitchen tickets
func WithTicketRenderer(r TicketRenderer) Option {
	return func(s *Service) { s.tickets = r }
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a new order Service
func NewService(orders order.Repository, menuItems menu.Repository, opts ...Option) *Service {
	s := &Service{
		orders:         orders,
		menuItems:      menuItems,
		numbers:        order.NewRandomNumberGenerator(),
		idempotencyTTL: defaultIdempotencyTTL,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create places a new order. idempotencyKey may be empty.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderResponse, error) {
	params, err := toParams(req)
	if err != nil {
		return nil, err
	}
	if err := order.Validate(params); err != nil {
		return nil, err
	}

	key := ""
	if idempotencyKey != "" && s.idempotency != nil {
		key = idempotencyKeyPrefix + idempotencyKey
		fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("check idempotency key: %w", err)
		}
		if !fresh {
			return nil, ErrDuplicateRequest
		}
	}

	o, err := s.insertWithFreshNumber(ctx, params)
	if err != nil {
		// No order was stored, so a retry with the same key must go through
		if key != "" {
			if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				s.logger.Warn("Failed to release idempotency key",
					zap.String("key", key),
					zap.Error(relErr),
				)
			}
		}
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.Int("lines", len(o.Items)),
	)
	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, string(o.Status), o.TotalAmount.InexactFloat64(), o.ItemCount())
	}

	return s.expand(ctx, o)
}

// insertWithFreshNumber assigns an order number and inserts the order,
// drawing a new number when the store reports a collision.
func (s *Service) insertWithFreshNumber(ctx context.Context, params order.NewOrderParams) (*order.Order, error) {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := s.numbers.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate order number: %w", err)
		}
		params.OrderNumber = number

		o, err := order.NewOrder(params)
		if err != nil {
			return nil, err
		}

		err = s.orders.Create(ctx, o)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		s.logger.Warn("Order number collision, retrying",
			zap.String("order_number", number),
			zap.Int("attempt", attempt),
		)
	}
	return nil, shared.NewDomainError(shared.CodeConflict, "Could not allocate a unique order number")
}

// GetByID returns an order with its lines expanded
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, o)
}

// List returns one page of orders, newest first
func (s *Service) List(ctx context.Context, q ListOrdersQuery) (*OrderListResponse, error) {
	filter, err := parseListQuery(q)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogFor(ctx, order.CollectMenuItemIDs(orders))
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.Limit)
	out := make([]OrderResponse, len(page.Items))
	for i := range page.Items {
		out[i] = ToOrderResponse(&page.Items[i], catalog)
	}

	return &OrderListResponse{
		Orders:      out,
		Page:        page.Page,
		Limit:       page.PageSize,
		TotalOrders: page.Total,
		TotalPages:  page.TotalPages,
	}, nil
}

// UpdateStatus sets the status of an order. Any valid status may follow
// any other.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var previous string
	if s.metrics != nil {
		if current, err := s.orders.FindByID(ctx, id); err == nil {
			previous = string(current.Status)
		}
	}

	o, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)),
	)
	if s.metrics != nil {
		s.metrics.RecordStatusChange(ctx, previous, string(o.Status))
	}

	return s.expand(ctx, o)
}

// KitchenTicket renders the ticket for an order
func (s *Service) KitchenTicket(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if s.tickets == nil {
		return nil, "", ErrTicketsDisabled
	}
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.tickets.Render(ctx, *o)
}

func (s *Service) expand(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	catalog, err := s.catalogFor(ctx, o.MenuItemIDs())
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o, catalog)
	return &resp, nil
}

func (s *Service) catalogFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]menu.MenuItem, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]menu.MenuItem{}, nil
	}
	items, err := s.menuItems.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return menu.Index(items), nil
}

func toParams(req CreateOrderRequest) (order.NewOrderParams, error) {
	v := &shared.ValidationError{}
	lines := make([]order.LineItem, 0, len(req.Items))

	for i, it := range req.Items {
		id, err := uuid.Parse(strings.TrimSpace(it.MenuItem))
		if err != nil {
			v.Add(fmt.Sprintf("items[%d].menuItem", i), "Invalid menuItem ID")
			continue
		}
		line := order.LineItem{MenuItemID: id, Quantity: it.Quantity}
		if it.Price == nil {
			v.Add(fmt.Sprintf("items[%d].price", i), "Price must be a number")
		} else {
			line.Price = *it.Price
		}
		lines = append(lines, line)
	}
	if req.TotalAmount == nil {
		v.Add("totalAmount", "Total amount must be a number")
	}

	var status order.Status
	if strings.TrimSpace(req.Status) != "" {
		st, err := order.ParseStatus(req.Status)
		if err != nil {
			v.Add("status", "Invalid order status")
		}
		status = st
	}

	if err := v.OrNil(); err != nil {
		return order.NewOrderParams{}, err
	}

	return order.NewOrderParams{
		CustomerName: req.CustomerName,
		TableNumber:  req.TableNumber,
		Items:        lines,
		TotalAmount:  *req.TotalAmount,
		Status:       status,
	}, nil
}

func parseListQuery(q ListOrdersQuery) (order.Filter, error) {
	v := &shared.ValidationError{}
	f := order.Filter{Page: DefaultPage, Limit: DefaultLimit}
	if q.Page != nil {
		f.Page = *q.Page
	}
	if q.Limit != nil {
		f.Limit = *q.Limit
	}

	if f.Page < 1 {
		v.Add("page", "page must be a positive integer")
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		v.Add("limit", fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	if strings.TrimSpace(q.Status) != "" {
		st, err := order.ParseStatus(q.Status)
		if err != nil {
			v.Add("status", "invalid order status")
		} else {
			f.Status = &st
		}
	}

	if err := v.OrNil(); err != nil {
		return order.Filter{}, err
	}
	return f, nil
}
