package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"go.uber.org/zap"
)

const (
	msgInvalidOrderID = "Invalid order ID"
	msgOrderNotFound  = "order not found"

	// IdempotencyKeyHeader lets clients make order submission retry-safe
	IdempotencyKeyHeader = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
)

// OrderService is the order use-case surface the handler needs
type OrderService interface {
	Create(ctx context.Context, req orderapp.CreateOrderRequest, idempotencyKey string) (*orderapp.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)
	List(ctx context.Context, q orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error)
	KitchenTicket(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	service OrderService
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(service OrderService, l *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(l), service: service}
}

// RegisterRoutes mounts the order routes under rg
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.GET("/:id/ticket", h.Ticket)
}

// List godoc
// @Summary      List orders
// @Description  Newest first, paginated. A page past the end returns an empty list with the same totals.
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "Status"  Enums(Pending, Preparing, Ready, Delivered, Cancelled)
// @Param        page    query  int     false  "Page (1-based)"  default(1)
// @Param        limit   query  int     false  "Page size"       default(6)
// @Success      200  {object}  OrderListResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q orderapp.ListOrdersQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Get godoc
// @Summary      Get an order
// @Description  Line items carry the current menu item, or null when it was deleted
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidOrderID)
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleResourceError(c, err, msgOrderNotFound)
		return
	}
	h.Success(c, o)
}

// Create godoc
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                       false  "Reject resubmission of the same order"
// @Param        request          body    orderapp.CreateOrderRequest  true   "Order"
// @Success      201  {object}  OrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Duplicate submission"
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		h.BadRequest(c, fmt.Sprintf("%s must be at most %d characters", IdempotencyKeyHeader, maxIdempotencyKeyLen))
		return
	}

	var req orderapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	o, err := h.service.Create(c.Request.Context(), req, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// UpdateStatus godoc
// @Summary      Change order status
// @Description  Any status may follow any other
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Order ID"
// @Param        request  body  orderapp.UpdateStatusRequest  true  "New status"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidOrderID)
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.handleResourceError(c, err, msgOrderNotFound)
		return
	}
	h.Success(c, o)
}

// Ticket godoc
// @Summary      Kitchen ticket
// @Description  Printable ticket as HTML, or PDF when PDF rendering is enabled
// @Tags         orders
// @Produce      html
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse  "Printing not configured"
// @Router       /orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidOrderID)
	if !ok {
		return
	}

	body, contentType, err := h.service.KitchenTicket(c.Request.Context(), id)
	if err != nil {
		h.handleResourceError(c, err, msgOrderNotFound)
		return
	}
	if strings.HasPrefix(contentType, "application/pdf") {
		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="ticket-%s.pdf"`, id))
	}
	c.Data(http.StatusOK, contentType, body)
}
