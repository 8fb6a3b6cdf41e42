package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/restaurant/backend/internal/application/analytics"
	"go.uber.org/zap"
)

// AnalyticsService is the analytics use-case surface the handler needs
type AnalyticsService interface {
	TopSellers(ctx context.Context, limit int) ([]analyticsapp.TopSellerResponse, error)
}

// AnalyticsHandler serves sales analytics
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler
func NewAnalyticsHandler(service AnalyticsService, l *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: NewBaseHandler(l), service: service}
}

// RegisterRoutes mounts the analytics routes under rg
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/top-sellers", h.TopSellers)
}

// TopSellers godoc
// @Summary      Top selling menu items
// @Description  Quantities summed over all orders, highest first. Ties break by name, then id.
// @Tags         analytics
// @Produce      json
// @Param        limit  query  int  false  "How many items"  default(5)
// @Success      200  {object}  TopSellersResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /analytics/top-sellers [get]
func (h *AnalyticsHandler) TopSellers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	items, err := h.service.TopSellers(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
