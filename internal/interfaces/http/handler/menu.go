package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	"github.com/restaurant/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	msgInvalidMenuID    = "Invalid menu id"
	msgMenuItemNotFound = "menu item not found"
	// DefaultMaxImageSize applies when the handler is built without a limit
	DefaultMaxImageSize int64 = 5 << 20
)

// MenuService is the catalog use-case surface the handler needs
type MenuService interface {
	List(ctx context.Context, q menuapp.ListMenuItemsQuery) ([]menuapp.MenuItemResponse, error)
	Search(ctx context.Context, query string) ([]menuapp.MenuItemResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*menuapp.MenuItemResponse, error)
	Create(ctx context.Context, req menuapp.CreateMenuItemRequest) (*menuapp.MenuItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req menuapp.UpdateMenuItemRequest) (*menuapp.MenuItemResponse, error)
	ToggleAvailability(ctx context.Context, id uuid.UUID, available bool) (*menuapp.MenuItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*menuapp.MenuItemResponse, error)
	AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (*menuapp.MenuItemResponse, error)
}

// MenuHandler handles menu item endpoints
type MenuHandler struct {
	BaseHandler
	service      MenuService
	maxImageSize int64
}

// NewMenuHandler creates a MenuHandler. maxImageSize <= 0 selects
// DefaultMaxImageSize.
func NewMenuHandler(service MenuService, maxImageSize int64, l *zap.Logger) *MenuHandler {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &MenuHandler{
		BaseHandler:  NewBaseHandler(l),
		service:      service,
		maxImageSize: maxImageSize,
	}
}

// RegisterRoutes mounts the menu routes under rg
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/menu")
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PATCH("/:id/availability", h.ToggleAvailability)
	g.POST("/:id/image", h.UploadImage)
}

// List godoc
// @Summary      List menu items
// @Description  Returns menu items filtered by category, availability and price range
// @Tags         menu
// @Produce      json
// @Param        category     query  string  false  "Category"  Enums(Appetizer, Main Course, Dessert, Beverage)
// @Param        isAvailable  query  bool    false  "Availability"
// @Param        minPrice     query  number  false  "Minimum price"
// @Param        maxPrice     query  number  false  "Maximum price"
// @Success      200  {object}  MenuItemListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	var q menuapp.ListMenuItemsQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// Search godoc
// @Summary      Search menu items
// @Description  Full-text search over name, description and ingredients with substring fallback
// @Tags         menu
// @Produce      json
// @Param        q  query  string  true  "Search text"
// @Success      200  {object}  MenuItemListResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /menu/search [get]
func (h *MenuHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		h.BadRequest(c, "Please enter a search query")
		return
	}

	items, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// Get godoc
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Param        id  path  string  true  "Menu item ID"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /menu/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidMenuID)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleResourceError(c, err, msgMenuItemNotFound)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        request  body  menuapp.CreateMenuItemRequest  true  "Menu item"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Name already in use"
// @Router       /menu [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req menuapp.CreateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @Summary      Update a menu item
// @Description  Partial update; omitted fields keep their value
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Menu item ID"
// @Param        request  body  menuapp.UpdateMenuItemRequest  true  "Fields to change"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /menu/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidMenuID)
	if !ok {
		return
	}
	var req menuapp.UpdateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleResourceError(c, err, msgMenuItemNotFound)
		return
	}
	h.SuccessWithMsg(c, item, "menu item updated")
}

// Delete godoc
// @Summary      Delete a menu item
// @Description  Returns the deleted item. Orders that reference it keep their lines.
// @Tags         menu
// @Produce      json
// @Param        id  path  string  true  "Menu item ID"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /menu/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidMenuID)
	if !ok {
		return
	}

	item, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleResourceError(c, err, msgMenuItemNotFound)
		return
	}
	h.SuccessWithMsg(c, item, "item deleted")
}

// ToggleAvailability godoc
// @Summary      Set menu item availability
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id       path  string                             true  "Menu item ID"
// @Param        request  body  menuapp.UpdateAvailabilityRequest  true  "Availability"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /menu/{id}/availability [patch]
func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidMenuID)
	if !ok {
		return
	}
	var req menuapp.UpdateAvailabilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.ToggleAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		h.handleResourceError(c, err, msgMenuItemNotFound)
		return
	}
	h.SuccessWithMsg(c, item, "Menu availability status updated")
}

// UploadImage godoc
// @Summary      Upload a menu item image
// @Description  Stores the image in object storage and sets imageUrl
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Menu item ID"
// @Param        image  formData  file    true  "JPEG, PNG, WebP or GIF"
// @Success      200  {object}  MenuItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse  "Storage not configured"
// @Router       /menu/{id}/image [post]
func (h *MenuHandler) UploadImage(c *gin.Context) {
	id, ok := h.parseID(c, msgInvalidMenuID)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Form field 'image' is required")
		return
	}
	if fh.Size > h.maxImageSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Image exceeds maximum allowed size")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded image")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImageSize+1))
	if err != nil {
		h.BadRequest(c, "Could not read uploaded image")
		return
	}
	if int64(len(data)) > h.maxImageSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Image exceeds maximum allowed size")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	item, err := h.service.AttachImage(c.Request.Context(), id, fh.Filename, contentType, data)
	if err != nil {
		h.handleResourceError(c, err, msgMenuItemNotFound)
		return
	}
	h.SuccessWithMsg(c, item, "image uploaded")
}
