// Package handler contains the gin handlers of the restaurant API.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"github.com/restaurant/backend/internal/interfaces/http/dto"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// genericServerError is the only text a client sees for unexpected failures
const genericServerError = "Server Error"

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a BaseHandler. A nil logger is replaced by a no-op one.
func NewBaseHandler(l *zap.Logger) BaseHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return BaseHandler{logger: l}
}

func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMsg sends a 200 response with a message
func (h *BaseHandler) SuccessWithMsg(c *gin.Context, data any, msg string) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMsg(data, msg))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 response with per-field details
func (h *BaseHandler) ValidationError(c *gin.Context, details []shared.FieldError) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleError maps a service error to a response. Validation errors carry
// their field details, domain errors map through their code, and anything
// else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		h.ValidationError(c, verr.Fields)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code != dto.ErrCodeInternal {
			h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
			return
		}
	}

	_ = c.Error(err)
	logger.Or(c.Request.Context(), h.logger).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericServerError)
}

// handleResourceError is HandleError with resource specific not-found text
func (h *BaseHandler) handleResourceError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, shared.ErrNotFound) {
		h.NotFound(c, notFound)
		return
	}
	h.HandleError(c, err)
}

// bindJSON decodes the body into req and writes a 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindQuery decodes the query string into req and writes a 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

// parseID reads the :id path parameter, writing a 400 with invalidMsg
// when it is not a valid identifier.
func (h *BaseHandler) parseID(c *gin.Context, invalidMsg string) (uuid.UUID, bool) {
	id, err := shared.ParseID(strings.TrimSpace(c.Param("id")))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, invalidMsg)
		return uuid.Nil, false
	}
	return id, true
}
