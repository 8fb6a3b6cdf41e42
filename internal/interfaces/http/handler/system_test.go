package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/restaurant/backend/internal/application/analytics"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAnalyticsHandler_TopSellers(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default", query: "", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "explicit", query: "?limit=10", wantLimit: 10, wantStatus: http.StatusOK},
		{name: "not a number", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAnalyticsService)
			h := NewAnalyticsHandler(svc, nil)
			r := gin.New()
			h.RegisterRoutes(r.Group("/api"))
			if tt.wantStatus == http.StatusOK {
				svc.On("TopSellers", mock.Anything, tt.wantLimit).Return([]analyticsapp.TopSellerResponse{}, nil)
			}

			w, env := serve(t, r, http.MethodGet, "/api/analytics/top-sellers"+tt.query, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `[]`, string(env.Data))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	newRouter := func(checks map[string]Pinger) *gin.Engine {
		h := NewHealthHandler("1.0.0", checks, nil)
		r := gin.New()
		r.GET("/", h.Root)
		r.GET("/health", h.Health)
		r.GET("/ready", h.Ready)
		return r
	}

	t.Run("root", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.JSONEq(t, `{"msg":"app is up and running"}`, w.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","version":"1.0.0"}`, w.Body.String())
	})

	t.Run("ready", func(t *testing.T) {
		r := newRouter(map[string]Pinger{
			"database": PingFunc(func(context.Context) error { return nil }),
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","checks":{"database":"up"}}`, w.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		r := newRouter(map[string]Pinger{
			"database": PingFunc(func(context.Context) error { return nil }),
			"redis":    PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","checks":{"database":"up","redis":"down"}}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "refused")
	})
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{name: "from context", setup: func(c *gin.Context) { c.Set("request_id", "ctx-id") }, want: "ctx-id"},
		{name: "from header", setup: func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "hdr-id") }, want: "hdr-id"},
		{name: "context wins", setup: func(c *gin.Context) {
			c.Set("request_id", "ctx-id")
			c.Request.Header.Set(middleware.RequestIDHeader, "hdr-id")
		}, want: "ctx-id"},
		{name: "empty", setup: func(*gin.Context) {}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)
			assert.Equal(t, tt.want, getRequestID(c))
		})
	}
}
