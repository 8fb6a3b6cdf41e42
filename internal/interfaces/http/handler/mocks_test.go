package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	analyticsapp "github.com/restaurant/backend/internal/application/analytics"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type mockMenuService struct{ mock.Mock }

func (m *mockMenuService) List(ctx context.Context, q menuapp.ListMenuItemsQuery) ([]menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]menuapp.MenuItemResponse)
	return items, args.Error(1)
}

func (m *mockMenuService) Search(ctx context.Context, query string) ([]menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]menuapp.MenuItemResponse)
	return items, args.Error(1)
}

func (m *mockMenuService) GetByID(ctx context.Context, id uuid.UUID) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

func (m *mockMenuService) Create(ctx context.Context, req menuapp.CreateMenuItemRequest) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, req)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

func (m *mockMenuService) Update(ctx context.Context, id uuid.UUID, req menuapp.UpdateMenuItemRequest) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, id, req)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

func (m *mockMenuService) ToggleAvailability(ctx context.Context, id uuid.UUID, available bool) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, id, available)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

func (m *mockMenuService) Delete(ctx context.Context, id uuid.UUID) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

func (m *mockMenuService) AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (*menuapp.MenuItemResponse, error) {
	args := m.Called(ctx, id, filename, contentType, data)
	item, _ := args.Get(0).(*menuapp.MenuItemResponse)
	return item, args.Error(1)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) Create(ctx context.Context, req orderapp.CreateOrderRequest, key string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, req, key)
	o, _ := args.Get(0).(*orderapp.OrderResponse)
	return o, args.Error(1)
}

func (m *mockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*orderapp.OrderResponse)
	return o, args.Error(1)
}

func (m *mockOrderService) List(ctx context.Context, q orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error) {
	args := m.Called(ctx, q)
	page, _ := args.Get(0).(*orderapp.OrderListResponse)
	return page, args.Error(1)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	o, _ := args.Get(0).(*orderapp.OrderResponse)
	return o, args.Error(1)
}

func (m *mockOrderService) KitchenTicket(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, id)
	body, _ := args.Get(0).([]byte)
	return body, args.String(1), args.Error(2)
}

type mockAnalyticsService struct{ mock.Mock }

func (m *mockAnalyticsService) TopSellers(ctx context.Context, limit int) ([]analyticsapp.TopSellerResponse, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]analyticsapp.TopSellerResponse)
	return items, args.Error(1)
}

// envelope is the decoded response body
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Count     *int            `json:"count"`
	Msg       string          `json:"msg"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Details   []fieldDetail   `json:"details"`
	RequestID string          `json:"requestId"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func serve(t *testing.T, r *gin.Engine, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// assertError checks an error envelope
func assertError(t *testing.T, env envelope, code, message string) {
	t.Helper()
	require.False(t, env.Success)
	require.Equal(t, code, env.Code)
	if message != "" {
		require.Equal(t, message, env.Error)
	}
}

func ptr[T any](v T) *T { return &v }
