package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newMenuRouter(svc MenuService, l *zap.Logger) *gin.Engine {
	h := NewMenuHandler(svc, 1024, l)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func sampleMenuItem() *menuapp.MenuItemResponse {
	return &menuapp.MenuItemResponse{
		ID:          uuid.MustParse("6f1c1d1e-8c1a-4a43-9f4b-3c0e0d1e2f30"),
		Name:        "Masala Chai",
		Category:    "Beverage",
		Price:       decimal.NewFromInt(40),
		Ingredients: []string{"Tea", "Milk"},
		IsAvailable: true,
	}
}

func TestMenuHandler_List(t *testing.T) {
	svc := new(mockMenuService)
	r := newMenuRouter(svc, nil)

	svc.On("List", mock.Anything, menuapp.ListMenuItemsQuery{Category: "Beverage", IsAvailable: "true", MaxPrice: "100"}).
		Return([]menuapp.MenuItemResponse{*sampleMenuItem()}, nil)

	w, env := serve(t, r, http.MethodGet, "/api/menu?category=Beverage&isAvailable=true&maxPrice=100", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Equal(t, "Masala Chai", items[0]["name"])
	assert.Equal(t, float64(40), items[0]["price"], "price is a JSON number")
	svc.AssertExpectations(t)
}

func TestMenuHandler_List_ValidationError(t *testing.T) {
	svc := new(mockMenuService)
	r := newMenuRouter(svc, nil)

	verr := shared.NewValidationError("minPrice", "minPrice must be a number")
	svc.On("List", mock.Anything, mock.Anything).Return(nil, verr)

	w, env := serve(t, r, http.MethodGet, "/api/menu?minPrice=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertError(t, env, dto.ErrCodeValidation, "")
	assert.Equal(t, []fieldDetail{{Field: "minPrice", Message: "minPrice must be a number"}}, env.Details)
}

func TestMenuHandler_Search(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		w, env := serve(t, r, http.MethodGet, "/api/menu/search?q=%20%20", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertError(t, env, dto.ErrCodeBadRequest, "Please enter a search query")
		svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("results with count", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Search", mock.Anything, "chai").Return([]menuapp.MenuItemResponse{*sampleMenuItem()}, nil)

		w, env := serve(t, r, http.MethodGet, "/api/menu/search?q=chai", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Count)
		assert.Equal(t, 1, *env.Count)
	})

	t.Run("no results is an empty array", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Search", mock.Anything, "xyz").Return(nil, nil)

		w, env := serve(t, r, http.MethodGet, "/api/menu/search?q=xyz", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
		assert.Equal(t, 0, *env.Count)
	})
}

func TestMenuHandler_Get(t *testing.T) {
	item := sampleMenuItem()

	tests := []struct {
		name       string
		path       string
		setup      func(*mockMenuService)
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "found",
			path:       "/api/menu/" + item.ID.String(),
			setup:      func(m *mockMenuService) { m.On("GetByID", mock.Anything, item.ID).Return(item, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed id",
			path:       "/api/menu/not-an-id",
			setup:      func(*mockMenuService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidID,
			wantError:  "Invalid menu id",
		},
		{
			name:       "not found",
			path:       "/api/menu/" + item.ID.String(),
			setup:      func(m *mockMenuService) { m.On("GetByID", mock.Anything, item.ID).Return(nil, shared.ErrNotFound) },
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
			wantError:  "menu item not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockMenuService)
			tt.setup(svc)
			r := newMenuRouter(svc, nil)

			w, env := serve(t, r, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assertError(t, env, tt.wantCode, tt.wantError)
			} else {
				assert.True(t, env.Success)
			}
		})
	}
}

func TestMenuHandler_Create(t *testing.T) {
	t.Run("created answers 200", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req menuapp.CreateMenuItemRequest) bool {
			return req.Name == "Masala Chai" && req.Price.Equal(decimal.NewFromInt(40))
		})).Return(sampleMenuItem(), nil)

		w, env := serve(t, r, http.MethodPost, "/api/menu", `{"name":"Masala Chai","category":"Beverage","price":40}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		svc.AssertExpectations(t)
	})

	t.Run("binding errors list json fields", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		w, env := serve(t, r, http.MethodPost, "/api/menu", `{"description":"no name"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertError(t, env, dto.ErrCodeValidation, "Request validation failed")
		fields := make([]string, 0, len(env.Details))
		for _, d := range env.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"name", "category", "price"}, fields)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		w, env := serve(t, r, http.MethodPost, "/api/menu", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertError(t, env, dto.ErrCodeInvalidJSON, "")
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeAlreadyExists, `Menu item "Masala Chai" already exists`))

		w, env := serve(t, r, http.MethodPost, "/api/menu", `{"name":"Masala Chai","category":"Beverage","price":40}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assertError(t, env, dto.ErrCodeAlreadyExists, `Menu item "Masala Chai" already exists`)
	})

	t.Run("store failure is not echoed", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		svc := new(mockMenuService)
		r := newMenuRouter(svc, zap.New(core))
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused"))

		w, env := serve(t, r, http.MethodPost, "/api/menu", `{"name":"Masala Chai","category":"Beverage","price":40}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assertError(t, env, dto.ErrCodeInternal, "Server Error")
		assert.NotContains(t, w.Body.String(), "connection refused")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "pq: connection refused", logs.All()[0].ContextMap()["error"])
	})
}

func TestMenuHandler_Update(t *testing.T) {
	item := sampleMenuItem()
	svc := new(mockMenuService)
	r := newMenuRouter(svc, nil)
	svc.On("Update", mock.Anything, item.ID, mock.MatchedBy(func(req menuapp.UpdateMenuItemRequest) bool {
		return req.Name == nil && req.Price != nil && req.Price.Equal(decimal.NewFromInt(45))
	})).Return(item, nil)

	w, env := serve(t, r, http.MethodPut, "/api/menu/"+item.ID.String(), `{"price":45}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "menu item updated", env.Msg)
	svc.AssertExpectations(t)
}

func TestMenuHandler_Delete(t *testing.T) {
	item := sampleMenuItem()

	t.Run("returns deleted item", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Delete", mock.Anything, item.ID).Return(item, nil)

		w, env := serve(t, r, http.MethodDelete, "/api/menu/"+item.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "item deleted", env.Msg)
		assert.Contains(t, string(env.Data), "Masala Chai")
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("Delete", mock.Anything, item.ID).Return(nil, shared.ErrNotFound)

		w, env := serve(t, r, http.MethodDelete, "/api/menu/"+item.ID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assertError(t, env, dto.ErrCodeNotFound, "menu item not found")
	})
}

func TestMenuHandler_ToggleAvailability(t *testing.T) {
	item := sampleMenuItem()

	t.Run("sets flag", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("ToggleAvailability", mock.Anything, item.ID, false).Return(item, nil)

		w, env := serve(t, r, http.MethodPatch, "/api/menu/"+item.ID.String()+"/availability", `{"isAvailable":false}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Menu availability status updated", env.Msg)
		svc.AssertExpectations(t)
	})

	t.Run("flag is required", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		w, env := serve(t, r, http.MethodPatch, "/api/menu/"+item.ID.String()+"/availability", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, env.Details, 1)
		assert.Equal(t, "isAvailable", env.Details[0].Field)
		svc.AssertNotCalled(t, "ToggleAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("flag must be boolean", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		w, _ := serve(t, r, http.MethodPatch, "/api/menu/"+item.ID.String()+"/availability", `{"isAvailable":"yes"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestMenuHandler_UploadImage(t *testing.T) {
	item := sampleMenuItem()
	png := []byte("\x89PNG\r\n\x1a\n0000")

	upload := func(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/menu/"+item.ID.String()+"/image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("uploads", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("AttachImage", mock.Anything, item.ID, "chai.png", "image/png", png).Return(item, nil)

		body, ct := multipartImage(t, "image", "chai.png", "image/png", png)
		w := upload(r, body, ct)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("sniffs octet-stream", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("AttachImage", mock.Anything, item.ID, "chai.png", "image/png", png).Return(item, nil)

		body, ct := multipartImage(t, "image", "chai.png", "application/octet-stream", png)
		w := upload(r, body, ct)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		body, ct := multipartImage(t, "photo", "chai.png", "image/png", png)
		w := upload(r, body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)

		body, ct := multipartImage(t, "image", "big.png", "image/png", bytes.Repeat([]byte("x"), 2048))
		w := upload(r, body, ct)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		svc.AssertNotCalled(t, "AttachImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := new(mockMenuService)
		r := newMenuRouter(svc, nil)
		svc.On("AttachImage", mock.Anything, item.ID, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, menuapp.ErrImageStorageDisabled)

		body, ct := multipartImage(t, "image", "chai.png", "image/png", png)
		w := upload(r, body, ct)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeUnavailable)
	})
}
