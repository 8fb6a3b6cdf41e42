package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMenuItemRepository is a mock implementation of menu.Repository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindAll(ctx context.Context, filter menu.Filter) ([]menu.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Search(ctx context.Context, query string) ([]menu.MenuItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]menu.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *menu.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockImageStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func ptr[T any](v T) *T { return &v }

func newTestItem(t *testing.T, name string) *menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(name, menu.CategoryBeverage, decimal.NewFromInt(40))
	require.NoError(t, err)
	return item
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("parses filters", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		lo := decimal.NewFromInt(100)
		hi := decimal.NewFromInt(250)
		cat := menu.CategoryMainCourse
		avail := true
		want := menu.Filter{Category: &cat, IsAvailable: &avail, MinPrice: &lo, MaxPrice: &hi}

		repo.On("FindAll", ctx, mock.MatchedBy(func(f menu.Filter) bool {
			return *f.Category == *want.Category && *f.IsAvailable && f.MinPrice.Equal(lo) && f.MaxPrice.Equal(hi)
		})).Return([]menu.MenuItem{*newTestItem(t, "Paneer Butter Masala")}, nil)

		got, err := svc.List(ctx, ListMenuItemsQuery{
			Category:    "Main Course",
			IsAvailable: "true",
			MinPrice:    "100",
			MaxPrice:    "250",
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("empty query lists everything", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		repo.On("FindAll", ctx, menu.Filter{}).Return([]menu.MenuItem{}, nil)

		got, err := svc.List(ctx, ListMenuItemsQuery{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects malformed filters", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		_, err := svc.List(ctx, ListMenuItemsQuery{IsAvailable: "maybe", MinPrice: "cheap"})
		var ve *shared.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Fields, 2)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query is a validation error", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		_, err := svc.Search(ctx, "   ")
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("trims and delegates", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		repo.On("Search", ctx, "pizza (large)").Return([]menu.MenuItem{*newTestItem(t, "Pizza (Large)")}, nil)

		got, err := svc.Search(ctx, "  pizza (large) ")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pizza (Large)", got[0].Name)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with optional fields", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		repo.On("ExistsByName", ctx, "Tea", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*menu.MenuItem")).Return(nil)

		got, err := svc.Create(ctx, CreateMenuItemRequest{
			Name:            "Tea",
			Category:        "Beverage",
			Price:           ptr(decimal.NewFromInt(40)),
			Ingredients:     []string{"Tea", "Milk"},
			PreparationTime: ptr(5),
		})
		require.NoError(t, err)
		assert.Equal(t, "Tea", got.Name)
		assert.True(t, got.IsAvailable)
		assert.Equal(t, []string{"Tea", "Milk"}, got.Ingredients)
		assert.Equal(t, 5, *got.PreparationTime)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		repo.On("ExistsByName", ctx, "Tea", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CreateMenuItemRequest{Name: "Tea", Category: "Beverage", Price: ptr(decimal.NewFromInt(40))})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store constraint is the backstop", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		repo.On("ExistsByName", ctx, "Tea", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := svc.Create(ctx, CreateMenuItemRequest{Name: "Tea", Category: "Beverage", Price: ptr(decimal.NewFromInt(40))})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid category blocks creation", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateMenuItemRequest{Name: "Tea", Category: "Drinks", Price: ptr(decimal.NewFromInt(40))})
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-positive price blocks creation", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateMenuItemRequest{Name: "Tea", Category: "Beverage", Price: ptr(decimal.Zero)})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		item := newTestItem(t, "Tea")

		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("Update", ctx, item).Return(nil)

		got, err := svc.Update(ctx, item.ID, UpdateMenuItemRequest{Price: ptr(decimal.NewFromInt(45))})
		require.NoError(t, err)
		assert.Equal(t, "Tea", got.Name)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(45)))
		repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		item := newTestItem(t, "Tea")

		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("ExistsByName", ctx, "Coffee", &item.ID).Return(true, nil)

		_, err := svc.Update(ctx, item.ID, UpdateMenuItemRequest{Name: ptr("Coffee")})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id, UpdateMenuItemRequest{Name: ptr("X")})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		item := newTestItem(t, "Tea")
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := svc.Update(ctx, item.ID, UpdateMenuItemRequest{Price: ptr(decimal.NewFromInt(-1))})
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_ToggleAvailability(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMenuItemRepository)
	svc := NewService(repo)
	item := newTestItem(t, "Tea")

	repo.On("FindByID", ctx, item.ID).Return(item, nil)
	repo.On("Update", ctx, item).Return(nil)

	got, err := svc.ToggleAvailability(ctx, item.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, "Tea", got.Name)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted item", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		item := newTestItem(t, "Tea")

		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("Delete", ctx, item.ID).Return(nil)

		got, err := svc.Delete(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		svc := NewService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_AttachImage(t *testing.T) {
	ctx := context.Background()
	data := []byte{0x89, 'P', 'N', 'G'}

	t.Run("disabled storage", func(t *testing.T) {
		svc := NewService(new(MockMenuItemRepository))
		_, err := svc.AttachImage(ctx, uuid.New(), "a.png", "image/png", data)
		assert.ErrorIs(t, err, ErrImageStorageDisabled)
	})

	t.Run("uploads and sets url", func(t *testing.T) {
		repo := new(MockMenuItemRepository)
		images := new(MockImageStorage)
		svc := NewService(repo, WithImageStorage(images))
		item := newTestItem(t, "Tea")

		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		images.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > 0 && key[len(key)-4:] == ".png"
		}), data, "image/png").Return(nil)
		images.On("PublicURL", mock.Anything).Return("https://cdn.example.com/tea.png")
		repo.On("Update", ctx, item).Return(nil)

		got, err := svc.AttachImage(ctx, item.ID, "tea.png", "image/png", data)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/tea.png", got.ImageURL)
		images.AssertExpectations(t)
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		svc := NewService(new(MockMenuItemRepository), WithImageStorage(new(MockImageStorage)))
		_, err := svc.AttachImage(ctx, uuid.New(), "menu.pdf", "application/pdf", data)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}
