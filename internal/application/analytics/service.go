package analytics

import (
	"context"

	"github.com/google/uuid"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	"github.com/restaurant/backend/internal/domain/analytics"
)

// TopSellerResponse is one entry of the best-sellers ranking
type TopSellerResponse struct {
	MenuItemID      uuid.UUID                `json:"menuItemId"`
	TotalSold       int64                    `json:"totalSold"`
	MenuItemDetails menuapp.MenuItemResponse `json:"menuItemDetails"`
}

// Service serves derived sales views
type Service struct {
	repo analytics.Repository
}

// NewService creates a new analytics Service
func NewService(repo analytics.Repository) *Service {
	return &Service{repo: repo}
}

// TopSellers returns the best-selling menu items by total quantity ordered.
// A non-positive limit selects the default of 5.
func (s *Service) TopSellers(ctx context.Context, limit int) ([]TopSellerResponse, error) {
	entries, err := s.repo.TopSellers(ctx, analytics.ClampLimit(limit))
	if err != nil {
		return nil, err
	}

	out := make([]TopSellerResponse, len(entries))
	for i := range entries {
		out[i] = TopSellerResponse{
			MenuItemID:      entries[i].MenuItemID,
			TotalSold:       entries[i].TotalSold,
			MenuItemDetails: menuapp.ToMenuItemResponse(&entries[i].MenuItem),
		}
	}
	return out, nil
}
