package mongodb

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/analytics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TopSellerRepository implements analytics.Repository with an
// aggregation over the orders collection
type TopSellerRepository struct {
	orders *mongo.Collection
}

// NewTopSellerRepository creates a new TopSellerRepository
func NewTopSellerRepository(db *mongo.Database) *TopSellerRepository {
	return &TopSellerRepository{orders: db.Collection(OrdersCollection)}
}

// topSellersPipeline unwinds order lines, sums quantity per menu item,
// joins the current menu (dropping vanished items) and keeps the top
// limit entries ordered by total, then name, then id.
func topSellersPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.menuItem"},
			{Key: "totalSold", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: MenuItemsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItemDetails"},
		}}},
		{{Key: "$unwind", Value: "$menuItemDetails"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalSold", Value: -1},
			{Key: "menuItemDetails.name", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
	}
}

type topSellerDocument struct {
	ID              string           `bson:"_id"`
	TotalSold       int64            `bson:"totalSold"`
	MenuItemDetails menuItemDocument `bson:"menuItemDetails"`
}

// TopSellers returns the limit best-selling items still on the menu
func (r *TopSellerRepository) TopSellers(ctx context.Context, limit int) ([]analytics.TopSeller, error) {
	cur, err := r.orders.Aggregate(ctx, topSellersPipeline(limit))
	if err != nil {
		return nil, translateError("aggregate top sellers", err)
	}
	var docs []topSellerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError("aggregate top sellers", err)
	}

	result := make([]analytics.TopSeller, 0, len(docs))
	for i := range docs {
		id, err := uuid.Parse(docs[i].ID)
		if err != nil {
			return nil, translateError("aggregate top sellers", err)
		}
		item, err := docs[i].MenuItemDetails.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, analytics.TopSeller{
			MenuItemID: id,
			TotalSold:  docs[i].TotalSold,
			MenuItem:   *item,
		})
	}
	return result, nil
}

// Ensure TopSellerRepository implements analytics.Repository
var _ analytics.Repository = (*TopSellerRepository)(nil)
