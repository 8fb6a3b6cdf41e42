package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository implements order.Repository on the orders collection
type OrderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(OrdersCollection)}
}

// orderFilter translates a listing filter into a query document and
// find options: newest first, skip (page-1)*limit
func orderFilter(f order.Filter) (bson.M, *options.FindOptions) {
	q := bson.M{}
	if f.Status != nil {
		q["status"] = string(*f.Status)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(shared.Offset(f.Page, f.Limit))).
		SetLimit(int64(f.Limit))
	return q, opts
}

// Create inserts a new order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	doc, err := newOrderDocument(o)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return translateError("insert order", err)
}

// FindByID finds an order by its ID
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translateError("find order", err)
	}
	return doc.toDomain()
}

// FindAll returns one page of orders and the number matching the filter
func (r *OrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, int64, error) {
	q, opts := orderFilter(filter)

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, translateError("count orders", err)
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, translateError("find orders", err)
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, translateError("find orders", err)
	}

	orders := make([]order.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, nil
}

// UpdateStatus sets the status with a single findOneAndUpdate
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*order.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		return nil, translateError("update order status", err)
	}
	return doc.toDomain()
}

// Ensure OrderRepository implements order.Repository
var _ order.Repository = (*OrderRepository)(nil)
