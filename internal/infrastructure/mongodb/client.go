// Package mongodb stores menu items and orders in MongoDB. Collection and
// field names follow the earlier Node service, but ids are UUID strings and
// amounts are Decimal128, so documents that service wrote (ObjectId ids,
// double prices) must be converted before this package can read them.
package mongodb

import (
	"context"
	"fmt"

	"github.com/restaurant/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names
const (
	MenuItemsCollection = "menuitems"
	OrdersCollection    = "orders"
)

// Client wraps a connected mongo client and the application database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect dials MongoDB and verifies the connection with a ping
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns)).
		SetAppName("restaurant-api")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	return &Client{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		logger: logger,
	}, nil
}

// Database returns the application database
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping checks the primary is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Indexes returns the index models of every collection
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		MenuItemsCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("name_unique").SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "name", Value: "text"},
					{Key: "ingredients", Value: "text"},
					{Key: "description", Value: "text"},
				},
				Options: options.Index().SetName("menu_text"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "isAvailable", Value: 1}},
				Options: options.Index().SetName("category_available"),
			},
		},
		OrdersCollection: {
			{
				Keys:    bson.D{{Key: "orderNumber", Value: 1}},
				Options: options.Index().SetName("order_number_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("status_created"),
			},
			{
				Keys:    bson.D{{Key: "items.menuItem", Value: 1}},
				Options: options.Index().SetName("items_menu_item"),
			},
		},
	}
}

// EnsureIndexes creates any missing index. Existing indexes with the same
// definition are left alone by the server.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	for coll, models := range Indexes() {
		names, err := c.db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
		c.logger.Debug("Indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}
