package mongodb

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menu"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MenuItemRepository implements menu.Repository on the menuitems collection
type MenuItemRepository struct {
	coll *mongo.Collection
}

// NewMenuItemRepository creates a new MenuItemRepository
func NewMenuItemRepository(db *mongo.Database) *MenuItemRepository {
	return &MenuItemRepository{coll: db.Collection(MenuItemsCollection)}
}

// menuFilter translates a listing filter into a query document
func menuFilter(f menu.Filter) (bson.M, error) {
	q := bson.M{}
	if f.Category != nil {
		q["category"] = string(*f.Category)
	}
	if f.IsAvailable != nil {
		q["isAvailable"] = *f.IsAvailable
	}
	price := bson.M{}
	if f.MinPrice != nil {
		v, err := toDecimal128(*f.MinPrice)
		if err != nil {
			return nil, err
		}
		price["$gte"] = v
	}
	if f.MaxPrice != nil {
		v, err := toDecimal128(*f.MaxPrice)
		if err != nil {
			return nil, err
		}
		price["$lte"] = v
	}
	if len(price) > 0 {
		q["price"] = price
	}
	return q, nil
}

// substringFilter matches q literally and case-insensitively in the name
// or any ingredient
func substringFilter(q string) bson.M {
	re := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"ingredients": re},
	}}
}

// FindAll returns items matching filter in natural order
func (r *MenuItemRepository) FindAll(ctx context.Context, filter menu.Filter) ([]menu.MenuItem, error) {
	q, err := menuFilter(filter)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, "find menu items", q)
}

// Search runs a $text query ranked by text score and falls back to an
// escaped regex when it finds nothing.
func (r *MenuItemRepository) Search(ctx context.Context, q string) ([]menu.MenuItem, error) {
	score := bson.M{"score": bson.M{"$meta": "textScore"}}
	ranked, err := r.find(ctx, "text search menu items",
		bson.M{"$text": bson.M{"$search": q}},
		options.Find().SetProjection(score).SetSort(score),
	)
	if err != nil {
		return nil, err
	}
	if len(ranked) > 0 {
		return ranked, nil
	}
	return r.find(ctx, "regex search menu items", substringFilter(q))
}

// FindByID finds a menu item by its ID
func (r *MenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var doc menuItemDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translateError("find menu item", err)
	}
	return doc.toDomain()
}

// FindByIDs returns the items among ids that exist
func (r *MenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]menu.MenuItem, error) {
	if len(ids) == 0 {
		return []menu.MenuItem{}, nil
	}
	keys := make(bson.A, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return r.find(ctx, "find menu items by ids", bson.M{"_id": bson.M{"$in": keys}})
}

// ExistsByName checks for an item with exactly this name
func (r *MenuItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	q := bson.M{"name": name}
	if excludeID != nil {
		q["_id"] = bson.M{"$ne": excludeID.String()}
	}
	n, err := r.coll.CountDocuments(ctx, q, options.Count().SetLimit(1))
	if err != nil {
		return false, translateError("count menu items by name", err)
	}
	return n > 0, nil
}

// Create inserts a new menu item
func (r *MenuItemRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	doc, err := newMenuItemDocument(item)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return translateError("insert menu item", err)
}

// Update replaces the stored document of an existing item
func (r *MenuItemRepository) Update(ctx context.Context, item *menu.MenuItem) error {
	doc, err := newMenuItemDocument(item)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return translateError("replace menu item", err)
	}
	if res.MatchedCount == 0 {
		return translateError("replace menu item", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a menu item. Orders referencing it are not touched.
func (r *MenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translateError("delete menu item", err)
	}
	if res.DeletedCount == 0 {
		return translateError("delete menu item", mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MenuItemRepository) find(ctx context.Context, op string, filter any, opts ...*options.FindOptions) ([]menu.MenuItem, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateError(op, err)
	}
	var docs []menuItemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(op, err)
	}
	items := make([]menu.MenuItem, 0, len(docs))
	for i := range docs {
		item, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Ensure MenuItemRepository implements menu.Repository
var _ menu.Repository = (*MenuItemRepository)(nil)
