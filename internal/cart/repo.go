package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("cart item not found")

type Repository interface {
	// ListByOwner returns the owner's pending items, newest first.
	ListByOwner(ctx context.Context, email string) ([]Item, error)
	// Add stamps the creation time and persists the item.
	Add(ctx context.Context, it *Item) error
	Get(ctx context.Context, id primitive.ObjectID) (*Item, error)
	// Remove deletes one item by id and reports whether a document went away.
	Remove(ctx context.Context, id primitive.ObjectID) (bool, error)
	// RemoveOwned bulk-deletes the given ids restricted to the owner's email
	// and returns the deleted count. Ids that are already gone, or that belong
	// to someone else, simply do not count; the call itself never fails for
	// them, which keeps concurrent checkouts of the same cart safe.
	RemoveOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error)
}

type MongoRepo struct{ col *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("carts")}
}

func (r *MongoRepo) ListByOwner(ctx context.Context, email string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Item{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Add(ctx context.Context, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if it.ID.IsZero() {
		it.ID = primitive.NewObjectID()
	}
	it.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, it)
	return err
}

func (r *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *MongoRepo) Remove(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepo) RemoveOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{
		"_id":   bson.M{"$in": ids},
		"email": email,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
