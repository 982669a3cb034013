package catalog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("menu item not found")

// Repository serves the pass-through collections: menu, reviews and chef
// recommendations. Only the menu is ever mutated, and only by admins.
type Repository interface {
	Menu(ctx context.Context) ([]MenuItem, error)
	AddMenuItem(ctx context.Context, it *MenuItem) error
	RemoveMenuItem(ctx context.Context, id primitive.ObjectID) error
	Reviews(ctx context.Context) ([]Review, error)
	Recommends(ctx context.Context) ([]MenuItem, error)
}

type MongoRepo struct {
	menu      *mongo.Collection
	reviews   *mongo.Collection
	recommend *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		menu:      db.Collection("menu"),
		reviews:   db.Collection("reviews"),
		recommend: db.Collection("recommend"),
	}
}

func (r *MongoRepo) Menu(ctx context.Context) ([]MenuItem, error) {
	return findAll[MenuItem](ctx, r.menu)
}

func (r *MongoRepo) AddMenuItem(ctx context.Context, it *MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if it.ID.IsZero() {
		it.ID = primitive.NewObjectID()
	}
	_, err := r.menu.InsertOne(ctx, it)
	return err
}

func (r *MongoRepo) RemoveMenuItem(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.menu.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Reviews(ctx context.Context) ([]Review, error) {
	return findAll[Review](ctx, r.reviews)
}

func (r *MongoRepo) Recommends(ctx context.Context) ([]MenuItem, error) {
	return findAll[MenuItem](ctx, r.recommend)
}

func findAll[T any](ctx context.Context, col *mongo.Collection) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
