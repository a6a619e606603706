package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/metrics"
)

const (
	ContactsCollection = "contacts"
	OrdersCollection   = "orders"

	// RecentLimit caps every listing.
	RecentLimit int64 = 50
)

func insertOne(ctx context.Context, coll *mongo.Collection, timeout time.Duration, op string, doc interface{}) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res, err := coll.InsertOne(ctx, doc)
	metrics.ObserveDB(op, start, err)
	if err != nil {
		return primitive.NilObjectID, &PersistenceError{Op: op, Err: err}
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// findRecent returns at most limit documents of coll, newest first by field.
// limit is clamped to RecentLimit.
func findRecent[T any](ctx context.Context, coll *mongo.Collection, timeout time.Duration, op, field string, limit int64) ([]T, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.ObserveDB(op, start, err)
		return nil, &PersistenceError{Op: op, Err: err}
	}
	defer cursor.Close(ctx)

	out := make([]T, 0, limit)
	err = cursor.All(ctx, &out)
	metrics.ObserveDB(op, start, err)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	return out, nil
}
