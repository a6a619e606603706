package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureContactIndexes backs the newest-first contact listing.
func EnsureContactIndexes(db *mongo.Database, logger zerolog.Logger) error {
	return ensureDescendingIndex(db, ContactsCollection, "submittedAt", "submittedAt_desc", logger)
}

// EnsureOrderIndexes backs the newest-first order listing.
func EnsureOrderIndexes(db *mongo.Database, logger zerolog.Logger) error {
	return ensureDescendingIndex(db, OrdersCollection, "createdAt", "createdAt_desc", logger)
}

func ensureDescendingIndex(db *mongo.Database, collection, field, name string, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: -1}},
		Options: options.Index().SetName(name),
	}

	logger = logger.With().Str("collection", collection).Str("index", name).Logger()
	logger.Debug().Msg("creating index")
	if _, err := db.Collection(collection).Indexes().CreateOne(ctx, index); err != nil {
		logger.Error().Err(err).Msg("index creation failed")
		return err
	}
	logger.Info().Msg("index ready")
	return nil
}
