package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the application relies on. Creation is
// idempotent, so this runs on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "phone", Value: 1}}},
		},
		CollectionProductTypes: {
			{
				Keys:    bson.D{{Key: "type", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionProductColors: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCarts: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollectionOrders: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		CollectionBulkOrders: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
		logger.Debug("Ensured indexes", zap.String("collection", collection), zap.Int("count", len(models)))
	}

	logger.Info("Database indexes ensured")
	return nil
}
