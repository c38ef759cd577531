package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbhiAndure02/pocketwala/internal/database"
	"github.com/AbhiAndure02/pocketwala/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBulkOrderNotFound = errors.New("bulk order not found")
)

// BulkOrderRepository defines the interface for bulk order data access
type BulkOrderRepository interface {
	Create(ctx context.Context, order *domain.BulkOrder) error
	Update(ctx context.Context, order *domain.BulkOrder) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.BulkOrder, error)
	List(ctx context.Context, userID string) ([]*domain.BulkOrder, error)
}

type bulkOrderRepository struct {
	collection *mongo.Collection
}

// NewBulkOrderRepository creates a new instance of BulkOrderRepository
func NewBulkOrderRepository(db *mongo.Database) BulkOrderRepository {
	return &bulkOrderRepository{collection: db.Collection(database.CollectionBulkOrders)}
}

// Create inserts a new bulk order
func (r *bulkOrderRepository) Create(ctx context.Context, order *domain.BulkOrder) error {
	now := time.Now()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create bulk order: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing bulk order
func (r *bulkOrderRepository) Update(ctx context.Context, order *domain.BulkOrder) error {
	order.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"items":        order.Items,
		"design_image": order.DesignImage,
		"total_price":  order.TotalPrice,
		"status":       order.Status,
		"updated_at":   order.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": order.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update bulk order: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrBulkOrderNotFound
	}
	return nil
}

// Delete removes a bulk order
func (r *bulkOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete bulk order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrBulkOrderNotFound
	}
	return nil
}

// FindByID retrieves a bulk order by ID
func (r *bulkOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.BulkOrder, error) {
	order := &domain.BulkOrder{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBulkOrderNotFound
		}
		return nil, fmt.Errorf("failed to find bulk order: %w", err)
	}
	return order, nil
}

// List retrieves bulk orders, latest first, optionally filtered by owner
func (r *bulkOrderRepository) List(ctx context.Context, userID string) ([]*domain.BulkOrder, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bulk orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.BulkOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode bulk orders: %w", err)
	}
	return orders, nil
}
