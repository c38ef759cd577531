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
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for simple order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus) (*domain.Order, error)
	SetDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
}

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection(database.CollectionOrders)}
}

// Create inserts a new order snapshot
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByID retrieves an order by ID
func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// FindByUser retrieves all orders placed by a user, latest first
func (r *orderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for user: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// List retrieves all orders, latest first
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// SetPaymentStatus flips the payment status and returns the updated order
func (r *orderRepository) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus) (*domain.Order, error) {
	update := bson.M{"$set": bson.M{
		"payment_status": status,
		"updated_at":     time.Now(),
	}}

	order := &domain.Order{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return order, nil
}

// SetDelivered marks the order delivered and returns the updated order
func (r *orderRepository) SetDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	update := bson.M{"$set": bson.M{
		"is_delivered": true,
		"updated_at":   time.Now(),
	}}

	order := &domain.Order{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}
	return order, nil
}
