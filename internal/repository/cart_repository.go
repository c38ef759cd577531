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
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Save(ctx context.Context, cart *domain.Cart) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
}

type cartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{collection: db.Collection(database.CollectionCarts)}
}

// Create inserts a new cart for a user
func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Save persists the item list and derived total of an existing cart
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"items":       cart.Items,
		"total_price": cart.TotalPrice,
		"updated_at":  cart.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// FindByUserID retrieves the cart owned by a user
func (r *cartRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return cart, nil
}
