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
	ErrProductTypeNotFound       = errors.New("product type not found")
	ErrProductTypeAlreadyExists  = errors.New("product type already exists")
	ErrProductColorNotFound      = errors.New("product color not found")
	ErrProductColorAlreadyExists = errors.New("product color already exists")
)

// ProductTypeRepository defines the interface for product type taxonomy access
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *domain.ProductType) error
	Update(ctx context.Context, productType *domain.ProductType) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductType, error)
	List(ctx context.Context) ([]*domain.ProductType, error)
}

// ProductColorRepository defines the interface for product color taxonomy access
type ProductColorRepository interface {
	Create(ctx context.Context, color *domain.ProductColor) error
	Update(ctx context.Context, color *domain.ProductColor) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductColor, error)
	List(ctx context.Context) ([]*domain.ProductColor, error)
}

type productTypeRepository struct {
	collection *mongo.Collection
}

// NewProductTypeRepository creates a new instance of ProductTypeRepository
func NewProductTypeRepository(db *mongo.Database) ProductTypeRepository {
	return &productTypeRepository{collection: db.Collection(database.CollectionProductTypes)}
}

// Create inserts a new product type. The unique index on the type name turns
// duplicates into ErrProductTypeAlreadyExists.
func (r *productTypeRepository) Create(ctx context.Context, productType *domain.ProductType) error {
	now := time.Now()
	productType.ID = primitive.NewObjectID()
	productType.CreatedAt = now
	productType.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, productType); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProductTypeAlreadyExists
		}
		return fmt.Errorf("failed to create product type: %w", err)
	}
	return nil
}

// Update renames a product type, preserving name uniqueness
func (r *productTypeRepository) Update(ctx context.Context, productType *domain.ProductType) error {
	productType.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"type":       productType.Type,
		"updated_at": productType.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": productType.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProductTypeAlreadyExists
		}
		return fmt.Errorf("failed to update product type: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductTypeNotFound
	}
	return nil
}

// Delete removes a product type
func (r *productTypeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product type: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductTypeNotFound
	}
	return nil
}

// FindByID retrieves a product type by ID
func (r *productTypeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductType, error) {
	productType := &domain.ProductType{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(productType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to find product type: %w", err)
	}
	return productType, nil
}

// List retrieves all product types, latest first
func (r *productTypeRepository) List(ctx context.Context) ([]*domain.ProductType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	defer cursor.Close(ctx)

	types := []*domain.ProductType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode product types: %w", err)
	}
	return types, nil
}

type productColorRepository struct {
	collection *mongo.Collection
}

// NewProductColorRepository creates a new instance of ProductColorRepository
func NewProductColorRepository(db *mongo.Database) ProductColorRepository {
	return &productColorRepository{collection: db.Collection(database.CollectionProductColors)}
}

// Create inserts a new product color. The unique index on the color name
// turns duplicates into ErrProductColorAlreadyExists.
func (r *productColorRepository) Create(ctx context.Context, color *domain.ProductColor) error {
	now := time.Now()
	color.ID = primitive.NewObjectID()
	color.CreatedAt = now
	color.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, color); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProductColorAlreadyExists
		}
		return fmt.Errorf("failed to create product color: %w", err)
	}
	return nil
}

// Update renames a product color or changes its hex code
func (r *productColorRepository) Update(ctx context.Context, color *domain.ProductColor) error {
	color.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":       color.Name,
		"hex_code":   color.HexCode,
		"updated_at": color.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": color.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProductColorAlreadyExists
		}
		return fmt.Errorf("failed to update product color: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductColorNotFound
	}
	return nil
}

// Delete removes a product color
func (r *productColorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product color: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductColorNotFound
	}
	return nil
}

// FindByID retrieves a product color by ID
func (r *productColorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductColor, error) {
	color := &domain.ProductColor{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(color)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductColorNotFound
		}
		return nil, fmt.Errorf("failed to find product color: %w", err)
	}
	return color, nil
}

// List retrieves all product colors, latest first
func (r *productColorRepository) List(ctx context.Context) ([]*domain.ProductColor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list product colors: %w", err)
	}
	defer cursor.Close(ctx)

	colors := []*domain.ProductColor{}
	if err := cursor.All(ctx, &colors); err != nil {
		return nil, fmt.Errorf("failed to decode product colors: %w", err)
	}
	return colors, nil
}
