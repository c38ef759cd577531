package service

import (
	"context"
	"fmt"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTooManyImages = fmt.Errorf("a product can carry at most %d images", domain.MaxProductImages)
)

// CatalogService defines the interface for product and taxonomy business logic
type CatalogService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	CreateProductType(ctx context.Context, name string) (*domain.ProductType, error)
	UpdateProductType(ctx context.Context, id primitive.ObjectID, name string) (*domain.ProductType, error)
	DeleteProductType(ctx context.Context, id primitive.ObjectID) error
	ListProductTypes(ctx context.Context) ([]*domain.ProductType, error)

	CreateProductColor(ctx context.Context, name, hexCode string) (*domain.ProductColor, error)
	UpdateProductColor(ctx context.Context, id primitive.ObjectID, name, hexCode string) (*domain.ProductColor, error)
	DeleteProductColor(ctx context.Context, id primitive.ObjectID) error
	ListProductColors(ctx context.Context) ([]*domain.ProductColor, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	typeRepo    repository.ProductTypeRepository
	colorRepo   repository.ProductColorRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	colorRepo repository.ProductColorRepository,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		typeRepo:    typeRepo,
		colorRepo:   colorRepo,
	}
}

// CreateProduct validates the image cap and persists a new product.
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if len(product.Images) > domain.MaxProductImages {
		return ErrTooManyImages
	}
	return s.productRepo.Create(ctx, product)
}

// UpdateProduct validates the image cap and persists product edits.
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if len(product.Images) > domain.MaxProductImages {
		return ErrTooManyImages
	}
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct removes a product. Carts and orders referencing it are left
// untouched; there is no cascading cleanup.
func (s *catalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.productRepo.Delete(ctx, id)
}

// GetProduct retrieves a single product
func (s *catalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListProducts retrieves the full catalog, latest first
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// CreateProductType persists a new taxonomy type
func (s *catalogService) CreateProductType(ctx context.Context, name string) (*domain.ProductType, error) {
	productType := &domain.ProductType{Type: name}
	if err := s.typeRepo.Create(ctx, productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// UpdateProductType renames a taxonomy type
func (s *catalogService) UpdateProductType(ctx context.Context, id primitive.ObjectID, name string) (*domain.ProductType, error) {
	productType, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	productType.Type = name
	if err := s.typeRepo.Update(ctx, productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// DeleteProductType removes a taxonomy type
func (s *catalogService) DeleteProductType(ctx context.Context, id primitive.ObjectID) error {
	return s.typeRepo.Delete(ctx, id)
}

// ListProductTypes retrieves all taxonomy types, latest first
func (s *catalogService) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	return s.typeRepo.List(ctx)
}

// CreateProductColor persists a new taxonomy color
func (s *catalogService) CreateProductColor(ctx context.Context, name, hexCode string) (*domain.ProductColor, error) {
	color := &domain.ProductColor{Name: name, HexCode: hexCode}
	if err := s.colorRepo.Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// UpdateProductColor renames a taxonomy color or changes its hex code
func (s *catalogService) UpdateProductColor(ctx context.Context, id primitive.ObjectID, name, hexCode string) (*domain.ProductColor, error) {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	color.Name = name
	color.HexCode = hexCode
	if err := s.colorRepo.Update(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// DeleteProductColor removes a taxonomy color
func (s *catalogService) DeleteProductColor(ctx context.Context, id primitive.ObjectID) error {
	return s.colorRepo.Delete(ctx, id)
}

// ListProductColors retrieves all taxonomy colors, latest first
func (s *catalogService) ListProductColors(ctx context.Context) ([]*domain.ProductColor, error) {
	return s.colorRepo.List(ctx)
}
