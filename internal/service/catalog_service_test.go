package service

import (
	"context"
	"testing"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockProductTypeRepository struct {
	types map[primitive.ObjectID]*domain.ProductType
}

func newMockProductTypeRepository() *mockProductTypeRepository {
	return &mockProductTypeRepository{types: make(map[primitive.ObjectID]*domain.ProductType)}
}

func (m *mockProductTypeRepository) Create(ctx context.Context, productType *domain.ProductType) error {
	for _, existing := range m.types {
		if existing.Type == productType.Type {
			return repository.ErrProductTypeAlreadyExists
		}
	}
	productType.ID = primitive.NewObjectID()
	m.types[productType.ID] = productType
	return nil
}

func (m *mockProductTypeRepository) Update(ctx context.Context, productType *domain.ProductType) error {
	if _, exists := m.types[productType.ID]; !exists {
		return repository.ErrProductTypeNotFound
	}
	for id, existing := range m.types {
		if id != productType.ID && existing.Type == productType.Type {
			return repository.ErrProductTypeAlreadyExists
		}
	}
	m.types[productType.ID] = productType
	return nil
}

func (m *mockProductTypeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, exists := m.types[id]; !exists {
		return repository.ErrProductTypeNotFound
	}
	delete(m.types, id)
	return nil
}

func (m *mockProductTypeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductType, error) {
	productType, exists := m.types[id]
	if !exists {
		return nil, repository.ErrProductTypeNotFound
	}
	return productType, nil
}

func (m *mockProductTypeRepository) List(ctx context.Context) ([]*domain.ProductType, error) {
	types := make([]*domain.ProductType, 0, len(m.types))
	for _, productType := range m.types {
		types = append(types, productType)
	}
	return types, nil
}

type mockProductColorRepository struct {
	colors map[primitive.ObjectID]*domain.ProductColor
}

func newMockProductColorRepository() *mockProductColorRepository {
	return &mockProductColorRepository{colors: make(map[primitive.ObjectID]*domain.ProductColor)}
}

func (m *mockProductColorRepository) Create(ctx context.Context, color *domain.ProductColor) error {
	for _, existing := range m.colors {
		if existing.Name == color.Name {
			return repository.ErrProductColorAlreadyExists
		}
	}
	color.ID = primitive.NewObjectID()
	m.colors[color.ID] = color
	return nil
}

func (m *mockProductColorRepository) Update(ctx context.Context, color *domain.ProductColor) error {
	if _, exists := m.colors[color.ID]; !exists {
		return repository.ErrProductColorNotFound
	}
	m.colors[color.ID] = color
	return nil
}

func (m *mockProductColorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, exists := m.colors[id]; !exists {
		return repository.ErrProductColorNotFound
	}
	delete(m.colors, id)
	return nil
}

func (m *mockProductColorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductColor, error) {
	color, exists := m.colors[id]
	if !exists {
		return nil, repository.ErrProductColorNotFound
	}
	return color, nil
}

func (m *mockProductColorRepository) List(ctx context.Context) ([]*domain.ProductColor, error) {
	colors := make([]*domain.ProductColor, 0, len(m.colors))
	for _, color := range m.colors {
		colors = append(colors, color)
	}
	return colors, nil
}

func newCatalogServiceForTest() (CatalogService, *mockProductRepository, *mockProductTypeRepository, *mockProductColorRepository) {
	productRepo := newMockProductRepository()
	typeRepo := newMockProductTypeRepository()
	colorRepo := newMockProductColorRepository()
	return NewCatalogService(productRepo, typeRepo, colorRepo), productRepo, typeRepo, colorRepo
}

func TestCreateProductEnforcesImageCap(t *testing.T) {
	service, productRepo, _, _ := newCatalogServiceForTest()
	ctx := context.Background()

	images := make([]string, domain.MaxProductImages+1)
	for i := range images {
		images[i] = "/uploads/img.png"
	}
	product := &domain.Product{Name: "Printed Tee", Price: 299, Images: images}
	if err := service.CreateProduct(ctx, product); err != ErrTooManyImages {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}

	product.Images = images[:domain.MaxProductImages]
	if err := service.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create at the cap failed: %v", err)
	}

	product.Images = images
	if err := service.UpdateProduct(ctx, product); err != ErrTooManyImages {
		t.Errorf("expected ErrTooManyImages on update, got %v", err)
	}

	if len(productRepo.products) != 1 {
		t.Errorf("expected exactly one stored product, got %d", len(productRepo.products))
	}
}

func TestDeleteProductLeavesNoTrace(t *testing.T) {
	service, _, _, _ := newCatalogServiceForTest()
	ctx := context.Background()

	product := &domain.Product{Name: "Printed Tee", Price: 299}
	if err := service.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetProduct(ctx, product.ID); err != repository.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := service.DeleteProduct(ctx, product.ID); err != repository.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound on double delete, got %v", err)
	}
}

func TestProductTypeNamesAreUnique(t *testing.T) {
	service, _, _, _ := newCatalogServiceForTest()
	ctx := context.Background()

	first, err := service.CreateProductType(ctx, "Round Neck")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateProductType(ctx, "Round Neck"); err != repository.ErrProductTypeAlreadyExists {
		t.Errorf("expected ErrProductTypeAlreadyExists, got %v", err)
	}

	second, err := service.CreateProductType(ctx, "Polo")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.UpdateProductType(ctx, second.ID, "Round Neck"); err != repository.ErrProductTypeAlreadyExists {
		t.Errorf("expected rename onto a taken name to fail, got %v", err)
	}

	renamed, err := service.UpdateProductType(ctx, first.ID, "Crew Neck")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Type != "Crew Neck" {
		t.Errorf("expected renamed type, got %q", renamed.Type)
	}
}

func TestProductColorLifecycle(t *testing.T) {
	service, _, _, _ := newCatalogServiceForTest()
	ctx := context.Background()

	color, err := service.CreateProductColor(ctx, "Navy", "#001f3f")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateProductColor(ctx, "Navy", "#000080"); err != repository.ErrProductColorAlreadyExists {
		t.Errorf("expected ErrProductColorAlreadyExists, got %v", err)
	}

	updated, err := service.UpdateProductColor(ctx, color.ID, "Midnight", "#191970")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Midnight" || updated.HexCode != "#191970" {
		t.Errorf("update lost fields: %+v", updated)
	}

	if err := service.DeleteProductColor(ctx, color.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	colors, _ := service.ListProductColors(ctx)
	if len(colors) != 0 {
		t.Errorf("expected no colors after delete, got %d", len(colors))
	}
}
