package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AbhiAndure02/pocketwala/internal/database"
	"github.com/AbhiAndure02/pocketwala/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductListSortsLatestFirst(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()
	testDB.Collection(database.CollectionProducts).DeleteMany(ctx, bson.M{})

	for i := 0; i < 3; i++ {
		product := &domain.Product{
			Name:  fmt.Sprintf("Tee %d", i),
			Price: float64(100 + i),
		}
		if err := repo.Create(ctx, product); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].Name != "Tee 2" || products[2].Name != "Tee 0" {
		t.Errorf("expected newest first, got %s .. %s", products[0].Name, products[2].Name)
	}

	testDB.Collection(database.CollectionProducts).DeleteMany(ctx, bson.M{})
}

func TestProductUpdateAndDelete(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := &domain.Product{
		Name:     "Printed Tee",
		Price:    299,
		Category: "tshirt",
		Type:     "common",
		Sizes:    []string{"M", "L"},
		Colors:   []string{"Black"},
	}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	product.Price = 349
	product.Sizes = []string{"M", "L", "XL"}
	if err := repo.Update(ctx, product); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Price != 349 || len(stored.Sizes) != 3 {
		t.Errorf("update lost fields: %+v", stored)
	}

	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, product.ID); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, product.ID); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound on double delete, got %v", err)
	}
}

func TestTaxonomyUniqueIndexes(t *testing.T) {
	typeRepo := NewProductTypeRepository(testDB)
	colorRepo := NewProductColorRepository(testDB)
	ctx := context.Background()
	testDB.Collection(database.CollectionProductTypes).DeleteMany(ctx, bson.M{})
	testDB.Collection(database.CollectionProductColors).DeleteMany(ctx, bson.M{})

	if err := typeRepo.Create(ctx, &domain.ProductType{Type: "Round Neck"}); err != nil {
		t.Fatalf("type create failed: %v", err)
	}
	if err := typeRepo.Create(ctx, &domain.ProductType{Type: "Round Neck"}); err != ErrProductTypeAlreadyExists {
		t.Errorf("expected ErrProductTypeAlreadyExists, got %v", err)
	}

	if err := colorRepo.Create(ctx, &domain.ProductColor{Name: "Navy", HexCode: "#001f3f"}); err != nil {
		t.Fatalf("color create failed: %v", err)
	}
	if err := colorRepo.Create(ctx, &domain.ProductColor{Name: "Navy", HexCode: "#000080"}); err != ErrProductColorAlreadyExists {
		t.Errorf("expected ErrProductColorAlreadyExists, got %v", err)
	}

	testDB.Collection(database.CollectionProductTypes).DeleteMany(ctx, bson.M{})
	testDB.Collection(database.CollectionProductColors).DeleteMany(ctx, bson.M{})
}

func TestCartOnePerUserUpsert(t *testing.T) {
	repo := NewCartRepository(testDB)
	productRepo := NewProductRepository(testDB)
	ctx := context.Background()

	product := &domain.Product{Name: "Printed Tee", Price: 299}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("product create failed: %v", err)
	}

	cart := &domain.Cart{
		UserID:     primitive.NewObjectID(),
		Items:      []domain.CartItem{{ProductID: product.ID, Quantity: 2}},
		TotalPrice: 598,
	}
	if err := repo.Create(ctx, cart); err != nil {
		t.Fatalf("cart create failed: %v", err)
	}

	cart.Items[0].Quantity = 5
	cart.TotalPrice = 1495
	if err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("cart save failed: %v", err)
	}

	stored, err := repo.FindByUserID(ctx, cart.UserID)
	if err != nil {
		t.Fatalf("cart find failed: %v", err)
	}
	if stored.ID != cart.ID {
		t.Error("save created a second cart for the same user")
	}
	if stored.Items[0].Quantity != 5 || stored.TotalPrice != 1495 {
		t.Errorf("save lost fields: %+v", stored)
	}
}
