package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockBulkOrderRepository struct {
	orders map[primitive.ObjectID]*domain.BulkOrder
}

func newMockBulkOrderRepository() *mockBulkOrderRepository {
	return &mockBulkOrderRepository{orders: make(map[primitive.ObjectID]*domain.BulkOrder)}
}

func (m *mockBulkOrderRepository) Create(ctx context.Context, order *domain.BulkOrder) error {
	order.ID = primitive.NewObjectID()
	m.orders[order.ID] = order
	return nil
}

func (m *mockBulkOrderRepository) Update(ctx context.Context, order *domain.BulkOrder) error {
	if _, exists := m.orders[order.ID]; !exists {
		return repository.ErrBulkOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockBulkOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, exists := m.orders[id]; !exists {
		return repository.ErrBulkOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockBulkOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.BulkOrder, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrBulkOrderNotFound
	}
	return order, nil
}

func (m *mockBulkOrderRepository) List(ctx context.Context, userID string) ([]*domain.BulkOrder, error) {
	orders := make([]*domain.BulkOrder, 0, len(m.orders))
	for _, order := range m.orders {
		if userID == "" || order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func TestProperty_BulkOrderTotalIsSumOfItemPrices(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the sum of line prices regardless of quantities", prop.ForAll(
		func(prices []float64, quantities []int) bool {
			repo := newMockBulkOrderRepository()
			service := NewBulkOrderService(repo)
			ctx := context.Background()

			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}

			var want float64
			items := make([]domain.BulkOrderItem, 0, n)
			for i := 0; i < n; i++ {
				items = append(items, domain.BulkOrderItem{
					Color:     "Black",
					Size:      "L",
					Quantity:  quantities[i],
					Price:     prices[i],
					Placement: domain.Placements[i%len(domain.Placements)],
				})
				want += prices[i]
			}

			order := &domain.BulkOrder{Items: items}
			if err := service.CreateBulkOrder(ctx, order); err != nil {
				t.Logf("FAIL: CreateBulkOrder returned %v", err)
				return false
			}

			// Line prices arrive pre-aggregated, so the total ignores the
			// quantity column entirely.
			if math.Abs(order.TotalPrice-want) > 1e-6 {
				t.Logf("FAIL: total %f, want %f", order.TotalPrice, want)
				return false
			}
			if order.Status != domain.BulkOrderPending {
				t.Logf("FAIL: expected default status pending, got %s", order.Status)
				return false
			}
			return true
		},
		gen.SliceOfN(4, gen.Float64Range(120, 100000)),
		gen.SliceOfN(4, gen.IntRange(1, 500)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateBulkOrderValidation(t *testing.T) {
	repo := newMockBulkOrderRepository()
	service := NewBulkOrderService(repo)
	ctx := context.Background()

	if err := service.CreateBulkOrder(ctx, &domain.BulkOrder{}); err != ErrEmptyBulkOrder {
		t.Errorf("expected ErrEmptyBulkOrder for no items, got %v", err)
	}

	badPlacement := &domain.BulkOrder{Items: []domain.BulkOrderItem{
		{Color: "Black", Size: "L", Quantity: 10, Price: 1200, Placement: "Sleeve"},
	}}
	if err := service.CreateBulkOrder(ctx, badPlacement); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("expected ErrInvalidPlacement, got %v", err)
	}

	badQuantity := &domain.BulkOrder{Items: []domain.BulkOrderItem{
		{Color: "Black", Size: "L", Quantity: 0, Price: 1200, Placement: domain.PlacementFrontA4},
	}}
	if err := service.CreateBulkOrder(ctx, badQuantity); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateBulkOrderMergesFieldsAndRecomputesTotal(t *testing.T) {
	repo := newMockBulkOrderRepository()
	service := NewBulkOrderService(repo)
	ctx := context.Background()

	order := &domain.BulkOrder{
		UserID: primitive.NewObjectID().Hex(),
		Items: []domain.BulkOrderItem{
			{Color: "Black", Size: "L", Quantity: 10, Price: 1200, Placement: domain.PlacementFrontA4},
		},
		DesignImage: "/uploads/logo.png",
	}
	if err := service.CreateBulkOrder(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.UpdateBulkOrder(ctx, &domain.BulkOrder{
		ID:     order.ID,
		Status: domain.BulkOrderShipped,
		Items: []domain.BulkOrderItem{
			{Color: "White", Size: "M", Quantity: 20, Price: 2400, Placement: domain.PlacementBackA3},
			{Color: "White", Size: "XL", Quantity: 5, Price: 600, Placement: domain.PlacementLeft},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Status != domain.BulkOrderShipped {
		t.Errorf("expected status shipped, got %s", updated.Status)
	}
	if updated.TotalPrice != 3000 {
		t.Errorf("expected recomputed total 3000, got %f", updated.TotalPrice)
	}
	if updated.DesignImage != "/uploads/logo.png" {
		t.Errorf("untouched design image changed to %q", updated.DesignImage)
	}

	if _, err := service.UpdateBulkOrder(ctx, &domain.BulkOrder{ID: order.ID, Status: "lost"}); err != ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := service.UpdateBulkOrder(ctx, &domain.BulkOrder{ID: primitive.NewObjectID()}); err != repository.ErrBulkOrderNotFound {
		t.Errorf("expected ErrBulkOrderNotFound, got %v", err)
	}
}

func TestListBulkOrdersFiltersByOwner(t *testing.T) {
	repo := newMockBulkOrderRepository()
	service := NewBulkOrderService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID().Hex()
	mine := &domain.BulkOrder{UserID: owner, Items: []domain.BulkOrderItem{
		{Color: "Black", Size: "L", Quantity: 10, Price: 1200, Placement: domain.PlacementFrontA4},
	}}
	guest := &domain.BulkOrder{Items: []domain.BulkOrderItem{
		{Color: "White", Size: "S", Quantity: 3, Price: 360, Placement: domain.PlacementRight},
	}}
	service.CreateBulkOrder(ctx, mine)
	service.CreateBulkOrder(ctx, guest)

	all, err := service.ListBulkOrders(ctx, "")
	if err != nil {
		t.Fatalf("unfiltered list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 orders, got %d", len(all))
	}

	owned, err := service.ListBulkOrders(ctx, owner)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != mine.ID {
		t.Errorf("expected only the owner's order, got %d orders", len(owned))
	}
}
