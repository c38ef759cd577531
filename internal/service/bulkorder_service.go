package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyBulkOrder   = errors.New("bulk order must contain at least one item")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidStatus    = errors.New("invalid bulk order status")
)

// BulkOrderService defines the interface for bulk order business logic
type BulkOrderService interface {
	CreateBulkOrder(ctx context.Context, order *domain.BulkOrder) error
	GetBulkOrder(ctx context.Context, id primitive.ObjectID) (*domain.BulkOrder, error)
	ListBulkOrders(ctx context.Context, userID string) ([]*domain.BulkOrder, error)
	UpdateBulkOrder(ctx context.Context, order *domain.BulkOrder) (*domain.BulkOrder, error)
	DeleteBulkOrder(ctx context.Context, id primitive.ObjectID) error
}

type bulkOrderService struct {
	bulkOrderRepo repository.BulkOrderRepository
}

// NewBulkOrderService creates a new instance of BulkOrderService
func NewBulkOrderService(bulkOrderRepo repository.BulkOrderRepository) BulkOrderService {
	return &bulkOrderService{bulkOrderRepo: bulkOrderRepo}
}

// CreateBulkOrder validates the item list, recomputes the derived total and
// persists the order. Guest orders carry no user ID.
func (s *bulkOrderService) CreateBulkOrder(ctx context.Context, order *domain.BulkOrder) error {
	if err := validateItems(order.Items); err != nil {
		return err
	}
	if order.Status == "" {
		order.Status = domain.BulkOrderPending
	}
	if !order.Status.Valid() {
		return ErrInvalidStatus
	}
	order.RecomputeTotal()
	return s.bulkOrderRepo.Create(ctx, order)
}

// GetBulkOrder retrieves a single bulk order
func (s *bulkOrderService) GetBulkOrder(ctx context.Context, id primitive.ObjectID) (*domain.BulkOrder, error) {
	return s.bulkOrderRepo.FindByID(ctx, id)
}

// ListBulkOrders retrieves bulk orders, optionally filtered by owner
func (s *bulkOrderService) ListBulkOrders(ctx context.Context, userID string) ([]*domain.BulkOrder, error) {
	return s.bulkOrderRepo.List(ctx, userID)
}

// UpdateBulkOrder replaces the items and/or status of an existing order,
// recomputing the total on every save.
func (s *bulkOrderService) UpdateBulkOrder(ctx context.Context, order *domain.BulkOrder) (*domain.BulkOrder, error) {
	existing, err := s.bulkOrderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if order.Items != nil {
		if err := validateItems(order.Items); err != nil {
			return nil, err
		}
		existing.Items = order.Items
	}
	if order.Status != "" {
		if !order.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		existing.Status = order.Status
	}
	if order.DesignImage != "" {
		existing.DesignImage = order.DesignImage
	}

	existing.RecomputeTotal()
	if err := s.bulkOrderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBulkOrder removes a bulk order
func (s *bulkOrderService) DeleteBulkOrder(ctx context.Context, id primitive.ObjectID) error {
	return s.bulkOrderRepo.Delete(ctx, id)
}

func validateItems(items []domain.BulkOrderItem) error {
	if len(items) == 0 {
		return ErrEmptyBulkOrder
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}
		if !item.Placement.Valid() {
			return fmt.Errorf("item %d: %w: %q", i, ErrInvalidPlacement, item.Placement)
		}
	}
	return nil
}
