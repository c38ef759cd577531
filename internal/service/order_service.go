package service

import (
	"context"
	"errors"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// OrderService defines the interface for simple order business logic
type OrderService interface {
	AddOrder(ctx context.Context, order *domain.Order) error
	GetMyOrders(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderToPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	UpdateOrderToDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// AddOrder persists the order snapshot as given. Prices and product
// references are not cross-checked against the catalog; the document is the
// record of what the client agreed to at checkout.
func (s *orderService) AddOrder(ctx context.Context, order *domain.Order) error {
	if len(order.OrderItems) == 0 {
		return ErrEmptyOrder
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentPending
	}
	return s.orderRepo.Create(ctx, order)
}

// GetMyOrders retrieves the orders placed by one user
func (s *orderService) GetMyOrders(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

// GetOrderByID retrieves a single order
func (s *orderService) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// GetAllOrders retrieves every order
func (s *orderService) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateOrderToPaid flips the payment status to paid. There is no state
// machine guard; a delivered order can be re-marked paid.
func (s *orderService) UpdateOrderToPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orderRepo.SetPaymentStatus(ctx, id, domain.PaymentPaid)
}

// UpdateOrderToDelivered marks the order delivered
func (s *orderService) UpdateOrderToDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orderRepo.SetDelivered(ctx, id)
}
