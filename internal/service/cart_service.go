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
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// CartService defines the interface for cart business logic
type CartService interface {
	AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, userID primitive.ObjectID) (*domain.PopulatedCart, error)
	RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart finds or creates the user's cart, merges the product into the
// item list (incrementing the quantity of an existing line), and recomputes
// the derived total.
func (s *cartService) AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// The product must exist before it can be carted.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err != repository.ErrCartNotFound {
			return nil, err
		}
		cart = &domain.Cart{
			UserID: userID,
			Items:  []domain.CartItem{{ProductID: productID, Quantity: quantity}},
		}
		if err := s.recomputeTotal(ctx, cart); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the user's cart populated with product details.
func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*domain.PopulatedCart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated := &domain.PopulatedCart{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      make([]domain.PopulatedCartItem, 0, len(cart.Items)),
		TotalPrice: cart.TotalPrice,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		line := domain.PopulatedCartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Product = product
		case err == repository.ErrProductNotFound:
			// Deleted catalog entries stay in the cart unresolved; there is
			// no cascading cleanup.
		default:
			return nil, err
		}
		populated.Items = append(populated.Items, line)
	}
	return populated, nil
}

// RemoveFromCart drops the product's line and recomputes the total.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the item list and zeroes the total.
func (s *cartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	cart.Items = []domain.CartItem{}
	cart.TotalPrice = 0
	return s.cartRepo.Save(ctx, cart)
}

// recomputeTotal derives the total from current catalog prices. Prices are
// deliberately not snapshotted at add time; lines whose product has been
// deleted contribute nothing.
func (s *cartService) recomputeTotal(ctx context.Context, cart *domain.Cart) error {
	var total float64
	for _, item := range cart.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == repository.ErrProductNotFound {
				continue
			}
			return fmt.Errorf("failed to price cart line: %w", err)
		}
		total += product.Price * float64(item.Quantity)
	}
	cart.TotalPrice = total
	return nil
}
