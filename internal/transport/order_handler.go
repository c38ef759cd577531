package transport

import (
	"net/http"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/middleware"
	"github.com/AbhiAndure02/pocketwala/internal/repository"
	"github.com/AbhiAndure02/pocketwala/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderItemRequest is one snapshot line of an order payload
type OrderItemRequest struct {
	Product string  `json:"product" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Qty     int     `json:"qty" validate:"required,gt=0"`
	Price   float64 `json:"price" validate:"required"`
}

// AddressRequest is the shipping address payload
type AddressRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// AddOrderRequest represents the checkout payload
type AddOrderRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress AddressRequest     `json:"shippingAddress" validate:"required"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	TotalPrice      float64            `json:"totalPrice" validate:"required"`
}

// OrderHandler handles HTTP requests for simple orders
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes. Listing every order and the
// delivered flip are admin-only; the rest require a valid token.
func (h *OrderHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.Add)
			r.Get("/myorders", h.MyOrders)
			r.Get("/{id}", h.Get)
			r.Put("/{id}/pay", h.Pay)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/", h.ListAll)
			r.Put("/{id}/deliver", h.Deliver)
		})
	})
}

// Add handles checkout: the order document is persisted as the snapshot the
// client submitted.
func (h *OrderHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserObjectID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &domain.Order{
		User: userID,
		ShippingAddress: domain.Address{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		TotalPrice:    req.TotalPrice,
	}
	for _, item := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID in order items")
			return
		}
		order.OrderItems = append(order.OrderItems, domain.OrderItem{
			Product: productID,
			Name:    item.Name,
			Qty:     item.Qty,
			Price:   item.Price,
		})
	}

	if err := h.orderService.AddOrder(r.Context(), order); err != nil {
		if err == service.ErrEmptyOrder {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Order creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Float64("total", order.TotalPrice),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// MyOrders handles listing the caller's orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserObjectID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orderService.GetMyOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get handles fetching a single order
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Order fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ListAll handles listing every order (admin)
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Pay handles flipping the payment status to paid
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.UpdateOrderToPaid(r.Context(), id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Order payment update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	h.logger.Info("Order marked paid", zap.String("order_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Deliver handles marking an order delivered (admin)
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.UpdateOrderToDelivered(r.Context(), id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Order delivery update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	h.logger.Info("Order marked delivered", zap.String("order_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}
