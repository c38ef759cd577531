package transport

import (
	"errors"
	"net/http"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/middleware"
	"github.com/AbhiAndure02/pocketwala/internal/repository"
	"github.com/AbhiAndure02/pocketwala/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BulkOrderItemRequest is one cell of the bulk order matrix payload
type BulkOrderItemRequest struct {
	Color     string  `json:"color" validate:"required"`
	Size      string  `json:"size" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"required"`
	Placement string  `json:"placement" validate:"required"`
}

// BulkOrderRequest represents the bulk order create/update payload. Guest
// orders carry no userId.
type BulkOrderRequest struct {
	UserID      string                 `json:"userId"`
	Items       []BulkOrderItemRequest `json:"items" validate:"omitempty,dive"`
	DesignImage string                 `json:"designImage"`
	Status      string                 `json:"status"`
}

// BulkOrderHandler handles HTTP requests for bulk print orders
type BulkOrderHandler struct {
	bulkOrderService service.BulkOrderService
	logger           *zap.Logger
}

// NewBulkOrderHandler creates a new BulkOrderHandler
func NewBulkOrderHandler(bulkOrderService service.BulkOrderService, logger *zap.Logger) *BulkOrderHandler {
	return &BulkOrderHandler{
		bulkOrderService: bulkOrderService,
		logger:           logger,
	}
}

// RegisterRoutes registers all bulk order routes. Create and reads are
// public so guests can place and track orders; update and delete are admin
// operations.
func (h *BulkOrderHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/bulk-order", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create handles new bulk order submission
func (h *BulkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BulkOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Bulk order validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := req.toDomain()
	if err := h.bulkOrderService.CreateBulkOrder(r.Context(), order); err != nil {
		if isBulkOrderValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Bulk order creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create bulk order")
		return
	}

	h.logger.Info("Bulk order created",
		zap.String("order_id", order.ID.Hex()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalPrice),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// List handles listing bulk orders, optionally filtered by owner
func (h *BulkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.bulkOrderService.ListBulkOrders(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.logger.Error("Bulk order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list bulk orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get handles fetching a single bulk order
func (h *BulkOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid bulk order ID")
		return
	}

	order, err := h.bulkOrderService.GetBulkOrder(r.Context(), id)
	if err != nil {
		if err == repository.ErrBulkOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "bulk order not found")
			return
		}
		h.logger.Error("Bulk order fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get bulk order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Update handles replacing items, status or design image of a bulk order
func (h *BulkOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid bulk order ID")
		return
	}

	var req BulkOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := req.toDomain()
	order.ID = id
	updated, err := h.bulkOrderService.UpdateBulkOrder(r.Context(), order)
	if err != nil {
		switch {
		case err == repository.ErrBulkOrderNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "bulk order not found")
		case isBulkOrderValidationError(err):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Bulk order update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update bulk order")
		}
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete handles bulk order removal
func (h *BulkOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid bulk order ID")
		return
	}

	if err := h.bulkOrderService.DeleteBulkOrder(r.Context(), id); err != nil {
		if err == repository.ErrBulkOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "bulk order not found")
			return
		}
		h.logger.Error("Bulk order deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete bulk order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "bulk order deleted successfully"})
}

func (r *BulkOrderRequest) toDomain() *domain.BulkOrder {
	order := &domain.BulkOrder{
		UserID:      r.UserID,
		DesignImage: r.DesignImage,
		Status:      domain.BulkOrderStatus(r.Status),
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.BulkOrderItem{
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Placement: domain.Placement(item.Placement),
		})
	}
	return order
}

func isBulkOrderValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyBulkOrder) ||
		errors.Is(err, service.ErrInvalidPlacement) ||
		errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrInvalidQuantity)
}
