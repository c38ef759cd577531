package transport

import (
	"net/http"

	"github.com/AbhiAndure02/pocketwala/internal/middleware"
	"github.com/AbhiAndure02/pocketwala/internal/repository"
	"github.com/AbhiAndure02/pocketwala/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductTypeRequest represents the product type create/update payload
type ProductTypeRequest struct {
	Type string `json:"type" validate:"required"`
}

// ProductColorRequest represents the product color create/update payload
type ProductColorRequest struct {
	Name    string `json:"name" validate:"required"`
	HexCode string `json:"hexCode"`
}

// TaxonomyHandler handles HTTP requests for product types and colors
type TaxonomyHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(catalogService service.CatalogService, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the parallel type and color route sets. Reads are
// public; mutations require an admin token.
func (h *TaxonomyHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/product-types", func(r chi.Router) {
		r.Get("/", h.ListTypes)
		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Post("/", h.CreateType)
			r.Put("/{id}", h.UpdateType)
			r.Delete("/{id}", h.DeleteType)
		})
	})

	r.Route("/api/product-colors", func(r chi.Router) {
		r.Get("/", h.ListColors)
		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Post("/", h.CreateColor)
			r.Put("/{id}", h.UpdateColor)
			r.Delete("/{id}", h.DeleteColor)
		})
	})
}

// CreateType handles new product type creation
func (h *TaxonomyHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req ProductTypeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productType, err := h.catalogService.CreateProductType(r.Context(), req.Type)
	if err != nil {
		if err == repository.ErrProductTypeAlreadyExists {
			middleware.RespondWithError(w, http.StatusBadRequest, "Product type already exists")
			return
		}
		h.logger.Error("Product type creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product type")
		return
	}

	h.logger.Info("Product type created", zap.String("type", productType.Type))
	middleware.RespondWithJSON(w, http.StatusCreated, productType)
}

// ListTypes handles listing all product types
func (h *TaxonomyHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogService.ListProductTypes(r.Context())
	if err != nil {
		h.logger.Error("Product type listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list product types")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, types)
}

// UpdateType handles renaming a product type
func (h *TaxonomyHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product type ID")
		return
	}

	var req ProductTypeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productType, err := h.catalogService.UpdateProductType(r.Context(), id, req.Type)
	if err != nil {
		switch err {
		case repository.ErrProductTypeNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product type not found")
		case repository.ErrProductTypeAlreadyExists:
			middleware.RespondWithError(w, http.StatusBadRequest, "Product type already exists")
		default:
			h.logger.Error("Product type update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product type")
		}
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, productType)
}

// DeleteType handles product type removal
func (h *TaxonomyHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product type ID")
		return
	}

	if err := h.catalogService.DeleteProductType(r.Context(), id); err != nil {
		if err == repository.ErrProductTypeNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product type not found")
			return
		}
		h.logger.Error("Product type deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product type")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product type deleted successfully"})
}

// CreateColor handles new product color creation
func (h *TaxonomyHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req ProductColorRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	color, err := h.catalogService.CreateProductColor(r.Context(), req.Name, req.HexCode)
	if err != nil {
		if err == repository.ErrProductColorAlreadyExists {
			middleware.RespondWithError(w, http.StatusBadRequest, "Product color already exists")
			return
		}
		h.logger.Error("Product color creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product color")
		return
	}

	h.logger.Info("Product color created", zap.String("name", color.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, color)
}

// ListColors handles listing all product colors
func (h *TaxonomyHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.catalogService.ListProductColors(r.Context())
	if err != nil {
		h.logger.Error("Product color listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list product colors")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, colors)
}

// UpdateColor handles renaming a product color or changing its hex code
func (h *TaxonomyHandler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product color ID")
		return
	}

	var req ProductColorRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	color, err := h.catalogService.UpdateProductColor(r.Context(), id, req.Name, req.HexCode)
	if err != nil {
		switch err {
		case repository.ErrProductColorNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product color not found")
		case repository.ErrProductColorAlreadyExists:
			middleware.RespondWithError(w, http.StatusBadRequest, "Product color already exists")
		default:
			h.logger.Error("Product color update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product color")
		}
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, color)
}

// DeleteColor handles product color removal
func (h *TaxonomyHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product color ID")
		return
	}

	if err := h.catalogService.DeleteProductColor(r.Context(), id); err != nil {
		if err == repository.ErrProductColorNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product color not found")
			return
		}
		h.logger.Error("Product color deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product color")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product color deleted successfully"})
}
