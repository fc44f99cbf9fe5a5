package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for catalog browsing
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, categories)
}

// SearchCategories handles GET /categories/search?q=
func (h *ProductHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.SearchCategories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, categories)
}

// ListProducts handles GET /products?q=&category=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.service.ListProducts(r.Context(), q.Get("q"), q.Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Featured handles GET /products/featured
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetProduct(r.Context(), pathParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, detail)
}
