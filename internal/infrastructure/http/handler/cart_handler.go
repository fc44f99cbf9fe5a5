package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/middleware"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	service *service.CartService
	widget  *CartWidget
	logger  *slog.Logger
}

func NewCartHandler(service *service.CartService, widget *CartWidget, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		widget:  widget,
		logger:  logger,
	}
}

// Get handles GET /cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Get(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// Widget handles GET /cart/widget, rendering the cart as an HTML fragment
func (h *CartHandler) Widget(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Cart(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := h.widget.Render(cart)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render cart widget",
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	response.HTML(w, http.StatusOK, body)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), middleware.SessionID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// UpdateItem handles PUT /cart/items
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCartItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), middleware.SessionID(r.Context()), req.Name, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{name}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.RemoveItem(r.Context(), middleware.SessionID(r.Context()), pathParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Clear(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// Checkout handles POST /cart/checkout. The body with customer details is optional.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Checkout(r.Context(), middleware.SessionID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}
