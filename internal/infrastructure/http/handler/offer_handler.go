package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/middleware"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

type OfferHandler struct {
	service *service.OfferService
	logger  *slog.Logger
}

func NewOfferHandler(service *service.OfferService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{service: service, logger: logger}
}

// List handles GET /offers?q=
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, offers)
}

// AddToCart handles POST /offers/{id}/cart
func (h *OfferHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.AddToCart(r.Context(), middleware.SessionID(r.Context()), pathParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}
