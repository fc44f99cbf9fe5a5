package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/middleware"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

type FavoritesHandler struct {
	service *service.FavoritesService
	logger  *slog.Logger
}

func NewFavoritesHandler(service *service.FavoritesService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{service: service, logger: logger}
}

// List handles GET /favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.service.List(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, favs)
}

// Toggle handles POST /favorites/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.FavoriteToggleRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Toggle(r.Context(), middleware.SessionID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
