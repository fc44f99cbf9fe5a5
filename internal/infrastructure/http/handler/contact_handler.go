package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(service *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}

// Subscribe handles POST /newsletter
func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.NewsletterRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}
