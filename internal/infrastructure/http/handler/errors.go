package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/response"
)

// ErrInvalidBody is returned for request bodies that are not valid JSON
var ErrInvalidBody = errors.New("invalid request body")

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrQuantityLimit),
		errors.Is(err, domain.ErrInvalidFavorite),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidContact),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	response.Error(w, statusFor(err), err)
}

// decodeJSON reads the request body into v. An empty body is accepted
// when optional is set.
func decodeJSON(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidBody, err)
}

// pathParam returns the decoded URL parameter
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
