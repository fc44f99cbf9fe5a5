package response

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		status  int
		want    string
		message string
	}{
		{http.StatusBadRequest, "bad_request", "boom"},
		{http.StatusUnauthorized, "unauthorized", "boom"},
		{http.StatusNotFound, "not_found", "boom"},
		{http.StatusConflict, "conflict", "boom"},
		{http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
		{http.StatusTeapot, "error", "boom"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		Error(rec, tt.status, errors.New("boom"))

		assert.Equal(t, tt.status, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tt.want, body.Error)
		assert.Equal(t, tt.message, body.Message)
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]float64{"total": 12.5})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total":12.5}`, rec.Body.String())
}

func TestJSONUnencodableValueIsServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]float64{"total": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_server_error", body.Error)
	assert.Equal(t, "Internal Server Error", body.Message)
}

func TestHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	HTML(rec, http.StatusOK, []byte("<p>hi</p>"))

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", rec.Body.String())
}
