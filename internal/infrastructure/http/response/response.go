package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// encodeFailure is sent when a payload cannot be marshalled
var encodeFailure = []byte(`{"error":"internal_server_error","message":"Internal Server Error"}` + "\n")

// JSON sends a JSON response. The payload is marshalled before the status
// is written, so a value that cannot be encoded yields a 500 instead of an
// empty body.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status, body = http.StatusInternalServerError, encodeFailure
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// HTML sends a rendered HTML fragment
func HTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NoContent sends an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

var errorCodes = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "not_found",
	http.StatusConflict:            "conflict",
	http.StatusInternalServerError: "internal_server_error",
}

// Error sends an error response. Server errors carry the status text
// instead of the underlying message.
func Error(w http.ResponseWriter, status int, err error) {
	code, ok := errorCodes[status]
	if !ok {
		code = "error"
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	JSON(w, status, ErrorResponse{Error: code, Message: message})
}
