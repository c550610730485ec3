// Package respond writes JSON responses and the shared error envelope.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// InternalErrorMessage replaces raw error text in production responses.
const InternalErrorMessage = "Internal server error"

// NotFoundMessage is the body text for unmatched routes.
const NotFoundMessage = "Not found"

// ErrorResponse is the single error envelope used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes data as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes the error envelope with msg.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}

// PublicMessage returns the text a client may see for an unhandled failure.
// v is an error or a recovered panic value.
func PublicMessage(v any, production bool) string {
	if production {
		return InternalErrorMessage
	}
	switch e := v.(type) {
	case error:
		return e.Error()
	case string:
		return e
	default:
		return fmt.Sprint(v)
	}
}

// InternalError writes a 500 whose message depends on the production flag.
func InternalError(w http.ResponseWriter, v any, production bool) {
	Error(w, http.StatusInternalServerError, PublicMessage(v, production))
}
