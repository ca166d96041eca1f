// Package web holds the small response helpers shared by the HTTP handlers:
// JSON rendering and the mapping from the error taxonomy to status codes.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

// StatusFor maps taxonomy errors to HTTP statuses. Gateway failures are 502:
// the order exists but the charge did not go through.
func StatusFor(err error) int {
	var gw *errs.GatewayError
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDuplicateCheckout):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &gw):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
