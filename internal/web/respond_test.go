package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: name required", errs.ErrValidation), http.StatusBadRequest},
		{"empty cart", errs.ErrEmptyCart, http.StatusBadRequest},
		{"duplicate checkout", errs.ErrDuplicateCheckout, http.StatusConflict},
		{"not found", errs.ErrNotFound, http.StatusNotFound},
		{"unauthorized", errs.ErrUnauthorized, http.StatusUnauthorized},
		{"gateway", &errs.GatewayError{OrderID: 7, Err: errors.New("declined")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusTeapot, map[string]string{"k": "v"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
}

func TestErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, fmt.Errorf("%w: nothing to check out", errs.ErrEmptyCart))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cart is empty: nothing to check out"}`, rec.Body.String())
}
