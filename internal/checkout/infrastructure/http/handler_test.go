package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/application"
	"github.com/akshatjain02/ecommerce-backend/internal/checkout/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/auth"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type stubRepo struct {
	snap     domain.CartSnapshot
	order    domain.Order
	rowsByID []domain.OrderRow
	status   error
}

func (s *stubRepo) CartSnapshot(context.Context, int64) (domain.CartSnapshot, error) {
	return s.snap, nil
}

func (s *stubRepo) CreateOrder(context.Context, domain.CartSnapshot, string, string) (domain.Order, error) {
	return s.order, nil
}

func (s *stubRepo) OrderRows(context.Context, domain.Scope) ([]domain.OrderRow, error) {
	return s.rowsByID, nil
}

func (s *stubRepo) OrderRowsByID(context.Context, int64, domain.Scope) ([]domain.OrderRow, error) {
	return s.rowsByID, nil
}

func (s *stubRepo) SetStatus(context.Context, int64, domain.OrderStatus, string) error {
	return s.status
}

type stubGateway struct{ err error }

func (s *stubGateway) Charge(context.Context, application.ChargeRequest) (application.ChargeResult, error) {
	return application.ChargeResult{Reference: "ch_test"}, s.err
}

func newTestHandler(repo *stubRepo, gw *stubGateway) http.Handler {
	log := slog.New(slog.DiscardHandler)
	svc := application.NewService(log, repo, gw, nil, "usd")
	return NewHandler(log, svc).Routes()
}

func asUser(r *http.Request, id auth.Identity) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), id))
}

func TestCheckoutHandlerCreated(t *testing.T) {
	repo := &stubRepo{
		snap: domain.NewCartSnapshot(5, []domain.PricedLine{{ProductID: 1, Name: "Widget", PriceCents: 999, Quantity: 2}}),
		order: domain.Order{ID: 7, TotalCents: 1998, Status: domain.StatusSuccess, PaymentID: 3, CustomerID: 5,
			Items: []domain.OrderItem{{Name: "Widget", PriceCents: 999, Quantity: 2}}},
	}
	h := newTestHandler(repo, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"token":"tok_test"}`))
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_cents":1998`)
	assert.Contains(t, rec.Body.String(), `"Widget"`)
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"token":"tok_test"}`))
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandlerUnauthenticated(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"token":"tok_test"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrderNotFoundForForeignOrder(t *testing.T) {
	// Scoped query returns no rows for another customer's order.
	h := newTestHandler(&stubRepo{rowsByID: nil}, &stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelRequiresAdmin(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders/7/cancel", nil)
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelNotFound(t *testing.T) {
	h := newTestHandler(&stubRepo{status: errs.ErrNotFound}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders/42/cancel", nil)
	req = asUser(req, auth.Identity{ID: 1, IsAdmin: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOK(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders/7/cancel", nil)
	req = asUser(req, auth.Identity{ID: 1, IsAdmin: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListOrdersAdminIncludesCustomer(t *testing.T) {
	repo := &stubRepo{rowsByID: []domain.OrderRow{
		{OrderID: 1, CustomerID: 5, ItemID: 1, ItemName: "A",
			Customer: &domain.CustomerSummary{ID: 5, Email: "jane@example.com"}},
	}}
	h := newTestHandler(repo, &stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req = asUser(req, auth.Identity{ID: 1, IsAdmin: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")
}

func TestListOrdersCustomerOmitsCustomerBlock(t *testing.T) {
	repo := &stubRepo{rowsByID: []domain.OrderRow{{OrderID: 1, CustomerID: 5, ItemID: 1, ItemName: "A"}}}
	h := newTestHandler(repo, &stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"customer"`)
}

func TestCheckoutHandlerGatewayFailure(t *testing.T) {
	repo := &stubRepo{
		snap:  domain.NewCartSnapshot(5, []domain.PricedLine{{ProductID: 1, Name: "Widget", PriceCents: 999, Quantity: 2}}),
		order: domain.Order{ID: 7, TotalCents: 1998, Status: domain.StatusSuccess},
	}
	h := newTestHandler(repo, &stubGateway{err: assert.AnError})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"token":"tok_test"}`))
	req = asUser(req, auth.Identity{ID: 5})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
