package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/application"
	"github.com/akshatjain02/ecommerce-backend/internal/checkout/domain"
	"github.com/akshatjain02/ecommerce-backend/internal/web"
	"github.com/akshatjain02/ecommerce-backend/pkg/auth"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("checkout-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/orders", h.checkout)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
	})
	r.With(auth.RequireAdmin).Post("/orders/{id}/cancel", h.cancelOrder)
	return r
}

type checkoutReq struct {
	Token string `json:"token"`
	Note  string `json:"note"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	who, _ := auth.FromContext(ctx)

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	order, err := h.service.Checkout(ctx, who, application.CheckoutInput{
		Token:          req.Token,
		Note:           req.Note,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, orderView(order, false))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOrders")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	orders, err := h.service.Orders(ctx, who)
	if err != nil {
		web.Error(w, err)
		return
	}

	views := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o, who.IsAdmin))
	}
	web.JSON(w, http.StatusOK, map[string]any{"orders": views})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrder")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}

	order, err := h.service.Order(ctx, who, id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"order": orderView(order, who.IsAdmin)})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CancelOrder")
	defer span.End()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	if err := h.service.Cancel(ctx, id); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "order cancelled"})
}

type orderJSON struct {
	ID         int64           `json:"id"`
	TotalCents int64           `json:"total_cents"`
	OrderDate  string          `json:"order_date"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	PaymentID  int64           `json:"payment_id"`
	CustomerID int64           `json:"customer_id"`
	Items      []orderItemJSON `json:"order_items"`
	Customer   *customerJSON   `json:"customer,omitempty"`
}

type orderItemJSON struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

type customerJSON struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`
}

func orderView(o domain.Order, admin bool) orderJSON {
	v := orderJSON{
		ID:         o.ID,
		TotalCents: o.TotalCents,
		OrderDate:  o.OrderDate.Format(time.DateTime),
		Status:     string(o.Status),
		Note:       o.Note,
		PaymentID:  o.PaymentID,
		CustomerID: o.CustomerID,
		Items:      make([]orderItemJSON, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemJSON{ID: it.ID, Name: it.Name, PriceCents: it.PriceCents, Quantity: it.Quantity})
	}
	if admin && o.Customer != nil {
		v.Customer = &customerJSON{
			ID:              o.Customer.ID,
			Email:           o.Customer.Email,
			FirstName:       o.Customer.FirstName,
			LastName:        o.Customer.LastName,
			BillingAddress:  o.Customer.BillingAddress,
			ShippingAddress: o.Customer.ShippingAddress,
		}
	}
	return v
}
