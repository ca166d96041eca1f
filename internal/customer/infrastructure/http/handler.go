package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/akshatjain02/ecommerce-backend/internal/customer/application"
	"github.com/akshatjain02/ecommerce-backend/internal/customer/domain"
	"github.com/akshatjain02/ecommerce-backend/internal/web"
	"github.com/akshatjain02/ecommerce-backend/pkg/auth"
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
		tracer:  otel.Tracer("customer-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/customers/signup", h.signUp)
	r.Post("/customers/signin", h.signIn)
	r.Get("/customers/me", h.currentUser)
	r.With(auth.Require).Put("/customers/me", h.update)
	r.With(auth.RequireAdmin).Get("/customers", h.list)
	return r
}

type signUpReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerJSON struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`
	IsAdmin         bool   `json:"is_admin"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SignUp")
	defer span.End()

	var req signUpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, token, err := h.service.SignUp(ctx, application.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"customer": customerView(created), "token": token})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SignIn")
	defer span.End()

	var req signInReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	c, token, err := h.service.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"customer": customerView(c), "token": token})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		web.JSON(w, http.StatusOK, map[string]any{"current_user": nil})
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"current_user": map[string]any{
		"id":       id.ID,
		"email":    id.Email,
		"is_admin": id.IsAdmin,
	}})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCustomer")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	var req signUpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	err := h.service.Update(ctx, who, application.UpdateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "customer updated"})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListCustomers")
	defer span.End()

	customers, err := h.service.Customers(ctx)
	if err != nil {
		web.Error(w, err)
		return
	}
	views := make([]customerJSON, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView(c))
	}
	web.JSON(w, http.StatusOK, map[string]any{"customers": views})
}

func customerView(c domain.Customer) customerJSON {
	return customerJSON{
		ID:              c.ID,
		Email:           c.Email,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		BillingAddress:  c.BillingAddress,
		ShippingAddress: c.ShippingAddress,
		IsAdmin:         c.IsAdmin,
	}
}
