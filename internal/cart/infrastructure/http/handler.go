package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/akshatjain02/ecommerce-backend/internal/cart/application"
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
		tracer:  otel.Tracer("cart-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Require)
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addItem)
	r.Delete("/cart/items", h.removeItem)
	return r
}

type itemReq struct {
	ProductID int64 `json:"product_id"`
}

type cartItemJSON struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	cart, err := h.service.Cart(ctx, who.ID)
	if err != nil {
		web.Error(w, err)
		return
	}

	items := make([]cartItemJSON, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemJSON{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Image:      it.Image,
			Quantity:   it.Quantity,
		})
	}
	web.JSON(w, http.StatusOK, map[string]any{"cart": items, "total_cents": cart.TotalCents})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddCartItem")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	var req itemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.service.AddItem(ctx, who.ID, req.ProductID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "cart item added"})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()

	who, _ := auth.FromContext(ctx)
	var req itemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.service.RemoveItem(ctx, who.ID, req.ProductID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "cart item removed"})
}
