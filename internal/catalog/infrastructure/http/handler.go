package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/akshatjain02/ecommerce-backend/internal/catalog/application"
	"github.com/akshatjain02/ecommerce-backend/internal/catalog/domain"
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
		tracer:  otel.Tracer("catalog-http"),
	}
}

// Reads are public; mutations are admin-only.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories", h.listCategories)
	r.Get("/categories/{id}", h.getCategory)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/products", h.createProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)
		r.Post("/categories", h.createCategory)
		r.Put("/categories/{id}", h.updateCategory)
		r.Delete("/categories/{id}", h.deleteCategory)
	})
	return r
}

type productJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Image       string `json:"image"`
	IsActive    bool   `json:"is_active"`
	IsFeatured  bool   `json:"is_featured"`
	CategoryID  int64  `json:"category_id"`
}

type categoryJSON struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	IsActive bool   `json:"is_active"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateProduct")
	defer span.End()

	var req productJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateProduct(ctx, productDomain(req))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"product": productView(created)})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	products, err := h.service.Products(ctx)
	if err != nil {
		web.Error(w, err)
		return
	}
	views := make([]productJSON, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	web.JSON(w, http.StatusOK, map[string]any{"products": views})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	p, err := h.service.Product(ctx, id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"product": productView(p)})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateProduct")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	var req productJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	p := productDomain(req)
	p.ID = id
	if err := h.service.UpdateProduct(ctx, p); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "product updated"})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteProduct")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	if err := h.service.DeleteProduct(ctx, id); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateCategory")
	defer span.End()

	var req categoryJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateCategory(ctx, domain.Category{Name: req.Name, Image: req.Image, IsActive: req.IsActive})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"category": categoryView(created)})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListCategories")
	defer span.End()

	categories, err := h.service.Categories(ctx)
	if err != nil {
		web.Error(w, err)
		return
	}
	views := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView(c))
	}
	web.JSON(w, http.StatusOK, map[string]any{"categories": views})
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCategory")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	c, err := h.service.Category(ctx, id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"category": categoryView(c)})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCategory")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	var req categoryJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	c := domain.Category{ID: id, Name: req.Name, Image: req.Image, IsActive: req.IsActive}
	if err := h.service.UpdateCategory(ctx, c); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "category updated"})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteCategory")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		web.Error(w, errs.ErrNotFound)
		return
	}
	if err := h.service.DeleteCategory(ctx, id); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func productDomain(req productJSON) domain.Product {
	return domain.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Image:       req.Image,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
	}
}

func productView(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Image:       p.Image,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		CategoryID:  p.CategoryID,
	}
}

func categoryView(c domain.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Image: c.Image, IsActive: c.IsActive}
}
