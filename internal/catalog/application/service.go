package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akshatjain02/ecommerce-backend/internal/catalog/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Service struct {
	log        *slog.Logger
	products   ProductRepository
	categories CategoryRepository
}

func NewService(log *slog.Logger, products ProductRepository, categories CategoryRepository) *Service {
	return &Service{log: log, products: products, categories: categories}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", errs.ErrValidation)
	}

	if _, err := s.products.ByName(ctx, p.Name); err == nil {
		return domain.Product{}, fmt.Errorf("%w: product %q already exists", errs.ErrValidation, p.Name)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return domain.Product{}, err
	}

	if _, err := s.categories.ByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("%w: category %d does not exist", errs.ErrValidation, p.CategoryID)
		}
		return domain.Product{}, err
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.log.Info("product created", "product_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products.All(ctx)
}

func (s *Service) Product(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.ByID(ctx, id)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) error {
	if _, err := s.products.ByID(ctx, p.ID); err != nil {
		return err
	}
	if _, err := s.categories.ByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", errs.ErrValidation, p.CategoryID)
		}
		return err
	}
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.products.ByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", errs.ErrValidation)
	}

	if _, err := s.categories.ByName(ctx, c.Name); err == nil {
		return domain.Category{}, fmt.Errorf("%w: category %q already exists", errs.ErrValidation, c.Name)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return domain.Category{}, err
	}

	created, err := s.categories.Create(ctx, c)
	if err != nil {
		return domain.Category{}, err
	}
	s.log.Info("category created", "category_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.All(ctx)
}

func (s *Service) Category(ctx context.Context, id int64) (domain.Category, error) {
	return s.categories.ByID(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, c domain.Category) error {
	if _, err := s.categories.ByID(ctx, c.ID); err != nil {
		return err
	}
	return s.categories.Update(ctx, c)
}

// DeleteCategory refuses to delete a category that still has products.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.ByID(ctx, id); err != nil {
		return err
	}
	n, err := s.categories.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: cannot delete category while %d products are still in it", errs.ErrValidation, n)
	}
	return s.categories.Delete(ctx, id)
}
