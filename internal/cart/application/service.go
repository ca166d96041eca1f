package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akshatjain02/ecommerce-backend/internal/cart/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Cart(ctx context.Context, customerID int64) (domain.Cart, error) {
	items, err := s.repo.Items(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.NewCart(items), nil
}

// AddItem increments the line for (customer, product) by one, creating it at
// quantity 1 when absent.
func (s *Service) AddItem(ctx context.Context, customerID, productID int64) error {
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: product %d does not exist", errs.ErrNotFound, productID)
	}
	return s.repo.AddOne(ctx, customerID, productID)
}

// RemoveItem decrements the line by one, deleting it at zero. Removing an
// absent line is a no-op success.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID int64) error {
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: product %d does not exist", errs.ErrNotFound, productID)
	}
	return s.repo.RemoveOne(ctx, customerID, productID)
}
