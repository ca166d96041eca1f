package application

import (
	"context"

	"github.com/akshatjain02/ecommerce-backend/internal/customer/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	ByEmail(ctx context.Context, email string) (domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) error
	All(ctx context.Context) ([]domain.Customer, error)
}
