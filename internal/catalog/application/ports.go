package application

import (
	"context"

	"github.com/akshatjain02/ecommerce-backend/internal/catalog/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	All(ctx context.Context) ([]domain.Product, error)
	ByID(ctx context.Context, id int64) (domain.Product, error)
	ByName(ctx context.Context, name string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	All(ctx context.Context) ([]domain.Category, error)
	ByID(ctx context.Context, id int64) (domain.Category, error)
	ByName(ctx context.Context, name string) (domain.Category, error)
	Update(ctx context.Context, c domain.Category) error
	Delete(ctx context.Context, id int64) error
	ProductCount(ctx context.Context, categoryID int64) (int64, error)
}
