package application

import (
	"context"

	"github.com/akshatjain02/ecommerce-backend/internal/cart/domain"
)

// Repository mutates cart lines keyed by (customer_id, product_id). Add and
// Remove are single-statement conditional writes so concurrent mutations of
// the same line cannot lose updates.
type Repository interface {
	Items(ctx context.Context, customerID int64) ([]domain.Item, error)
	AddOne(ctx context.Context, customerID, productID int64) error
	RemoveOne(ctx context.Context, customerID, productID int64) error
	ProductExists(ctx context.Context, productID int64) (bool, error)
}
