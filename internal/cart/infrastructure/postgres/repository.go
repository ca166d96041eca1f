package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshatjain02/ecommerce-backend/internal/cart/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Items(ctx context.Context, customerID int64) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.product_id, p.name, p.price_cents, p.image, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1
		ORDER BY c.product_id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.PriceCents, &it.Image, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddOne is a single upsert: the database enforces row-level atomicity, so
// two concurrent adds both land instead of one overwriting the other.
func (r *Repository) AddOne(ctx context.Context, customerID, productID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1`, customerID, productID)
	return err
}

// RemoveOne decrements the line while quantity > 1, otherwise deletes it.
// Both statements are conditional; a line that never existed matches neither
// and the call is a no-op.
func (r *Repository) RemoveOne(ctx context.Context, customerID, productID int64) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET quantity = quantity - 1
		WHERE customer_id = $1 AND product_id = $2 AND quantity > 1`, customerID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		return nil
	}
	_, err = r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE customer_id = $1 AND product_id = $2 AND quantity <= 1`, customerID, productID)
	return err
}

func (r *Repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&ok)
	return ok, err
}
