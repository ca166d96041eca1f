package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshatjain02/ecommerce-backend/internal/customer/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

const customerColumns = `id, email, password_hash, first_name, last_name, billing_address, shipping_address, is_admin`

func (r *Repository) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (email, password_hash, first_name, last_name, billing_address, shipping_address, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.Email, c.PasswordHash, c.FirstName, c.LastName, c.BillingAddress, c.ShippingAddress, c.IsAdmin).Scan(&c.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (r *Repository) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email).
		Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &c.BillingAddress, &c.ShippingAddress, &c.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, errs.ErrNotFound
	}
	return c, err
}

func (r *Repository) Update(ctx context.Context, c domain.Customer) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET first_name = $2, last_name = $3, billing_address = $4, shipping_address = $5
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.BillingAddress, c.ShippingAddress)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *Repository) All(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
			&c.BillingAddress, &c.ShippingAddress, &c.IsAdmin); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
