package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshatjain02/ecommerce-backend/internal/catalog/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type ProductRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewProductRepository(log *slog.Logger, pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{log: log, pool: pool}
}

const productColumns = `id, name, description, price_cents, image, is_active, is_featured, category_id`

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price_cents, image, is_active, is_featured, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Name, p.Description, p.PriceCents, p.Image, p.IsActive, p.IsFeatured, p.CategoryID).Scan(&p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) All(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) ByID(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, errs.ErrNotFound
	}
	return p, err
}

func (r *ProductRepository) ByName(ctx context.Context, name string) (domain.Product, error) {
	var p domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, errs.ErrNotFound
	}
	return p, err
}

func (r *ProductRepository) Update(ctx context.Context, p domain.Product) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, image = $5, is_active = $6, is_featured = $7, category_id = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Image, p.IsActive, p.IsFeatured, p.CategoryID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Image, &p.IsActive, &p.IsFeatured, &p.CategoryID)
}

type CategoryRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewCategoryRepository(log *slog.Logger, pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{log: log, pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, image, is_active) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Image, c.IsActive).Scan(&c.ID)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepository) All(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, image, is_active FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) ByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, image, is_active FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Image, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, errs.ErrNotFound
	}
	return c, err
}

func (r *CategoryRepository) ByName(ctx context.Context, name string) (domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, image, is_active FROM categories WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &c.Image, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, errs.ErrNotFound
	}
	return c, err
}

func (r *CategoryRepository) Update(ctx context.Context, c domain.Category) error {
	ct, err := r.pool.Exec(ctx, `UPDATE categories SET name = $2, image = $3, is_active = $4 WHERE id = $1`,
		c.ID, c.Name, c.Image, c.IsActive)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) ProductCount(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	return n, err
}
