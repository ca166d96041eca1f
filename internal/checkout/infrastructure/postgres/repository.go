package postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
	"github.com/akshatjain02/ecommerce-backend/pkg/tracing"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// CartSnapshot reads the customer's cart joined with current catalog prices.
// Ordered by product id so later materialization is deterministic.
func (r *Repository) CartSnapshot(ctx context.Context, customerID int64) (domain.CartSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.product_id, p.name, p.price_cents, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1
		ORDER BY c.product_id`, customerID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	defer rows.Close()

	var lines []domain.PricedLine
	for rows.Next() {
		var l domain.PricedLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.PriceCents, &l.Quantity); err != nil {
			return domain.CartSnapshot{}, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return domain.CartSnapshot{}, err
	}
	return domain.NewCartSnapshot(customerID, lines), nil
}

// CreateOrder runs the commit unit: payment insert, order insert, payment
// backfill, item materialization, cart clearing and the OrderCreated outbox
// event, all in one transaction. Nothing survives a mid-unit failure.
func (r *Repository) CreateOrder(ctx context.Context, snap domain.CartSnapshot, token, note string) (domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Order{}, &errs.CommitError{Step: "begin", Err: err}
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Second precision is intentional: order dates render stably.
	now := time.Now().UTC().Truncate(time.Second)

	var paymentID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (order_id, amount_cents, gateway_token, payment_date)
		VALUES (NULL, $1, $2, $3)
		RETURNING id`, snap.TotalCents, token, now).Scan(&paymentID)
	if err != nil {
		return domain.Order{}, &errs.CommitError{Step: "insert payment", Err: err}
	}

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (total_cents, order_date, status, note, payment_id, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, snap.TotalCents, now, domain.StatusSuccess, note, paymentID, snap.CustomerID).Scan(&orderID)
	if err != nil {
		return domain.Order{}, &errs.CommitError{Step: "insert order", Err: err}
	}

	// Backfill the payment→order link exactly once.
	ct, err := tx.Exec(ctx, `UPDATE payments SET order_id = $1 WHERE id = $2 AND order_id IS NULL`, orderID, paymentID)
	if err != nil || ct.RowsAffected() == 0 {
		return domain.Order{}, &errs.CommitError{Step: "link payment", Err: err}
	}

	batch := &pgx.Batch{}
	for _, l := range snap.Lines {
		batch.Queue(`INSERT INTO order_items (order_id, name, price_cents, quantity) VALUES ($1, $2, $3, $4)`,
			orderID, l.Name, l.PriceCents, l.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, &errs.CommitError{Step: "insert order items", Err: err}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, snap.CustomerID); err != nil {
		return domain.Order{}, &errs.CommitError{Step: "clear cart", Err: err}
	}

	order := domain.Order{
		ID:         orderID,
		TotalCents: snap.TotalCents,
		OrderDate:  now,
		Status:     domain.StatusSuccess,
		Note:       note,
		PaymentID:  paymentID,
		CustomerID: snap.CustomerID,
		Items:      materialized(snap),
	}

	event := domain.OrderCreated{
		OrderID:    orderID,
		PaymentID:  paymentID,
		CustomerID: snap.CustomerID,
		TotalCents: snap.TotalCents,
		Items:      order.Items,
	}
	if err := r.queueEvent(ctx, tx, "order", orderID, "OrderCreated", event); err != nil {
		return domain.Order{}, &errs.CommitError{Step: "queue event", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, &errs.CommitError{Step: "commit", Err: err}
	}
	return order, nil
}

func materialized(snap domain.CartSnapshot) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, domain.OrderItem{Name: l.Name, PriceCents: l.PriceCents, Quantity: l.Quantity})
	}
	return items
}

const orderRowColumns = `
	o.id, o.total_cents, o.order_date, o.status, o.note, o.payment_id, o.customer_id,
	i.id, i.name, i.price_cents, i.quantity`

// OrderRows returns the flattened orders × order_items join under the given
// scope. Admin scope joins the owning customer's identity columns as well.
func (r *Repository) OrderRows(ctx context.Context, scope domain.Scope) ([]domain.OrderRow, error) {
	if scope.Admin {
		rows, err := r.pool.Query(ctx, `
			SELECT `+orderRowColumns+`,
				c.id, c.email, c.first_name, c.last_name, c.billing_address, c.shipping_address
			FROM orders o
			JOIN order_items i ON i.order_id = o.id
			JOIN customers c ON c.id = o.customer_id
			ORDER BY o.id, i.id`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanOrderRows(rows, true)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderRowColumns+`
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_id = $1
		ORDER BY o.id, i.id`, scope.CustomerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows, false)
}

func (r *Repository) OrderRowsByID(ctx context.Context, orderID int64, scope domain.Scope) ([]domain.OrderRow, error) {
	if scope.Admin {
		rows, err := r.pool.Query(ctx, `
			SELECT `+orderRowColumns+`,
				c.id, c.email, c.first_name, c.last_name, c.billing_address, c.shipping_address
			FROM orders o
			JOIN order_items i ON i.order_id = o.id
			JOIN customers c ON c.id = o.customer_id
			WHERE o.id = $1
			ORDER BY i.id`, orderID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanOrderRows(rows, true)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderRowColumns+`
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.id = $1 AND o.customer_id = $2
		ORDER BY i.id`, orderID, scope.CustomerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows, false)
}

func scanOrderRows(rows pgx.Rows, withCustomer bool) ([]domain.OrderRow, error) {
	var out []domain.OrderRow
	for rows.Next() {
		var row domain.OrderRow
		dest := []any{
			&row.OrderID, &row.TotalCents, &row.OrderDate, &row.Status, &row.Note, &row.PaymentID, &row.CustomerID,
			&row.ItemID, &row.ItemName, &row.ItemPriceCents, &row.ItemQuantity,
		}
		var cust domain.CustomerSummary
		if withCustomer {
			dest = append(dest, &cust.ID, &cust.Email, &cust.FirstName, &cust.LastName, &cust.BillingAddress, &cust.ShippingAddress)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if withCustomer {
			c := cust
			row.Customer = &c
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SetStatus updates an order's status and queues an OrderCancelled event in
// the same transaction. The update is blind: re-cancelling an already
// cancelled order matches the row again and succeeds.
func (r *Repository) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus, reason string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}

	if status == domain.StatusCancelled {
		event := domain.OrderCancelled{OrderID: orderID, Reason: reason}
		if err := r.queueEvent(ctx, tx, "order", orderID, "OrderCancelled", event); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repository) queueEvent(ctx context.Context, tx pgx.Tx, aggregateType string, aggregateID int64, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	headers := map[string]string{"source": "checkout"}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')`,
		aggregateType, strconv.FormatInt(aggregateID, 10), eventType, payload, headers, tracing.Traceparent(ctx))
	return err
}
