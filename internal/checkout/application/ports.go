package application

import (
	"context"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/domain"
)

// Repository owns the persisted side of checkout. CreateOrder runs the whole
// commit unit in one transaction: payment insert, order insert, payment
// backfill, item materialization, cart clearing and the outbox event. Any
// failure rolls the unit back and surfaces as *errs.CommitError.
type Repository interface {
	CartSnapshot(ctx context.Context, customerID int64) (domain.CartSnapshot, error)
	CreateOrder(ctx context.Context, snap domain.CartSnapshot, token, note string) (domain.Order, error)
	OrderRows(ctx context.Context, scope domain.Scope) ([]domain.OrderRow, error)
	OrderRowsByID(ctx context.Context, orderID int64, scope domain.Scope) ([]domain.OrderRow, error)
	SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus, reason string) error
}

// Gateway charges the external payment processor. Never transactional with
// the local commit; called strictly after local rows are durable.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type ChargeRequest struct {
	AmountCents    int64
	Currency       string
	Token          string
	Description    string
	IdempotencyKey string
}

type ChargeResult struct {
	Reference string
}

// IdempotencyStore claims per-attempt checkout keys.
type IdempotencyStore interface {
	Key(customerID int64, clientKey string) string
	Seen(ctx context.Context, key string) (bool, error)
}
