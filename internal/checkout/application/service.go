package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/auth"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Service struct {
	log      *slog.Logger
	repo     Repository
	gateway  Gateway
	idem     IdempotencyStore
	currency string
}

// NewService wires the checkout pipeline. idem may be nil, in which case
// duplicate-attempt guarding is disabled.
func NewService(log *slog.Logger, repo Repository, gateway Gateway, idem IdempotencyStore, currency string) *Service {
	return &Service{log: log, repo: repo, gateway: gateway, idem: idem, currency: currency}
}

type CheckoutInput struct {
	Token          string
	Note           string
	IdempotencyKey string
}

// Checkout converts the caller's cart into a durable order, payment and item
// snapshots, then charges the gateway. The local writes commit as one unit
// before the charge; a failed charge cancels the just-created order
// synchronously and surfaces a *errs.GatewayError.
func (s *Service) Checkout(ctx context.Context, who auth.Identity, in CheckoutInput) (domain.Order, error) {
	if strings.TrimSpace(in.Token) == "" {
		return domain.Order{}, fmt.Errorf("%w: missing payment token", errs.ErrValidation)
	}

	if s.idem != nil && in.IdempotencyKey != "" {
		key := s.idem.Key(who.ID, in.IdempotencyKey)
		seen, err := s.idem.Seen(ctx, key)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency check: %w", err)
		}
		if seen {
			return domain.Order{}, errs.ErrDuplicateCheckout
		}
	}

	snap, err := s.repo.CartSnapshot(ctx, who.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("cart snapshot: %w", err)
	}
	if snap.Empty() {
		return domain.Order{}, errs.ErrEmptyCart
	}

	order, err := s.repo.CreateOrder(ctx, snap, in.Token, in.Note)
	if err != nil {
		return domain.Order{}, err
	}

	_, err = s.gateway.Charge(ctx, ChargeRequest{
		AmountCents:    order.TotalCents,
		Currency:       s.currency,
		Token:          in.Token,
		Description:    fmt.Sprintf("order #%d (payment %d)", order.ID, order.PaymentID),
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		// Local rows are already durable. Cancel the order rather than leave
		// an uncharged SUCCESS order behind; the payment row is kept for
		// reconciliation.
		s.log.Error("gateway charge failed, cancelling order",
			"order_id", order.ID, "payment_id", order.PaymentID,
			"amount_cents", order.TotalCents, "err", err)
		if cErr := s.repo.SetStatus(ctx, order.ID, domain.StatusCancelled, "gateway charge failed"); cErr != nil {
			s.log.Error("cancel after failed charge also failed; manual reconciliation required",
				"order_id", order.ID, "err", cErr)
		} else {
			order.Status = domain.StatusCancelled
		}
		return order, &errs.GatewayError{OrderID: order.ID, Err: err}
	}

	return order, nil
}

// Orders returns the caller's orders, or every order with customer identity
// attached when the caller is an admin.
func (s *Service) Orders(ctx context.Context, who auth.Identity) ([]domain.Order, error) {
	rows, err := s.repo.OrderRows(ctx, domain.Scope{CustomerID: who.ID, Admin: who.IsAdmin})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return domain.GroupOrderRows(rows), nil
}

// Order returns one order with its items. Access control is enforced by
// scoping the query, not by a post-hoc check: an order owned by someone else
// yields the same ErrNotFound as a missing one.
func (s *Service) Order(ctx context.Context, who auth.Identity, orderID int64) (domain.Order, error) {
	rows, err := s.repo.OrderRowsByID(ctx, orderID, domain.Scope{CustomerID: who.ID, Admin: who.IsAdmin})
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(rows) == 0 {
		return domain.Order{}, errs.ErrNotFound
	}
	return domain.GroupOrderRows(rows)[0], nil
}

// Cancel transitions an order to CANCELLED. Re-cancelling an already
// cancelled order succeeds; a missing order yields ErrNotFound.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	if err := s.repo.SetStatus(ctx, orderID, domain.StatusCancelled, "cancelled by operator"); err != nil {
		return err
	}
	s.log.Info("order cancelled", "order_id", orderID)
	return nil
}
