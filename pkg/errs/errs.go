// Package errs carries the error taxonomy shared by all contexts. Callers
// classify failures with errors.Is / errors.As; "not found" is never folded
// into "validation failed".
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed input, rejected before any write.
	ErrValidation = errors.New("invalid input")

	// ErrEmptyCart rejects a checkout with nothing to check out.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound marks a missed order/product/category/customer lookup.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a missing or insufficient identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateCheckout rejects a replayed checkout idempotency key.
	ErrDuplicateCheckout = errors.New("duplicate checkout attempt")
)

// CommitError reports a failed write inside the checkout commit unit. The
// whole unit is rolled back; Step names the write that failed for triage.
type CommitError struct {
	Step string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("checkout commit failed at %s: %v", e.Step, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// GatewayError reports a failed payment gateway charge. Local rows already
// exist when it is raised, so it is surfaced distinctly from validation
// failures: it implies reconciliation, not a bad request.
type GatewayError struct {
	OrderID int64
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway charge failed for order %d: %v", e.OrderID, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
