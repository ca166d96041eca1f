package domain

import "time"

type OrderStatus string

const (
	StatusSuccess   OrderStatus = "SUCCESS"
	StatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         int64
	TotalCents int64
	OrderDate  time.Time
	Status     OrderStatus
	Note       string
	PaymentID  int64
	CustomerID int64
	Items      []OrderItem

	// Customer is populated for admin-scoped reads only.
	Customer *CustomerSummary
}

// OrderItem is a frozen snapshot of a priced cart line. Name and price are
// copied, not referenced, so later catalog edits cannot alter the order.
type OrderItem struct {
	ID         int64
	Name       string
	PriceCents int64
	Quantity   int
}

// Payment is created before its order exists; OrderID is backfilled exactly
// once and never changes afterwards.
type Payment struct {
	ID          int64
	OrderID     *int64
	AmountCents int64
	Token       string
	PaymentDate time.Time
}

type CustomerSummary struct {
	ID              int64
	Email           string
	FirstName       string
	LastName        string
	BillingAddress  string
	ShippingAddress string
}

// Scope limits order reads to the caller. Admin sees every order with
// customer identity attached; a customer sees only their own.
type Scope struct {
	CustomerID int64
	Admin      bool
}
