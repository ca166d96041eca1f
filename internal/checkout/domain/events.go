package domain

// OrderCreated is written to the outbox inside the checkout commit unit.
type OrderCreated struct {
	OrderID    int64       `json:"order_id"`
	PaymentID  int64       `json:"payment_id"`
	CustomerID int64       `json:"customer_id"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
}

// OrderCancelled is written when an order transitions to CANCELLED, either by
// an operator or after a failed gateway charge.
type OrderCancelled struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
}
