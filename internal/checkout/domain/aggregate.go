package domain

import "time"

// OrderRow is one flattened row of the orders × order_items join, plus
// customer identity columns under admin scope.
type OrderRow struct {
	OrderID    int64
	TotalCents int64
	OrderDate  time.Time
	Status     OrderStatus
	Note       string
	PaymentID  int64
	CustomerID int64

	ItemID         int64
	ItemName       string
	ItemPriceCents int64
	ItemQuantity   int

	Customer *CustomerSummary
}

// GroupOrderRows folds flattened join rows into nested orders. Orders keep
// their first-seen position, items accumulate in row order, and order-level
// fields come from the first row of each order id. Deterministic for a given
// row order; nothing is reordered or deduplicated.
func GroupOrderRows(rows []OrderRow) []Order {
	grouped := make([]*Order, 0, len(rows))
	byID := make(map[int64]*Order, len(rows))

	for _, r := range rows {
		o, ok := byID[r.OrderID]
		if !ok {
			o = &Order{
				ID:         r.OrderID,
				TotalCents: r.TotalCents,
				OrderDate:  r.OrderDate,
				Status:     r.Status,
				Note:       r.Note,
				PaymentID:  r.PaymentID,
				CustomerID: r.CustomerID,
				Customer:   r.Customer,
			}
			byID[r.OrderID] = o
			grouped = append(grouped, o)
		}
		o.Items = append(o.Items, OrderItem{
			ID:         r.ItemID,
			Name:       r.ItemName,
			PriceCents: r.ItemPriceCents,
			Quantity:   r.ItemQuantity,
		})
	}

	out := make([]Order, len(grouped))
	for i, o := range grouped {
		out[i] = *o
	}
	return out
}
