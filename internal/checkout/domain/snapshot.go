package domain

import "time"

// PricedLine is a cart line joined with the catalog price at snapshot time.
type PricedLine struct {
	ProductID  int64
	Name       string
	PriceCents int64
	Quantity   int
}

// CartSnapshot is the sole input to the commit unit. It is taken once and
// never re-queried, so a cart mutation mid-checkout cannot invalidate a total
// that is already being charged.
type CartSnapshot struct {
	CustomerID int64
	Lines      []PricedLine
	TotalCents int64
	TakenAt    time.Time
}

func NewCartSnapshot(customerID int64, lines []PricedLine) CartSnapshot {
	var total int64
	for _, l := range lines {
		total += int64(l.Quantity) * l.PriceCents
	}
	return CartSnapshot{
		CustomerID: customerID,
		Lines:      lines,
		TotalCents: total,
		TakenAt:    time.Now().UTC(),
	}
}

func (s CartSnapshot) Empty() bool { return len(s.Lines) == 0 }
