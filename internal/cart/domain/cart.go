package domain

// Item is a cart line joined with its product's current name and price.
type Item struct {
	ProductID  int64
	Name       string
	PriceCents int64
	Image      string
	Quantity   int
}

type Cart struct {
	Items      []Item
	TotalCents int64
}

func NewCart(items []Item) Cart {
	var total int64
	for _, it := range items {
		total += int64(it.Quantity) * it.PriceCents
	}
	return Cart{Items: items, TotalCents: total}
}
