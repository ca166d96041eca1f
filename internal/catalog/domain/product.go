package domain

type Product struct {
	ID          int64
	Name        string
	Description string
	PriceCents  int64
	Image       string
	IsActive    bool
	IsFeatured  bool
	CategoryID  int64
}

type Category struct {
	ID       int64
	Name     string
	Image    string
	IsActive bool
}
