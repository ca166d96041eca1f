package domain

type Customer struct {
	ID              int64
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	BillingAddress  string
	ShippingAddress string
	IsAdmin         bool
}
