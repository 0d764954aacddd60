package domain

// Contact is the buyer's checkout contact information.
type Contact struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Email     string
}

// Order is a submitted order: the contact plus one product id per cart line,
// and the id the API assigns once the order is placed.
type Order struct {
	Contact    Contact
	ProductIDs []string
	OrderID    string
}
