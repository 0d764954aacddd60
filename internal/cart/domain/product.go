package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrMissingProductID = errors.New("product id is required")

// Product is a catalog snapshot attached to cart lines. The engine never
// mutates a Product; it only replaces the reference a Line or the cache
// holds.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Colors      []string
	Description string
	ImageURL    string
	AltText     string
}
