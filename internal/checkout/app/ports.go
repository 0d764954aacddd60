package app

import (
	"context"

	"github.com/dwikikusuma/cart-sync/internal/checkout/domain"
)

// CartLine is the slice of cart state checkout needs.
type CartLine struct {
	ProductID string
	Color     string
	Quantity  int64
	Resolved  bool
}

type CartReader interface {
	Lines(ctx context.Context) ([]CartLine, error)
	Resolve(ctx context.Context, productID, color string) (CartLine, error)
}

type OrderSender interface {
	Send(ctx context.Context, order domain.Order) (domain.Order, error)
}
