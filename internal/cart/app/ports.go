package app

import (
	"context"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
)

// ProductResolver fetches a product snapshot from the catalog. The engine
// treats it as an opaque, possibly failing lookup.
type ProductResolver interface {
	FetchProductByID(ctx context.Context, id string) (domain.Product, error)
}
