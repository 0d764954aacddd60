package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/cart-sync/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/cart-sync/internal/checkout/app"
)

// CartServiceReader exposes the cart facade through checkout's reader port.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Lines(ctx context.Context) ([]checkoutapp.CartLine, error) {
	lines := r.svc.Lines()

	out := make([]checkoutapp.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, checkoutapp.CartLine{
			ProductID: line.ID,
			Color:     line.Color,
			Quantity:  line.Quantity,
			Resolved:  line.HasProduct(),
		})
	}
	return out, nil
}

func (r *CartServiceReader) Resolve(ctx context.Context, productID, color string) (checkoutapp.CartLine, error) {
	line, err := r.svc.ResolveLine(ctx, productID, color)
	if err != nil {
		return checkoutapp.CartLine{}, err
	}

	return checkoutapp.CartLine{
		ProductID: line.ID,
		Color:     line.Color,
		Quantity:  line.Quantity,
		Resolved:  line.HasProduct(),
	}, nil
}
