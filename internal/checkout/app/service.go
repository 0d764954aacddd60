package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/cart-sync/internal/checkout/domain"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	cart   CartReader
	orders OrderSender

	maxConcurrent int
}

func NewService(cart CartReader, orders OrderSender, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		orders:        orders,
		maxConcurrent: maxConcurrent,
	}
}

// PlaceOrder validates the contact, makes sure every cart line carries a
// product snapshot, and submits one product id per line to the order
// endpoint. It does not clear the cart; that is the caller's concern.
func (s *Service) PlaceOrder(ctx context.Context, contact domain.Contact) (domain.Order, error) {
	if err := ValidateContact(contact); err != nil {
		return domain.Order{}, err
	}

	lines, err := s.cart.Lines(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			if line.Resolved {
				return nil
			}

			resolved, err := s.cart.Resolve(ctx, line.ProductID, line.Color)
			if err != nil {
				return fmt.Errorf("resolve line %s/%s: %w", line.ProductID, line.Color, err)
			}
			lines[idx] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{Contact: contact}
	for _, line := range lines {
		order.ProductIDs = append(order.ProductIDs, line.ProductID)
	}

	placed, err := s.orders.Send(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("send order: %w", err)
	}

	return placed, nil
}
