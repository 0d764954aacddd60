package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
	"github.com/dwikikusuma/cart-sync/internal/cart/store"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("line not found")
)

// LineInput is the record accepted by SetLine. Product is optional; when
// present and well-formed it is authoritative for its product id.
type LineInput struct {
	ID       string
	Color    string
	Quantity int64
	Product  *domain.Product
}

// Service is the cart facade. It owns the line store and the product cache
// and keeps every line referencing the same product in sync after any
// single line is updated. Every mutating operation persists the full line
// store before returning.
type Service struct {
	log      *slog.Logger
	lines    *store.LineStore
	products *store.ProductCache
	resolver ProductResolver

	inflight singleflight.Group
}

func New(lines *store.LineStore, resolver ProductResolver, opts ...Option) *Service {
	cfg := applyOptions(opts)
	s := &Service{
		log:      cfg.log,
		lines:    lines,
		products: store.NewProductCache(),
		resolver: resolver,
	}
	// rebuild the session cache from lines stored resolved, so a quantity
	// update after a reload keeps its snapshot
	s.products.Seed(lines.All())
	return s
}

// SetLine inserts or updates the line for input's (id, color) pair. It backs
// both add and update; the key-based overwrite makes the two identical. A
// well-formed caller-supplied product is authoritative and fans out to
// sibling lines; otherwise a cached snapshot for the id fills the gap.
func (s *Service) SetLine(input LineInput) (domain.Line, error) {
	if input.Quantity < 1 {
		return domain.Line{}, ErrInvalidQuantity
	}

	line := domain.Line{ID: input.ID, Color: input.Color, Quantity: input.Quantity}
	if _, err := line.Key(); err != nil {
		return domain.Line{}, err
	}

	if input.Product != nil && input.Product.ID != "" {
		snapshot := *input.Product
		line.Product = &snapshot
		if err := s.products.Propagate(s.lines, snapshot); err != nil {
			return domain.Line{}, err
		}
	} else if cached, ok := s.products.Get(line.ID); ok {
		line.Product = &cached
	}

	if err := s.lines.Put(line); err != nil {
		return domain.Line{}, err
	}
	if err := s.lines.Save(); err != nil {
		return domain.Line{}, err
	}

	s.log.Debug("line set",
		slog.String("id", line.ID),
		slog.String("color", line.Color),
		slog.Int64("quantity", line.Quantity),
	)
	return line, nil
}

// GetLine is a pure lookup: no side effects, no resolution.
func (s *Service) GetLine(id, color string) (domain.Line, bool, error) {
	return s.lines.Get(id, color)
}

// DeleteLine removes the line and persists. The product cache entry for the
// line's id survives; other lines may still reference it.
func (s *Service) DeleteLine(id, color string) error {
	if err := s.lines.Delete(id, color); err != nil {
		return err
	}
	if err := s.lines.Save(); err != nil {
		return err
	}

	s.log.Debug("line deleted", slog.String("id", id), slog.String("color", color))
	return nil
}

// ResolveLine fetches the line's product snapshot when it is missing. A line
// that already carries one returns immediately; concurrent calls for the
// same line share a single catalog request. On success the snapshot fans
// out to every sibling line sharing the product id. On failure the error
// propagates, nothing is written, and a later call retries. A line deleted
// while the fetch is in flight stays deleted.
func (s *Service) ResolveLine(ctx context.Context, id, color string) (domain.Line, error) {
	line, ok, err := s.lines.Get(id, color)
	if err != nil {
		return domain.Line{}, err
	}
	if !ok {
		return domain.Line{}, ErrLineNotFound
	}
	if line.HasProduct() {
		return line, nil
	}

	key, err := domain.LineKey(id, color)
	if err != nil {
		return domain.Line{}, err
	}
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.resolver.FetchProductByID(ctx, id)
	})
	if err != nil {
		return domain.Line{}, fmt.Errorf("resolve product %s: %w", id, err)
	}
	product := v.(domain.Product)

	if err := s.products.Propagate(s.lines, product); err != nil {
		return domain.Line{}, err
	}
	if err := s.lines.Save(); err != nil {
		return domain.Line{}, err
	}

	line, ok, err = s.lines.Get(id, color)
	if err != nil {
		return domain.Line{}, err
	}
	if !ok {
		return domain.Line{}, ErrLineNotFound
	}

	s.log.Debug("line resolved", slog.String("id", id), slog.String("color", color))
	return line, nil
}

// Lines snapshots the current cart entries; order is not significant.
func (s *Service) Lines() []domain.Line {
	return s.lines.All()
}

// TotalQuantity sums every line's quantity. Derived, never stored.
func (s *Service) TotalQuantity() int64 {
	var total int64
	for _, line := range s.lines.All() {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums quantity times unit price over resolved lines. Unresolved
// lines have not been priced yet and contribute zero; they still count
// toward TotalQuantity.
func (s *Service) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines.All() {
		if !line.HasProduct() {
			continue
		}
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}
