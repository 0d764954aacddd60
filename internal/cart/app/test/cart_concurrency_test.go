package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dwikikusuma/cart-sync/internal/cart/app"
	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
	"github.com/dwikikusuma/cart-sync/internal/cart/infra/storage"
	"github.com/dwikikusuma/cart-sync/internal/cart/store"
	"github.com/dwikikusuma/cart-sync/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func newTestCart(t *testing.T, resolver app.ProductResolver) *app.Service {
	t.Helper()
	lines, err := store.NewLineStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("new line store: %v", err)
	}
	return app.New(lines, resolver, app.WithLogger(logger.Nop()))
}

// gatedResolver blocks inside the fetch until released, so tests can hold a
// resolution in flight deterministically.
type gatedResolver struct {
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (g *gatedResolver) FetchProductByID(ctx context.Context, id string) (domain.Product, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	g.entered <- struct{}{}
	<-g.release

	return domain.Product{ID: id, Name: "Kanap " + id, Price: decimal.NewFromInt(10)}, nil
}

func (g *gatedResolver) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestCart_ConcurrentSetLine_DistinctKeys(t *testing.T) {
	cart := newTestCart(t, &gatedResolver{})

	productID := uuid.NewString()

	const N = 50
	g := errgroup.Group{}
	for i := 0; i < N; i++ {
		color := fmt.Sprintf("color-%d", i)
		g.Go(func() error {
			_, err := cart.SetLine(app.LineInput{ID: productID, Color: color, Quantity: 1})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent SetLine failed: %v", err)
	}

	if got := len(cart.Lines()); got != N {
		t.Fatalf("expected %d lines, got %d", N, got)
	}
	if got := cart.TotalQuantity(); got != N {
		t.Fatalf("expected total quantity %d, got %d", N, got)
	}
}

func TestCart_DeleteWhileResolutionInFlight(t *testing.T) {
	resolver := &gatedResolver{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	cart := newTestCart(t, resolver)

	productID := uuid.NewString()
	if _, err := cart.SetLine(app.LineInput{ID: productID, Color: "red", Quantity: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := cart.SetLine(app.LineInput{ID: productID, Color: "blue", Quantity: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := cart.ResolveLine(context.Background(), productID, "red")
		done <- err
	}()

	// wait until the fetch is in flight, then delete the line under it
	<-resolver.entered
	if err := cart.DeleteLine(productID, "red"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(resolver.release)

	if err := <-done; !errors.Is(err, app.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound for the deleted line, got %v", err)
	}

	// the deleted line stays deleted, the snapshot still reaches siblings
	if _, ok, _ := cart.GetLine(productID, "red"); ok {
		t.Fatal("deleted line was resurrected by the in-flight resolution")
	}
	sibling, ok, _ := cart.GetLine(productID, "blue")
	if !ok || !sibling.HasProduct() {
		t.Fatalf("sibling missed the propagated snapshot: ok=%v %+v", ok, sibling.Product)
	}
	if got := resolver.callCount(); got != 1 {
		t.Fatalf("expected a single fetch, got %d", got)
	}
}
