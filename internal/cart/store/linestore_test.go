package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
	"github.com/dwikikusuma/cart-sync/internal/cart/infra/storage"
	"github.com/shopspring/decimal"
)

func testProduct(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "Kanap " + id,
		Price:       decimal.NewFromFloat(29.99),
		Colors:      []string{"red", "blue"},
		Description: "a sofa",
		ImageURL:    "http://localhost:3000/images/" + id + ".jpg",
		AltText:     "photo of a sofa",
	}
}

func TestNewLineStoreBootstrap(t *testing.T) {
	mem := storage.NewMemoryStore()

	s, err := NewLineStore(mem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d lines", s.Len())
	}

	// first construction writes the canonical empty blob
	blob, ok, err := mem.Read()
	if err != nil || !ok {
		t.Fatalf("expected a stored blob, got ok=%v err=%v", ok, err)
	}
	if string(blob) != "{}" {
		t.Fatalf("expected canonical empty blob, got %s", blob)
	}
}

func TestLineStoreRoundTrip(t *testing.T) {
	mem := storage.NewMemoryStore()

	s, err := NewLineStore(mem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := testProduct("a1")
	resolved := domain.Line{ID: "a1", Color: "red", Quantity: 2, Product: &p}
	bare := domain.Line{ID: "b2", Color: "green", Quantity: 7}
	for _, line := range []domain.Line{resolved, bare} {
		if err := s.Put(line); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := NewLineStore(mem)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", reloaded.Len())
	}

	got, ok, err := reloaded.Get("a1", "red")
	if err != nil || !ok {
		t.Fatalf("expected a1/red, got ok=%v err=%v", ok, err)
	}
	if got.Quantity != 2 || !got.HasProduct() {
		t.Fatalf("expected resolved line qty=2, got %+v", got)
	}
	if got.Product.Name != p.Name || !got.Product.Price.Equal(p.Price) {
		t.Fatalf("product snapshot did not survive: %+v", got.Product)
	}

	got, ok, err = reloaded.Get("b2", "green")
	if err != nil || !ok {
		t.Fatalf("expected b2/green, got ok=%v err=%v", ok, err)
	}
	if got.HasProduct() {
		t.Fatalf("unresolved line grew a product: %+v", got)
	}
}

func TestLineStoreBlobFormat(t *testing.T) {
	mem := storage.NewMemoryStore()

	s, err := NewLineStore(mem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := testProduct("a1")
	if err := s.Put(domain.Line{ID: "a1", Color: "red", Quantity: 2, Product: &p}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(domain.Line{ID: "b2", Color: "green", Quantity: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	blob, _, _ := mem.Read()
	var raw map[string]map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("blob is not a keyed object: %v", err)
	}

	rec, ok := raw["a1__red"]
	if !ok {
		t.Fatalf("expected key a1__red, got %v", raw)
	}
	// product fields sit flat alongside the line fields
	if rec["name"] != p.Name || rec["_id"] != "a1" {
		t.Fatalf("expected flattened product fields, got %v", rec)
	}

	rec, ok = raw["b2__green"]
	if !ok {
		t.Fatalf("expected key b2__green, got %v", raw)
	}
	if _, present := rec["name"]; present {
		t.Fatalf("unresolved record must not carry product fields: %v", rec)
	}
}

func TestNewLineStoreCorruptBlob(t *testing.T) {
	mem := storage.NewMemoryStore()
	if err := mem.Write([]byte("not json at all")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := NewLineStore(mem)
	if !errors.Is(err, ErrCorruptBlob) {
		t.Fatalf("expected ErrCorruptBlob, got %v", err)
	}
}

func TestLineStoreDeleteAbsent(t *testing.T) {
	s, err := NewLineStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Delete("nope", "red"); err != nil {
		t.Fatalf("deleting an absent line must be a no-op, got %v", err)
	}

	if err := s.Delete("", "red"); !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestLineStorePutOverwritesByKey(t *testing.T) {
	s, err := NewLineStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Put(domain.Line{ID: "a1", Color: "red", Quantity: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(domain.Line{ID: "a1", Color: "red", Quantity: 5}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected one line per key, got %d", s.Len())
	}
	got, _, _ := s.Get("a1", "red")
	if got.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", got.Quantity)
	}
}
