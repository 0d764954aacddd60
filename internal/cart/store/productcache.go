package store

import (
	"sync"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
)

// ProductCache keeps the last resolved snapshot per product id for the
// lifetime of the session. It is never persisted.
type ProductCache struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewProductCache() *ProductCache {
	return &ProductCache{
		products: make(map[string]domain.Product),
	}
}

// Seed copies snapshots already carried by rehydrated lines into the cache.
func (c *ProductCache) Seed(lines []domain.Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range lines {
		if !line.HasProduct() {
			continue
		}
		c.products[line.Product.ID] = *line.Product
	}
}

// Get returns the cached snapshot for a product id.
func (c *ProductCache) Get(productID string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	return p, ok
}

// Set overwrites the cached snapshot; the cache always holds the most
// recently resolved one.
func (c *ProductCache) Set(p domain.Product) error {
	if p.ID == "" {
		return domain.ErrMissingProductID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
	return nil
}

// Propagate caches the product and fans it out to every line in the store
// that shares its id and still lacks a snapshot. Lines that already carry
// one are left untouched: first-resolved-wins per line. Lines deleted since
// the snapshot was requested are not resurrected.
func (c *ProductCache) Propagate(lines *LineStore, p domain.Product) error {
	if err := c.Set(p); err != nil {
		return err
	}

	for _, line := range lines.All() {
		if line.ID != p.ID || line.HasProduct() {
			continue
		}
		snapshot := p
		line.Product = &snapshot
		if err := lines.Put(line); err != nil {
			return err
		}
	}
	return nil
}
