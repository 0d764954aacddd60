// Package store holds the cart's in-memory state: the keyed line collection
// rehydrated from a persisted blob, and the per-session product cache that
// backfills lines sharing a product id.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// BlobStorage persists the whole line set as one opaque blob under a single
// storage key. Read reports ok=false when no blob was ever written; that is
// a first visit, not an error.
type BlobStorage interface {
	Read() (blob []byte, ok bool, err error)
	Write(blob []byte) error
}

// ErrCorruptBlob marks a stored blob that exists but cannot be decoded.
// Callers must treat it as fatal, never as an empty cart.
var ErrCorruptBlob = errors.New("corrupt cart blob")

// storedLine is the wire form of one record: line fields flat alongside the
// product fields. The product fields are present only when the line was
// stored resolved; "_id" marks presence.
type storedLine struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	Quantity int64  `json:"quantity"`

	ProductID   string           `json:"_id,omitempty"`
	Name        string           `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	AltText     string           `json:"altTxt,omitempty"`
}

func (rec storedLine) product() *domain.Product {
	if rec.ProductID == "" {
		return nil
	}
	p := domain.Product{
		ID:          rec.ProductID,
		Name:        rec.Name,
		Colors:      rec.Colors,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		AltText:     rec.AltText,
	}
	if rec.Price != nil {
		p.Price = *rec.Price
	}
	return &p
}

func toStored(line domain.Line) storedLine {
	rec := storedLine{
		ID:       line.ID,
		Color:    line.Color,
		Quantity: line.Quantity,
	}
	if line.HasProduct() {
		price := line.Product.Price
		rec.ProductID = line.Product.ID
		rec.Name = line.Product.Name
		rec.Price = &price
		rec.Colors = line.Product.Colors
		rec.Description = line.Product.Description
		rec.ImageURL = line.Product.ImageURL
		rec.AltText = line.Product.AltText
	}
	return rec
}

// LineStore maps the composite line key to its Line. There is at most one
// line per (id, color) pair by construction.
type LineStore struct {
	mu      sync.RWMutex
	storage BlobStorage
	lines   map[string]domain.Line
}

// NewLineStore rehydrates the store from storage. An absent blob initializes
// an empty store and immediately writes the canonical empty blob; a blob
// that exists but does not decode is ErrCorruptBlob.
func NewLineStore(storage BlobStorage) (*LineStore, error) {
	s := &LineStore{
		storage: storage,
		lines:   make(map[string]domain.Line),
	}

	blob, ok, err := storage.Read()
	if err != nil {
		return nil, fmt.Errorf("read cart blob: %w", err)
	}
	if !ok {
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	var records map[string]storedLine
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	for _, rec := range records {
		line := domain.Line{
			ID:       rec.ID,
			Color:    rec.Color,
			Quantity: rec.Quantity,
			Product:  rec.product(),
		}
		key, err := line.Key()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
		}
		s.lines[key] = line
	}

	return s, nil
}

// Get looks up the line for an (id, color) pair.
func (s *LineStore) Get(id, color string) (domain.Line, bool, error) {
	key, err := domain.LineKey(id, color)
	if err != nil {
		return domain.Line{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.lines[key]
	return line, ok, nil
}

// Put inserts or overwrites the line by its key. It does not persist; the
// facade saves once per mutating operation.
func (s *LineStore) Put(line domain.Line) error {
	key, err := line.Key()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[key] = line
	return nil
}

// Delete removes the line if present; deleting an absent line is a no-op.
func (s *LineStore) Delete(id, color string) error {
	key, err := domain.LineKey(id, color)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, key)
	return nil
}

// All snapshots the current lines; order is not significant.
func (s *LineStore) All() []domain.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.Line, 0, len(s.lines))
	for _, line := range s.lines {
		lines = append(lines, line)
	}
	return lines
}

// Len reports the number of lines in the store.
func (s *LineStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Save serializes every line and writes the blob back to storage.
func (s *LineStore) Save() error {
	s.mu.RLock()
	records := make(map[string]storedLine, len(s.lines))
	for key, line := range s.lines {
		records[key] = toStored(line)
	}
	s.mu.RUnlock()

	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cart blob: %w", err)
	}
	if err := s.storage.Write(blob); err != nil {
		return fmt.Errorf("write cart blob: %w", err)
	}
	return nil
}
