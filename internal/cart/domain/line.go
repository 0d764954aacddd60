package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID    = errors.New("line id is required")
	ErrMissingColor = errors.New("line color is required")
)

// Line is one cart entry. Its identity is the (ID, Color) pair, not ID
// alone: the same product in two colors is two distinct lines.
type Line struct {
	ID       string
	Color    string
	Quantity int64
	Product  *Product
}

// Key builds the composite identity "<id>__<color>".
func (l Line) Key() (string, error) {
	return LineKey(l.ID, l.Color)
}

// LineKey builds the composite line identity. A missing id or color never
// silently produces a malformed key.
func LineKey(id, color string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	if color == "" {
		return "", ErrMissingColor
	}
	return fmt.Sprintf("%s__%s", id, color), nil
}

// HasProduct reports whether the line carries a resolved snapshot.
func (l Line) HasProduct() bool {
	return l.Product != nil && l.Product.ID != ""
}
