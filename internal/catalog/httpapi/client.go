// Package httpapi is the catalog client the cart resolves products through.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dwikikusuma/cart-sync/internal/cart/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type productDTO struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Colors      []string        `json:"colors"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	AltText     string          `json:"altTxt"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Colors:      d.Colors,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		AltText:     d.AltText,
	}
}

// FetchProductByID gets one product snapshot from the catalog API.
func (c *Client) FetchProductByID(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrMissingProductID
	}

	var dto productDTO
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(id))
	if err := c.getJSON(ctx, endpoint, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// ListProducts gets the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, c.baseURL+"/api/products/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toDomain())
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
