// Package httpapi submits orders to the shop API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dwikikusuma/cart-sync/internal/checkout/domain"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

type OrderClient struct {
	baseURL string
	http    *http.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OrderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type contactDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Email     string `json:"email"`
}

type orderRequest struct {
	Contact  contactDTO `json:"contact"`
	Products []string   `json:"products"`
}

type orderResponse struct {
	OrderID string `json:"orderId"`
}

// Send posts the order and returns it with the API-assigned order id.
func (c *OrderClient) Send(ctx context.Context, order domain.Order) (domain.Order, error) {
	payload, err := json.Marshal(orderRequest{
		Contact: contactDTO{
			FirstName: order.Contact.FirstName,
			LastName:  order.Contact.LastName,
			Address:   order.Contact.Address,
			City:      order.Contact.City,
			Email:     order.Contact.Email,
		},
		Products: order.ProductIDs,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order: %w", err)
	}

	endpoint := c.baseURL + "/api/products/order"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Order{}, err
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Order{}, fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Order{}, fmt.Errorf("post order: unexpected status %d", resp.StatusCode)
	}

	var placed orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&placed); err != nil {
		return domain.Order{}, fmt.Errorf("decode order response: %w", err)
	}

	order.OrderID = placed.OrderID
	return order, nil
}
