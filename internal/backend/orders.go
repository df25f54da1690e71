package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tadarrab/storefront/internal/domain"
)

// OrderLine identifies one purchasable within an order request.
type OrderLine struct {
	CourseID  string `json:"courseId"`
	SessionID string `json:"sessionId,omitempty"`
	Qty       int    `json:"qty"`
}

// CreateOrder places an order for the given lines and returns it.
func (c *Client) CreateOrder(ctx context.Context, cartID string, lines []OrderLine) (*domain.Order, error) {
	body := map[string]any{"cartId": cartID, "items": lines}
	var out domain.Order
	if err := c.call(ctx, http.MethodPost, "/orders", body, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

// ListOrders fetches the authenticated user's order history.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.call(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
