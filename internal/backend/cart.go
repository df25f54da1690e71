package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tadarrab/storefront/internal/domain"
)

// CartSession identifies a server-side cart.
type CartSession struct {
	CartID      string `json:"cartId"`
	AnonymousID string `json:"anonymousId,omitempty"`
}

// InitCart establishes a server-side cart session, reusing the guest
// anonymous ID when one exists.
func (c *Client) InitCart(ctx context.Context, anonymousID string) (*CartSession, error) {
	body := map[string]string{}
	if anonymousID != "" {
		body["anonymousId"] = anonymousID
	}
	var out CartSession
	if err := c.call(ctx, http.MethodPost, "/cart/init", body, &out); err != nil {
		return nil, fmt.Errorf("init cart: %w", err)
	}
	return &out, nil
}

// GetCart fetches the server cart.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var out domain.Cart
	path := "/cart?cartId=" + url.QueryEscape(cartID)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &out, nil
}

// AddCartItem adds a course (optionally a specific session of it) to the
// server cart and returns the updated cart.
func (c *Client) AddCartItem(ctx context.Context, cartID, courseID, sessionID string) (*domain.Cart, error) {
	body := map[string]string{"cartId": cartID, "courseId": courseID}
	if sessionID != "" {
		body["sessionId"] = sessionID
	}
	var out domain.Cart
	if err := c.call(ctx, http.MethodPost, "/cart/items", body, &out); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return &out, nil
}

// RemoveCartItem deletes a cart line and returns the updated cart.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID string) (*domain.Cart, error) {
	var out domain.Cart
	if err := c.call(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(cartItemID), nil, &out); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return &out, nil
}

// MergeCart folds the guest cart identified by anonymousID into the
// authenticated user's server cart. Called after login.
func (c *Client) MergeCart(ctx context.Context, anonymousID string) (*domain.Cart, error) {
	body := map[string]string{"anonymousId": anonymousID}
	var out domain.Cart
	if err := c.call(ctx, http.MethodPost, "/cart/merge", body, &out); err != nil {
		return nil, fmt.Errorf("merge cart: %w", err)
	}
	return &out, nil
}
