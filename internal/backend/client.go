package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/tadarrab/storefront/pkg/httpclient"
)

// Client talks to the remote marketplace API. It attaches the current bearer
// token to every request and funnels all 401 responses through a single
// OnUnauthorized hook so an expired session is always resolved by a forced
// logout, never handled ad hoc per call site.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger

	mu             sync.RWMutex
	tokenSource    func() string
	onUnauthorized func(context.Context)
}

// New creates a marketplace API client. The token source and unauthorized
// hook are wired afterwards via the setters; the auth container that
// provides them needs this client first.
func New(baseURL string, cfg httpclient.Config, cbCfg httpclient.CircuitBreakerConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.NewCircuitBreakerClient(httpclient.New(cfg), cbCfg, logger),
		logger:  logger,
	}
}

// SetTokenSource registers the provider of the current bearer token. An
// empty return means no credential is attached.
func (c *Client) SetTokenSource(fn func() string) {
	c.mu.Lock()
	c.tokenSource = fn
	c.mu.Unlock()
}

// SetOnUnauthorized registers the hook invoked on any 401 response.
func (c *Client) SetOnUnauthorized(fn func(context.Context)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// call issues a JSON request using the registered token source.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	c.mu.RLock()
	source := c.tokenSource
	c.mu.RUnlock()

	token := ""
	if source != nil {
		token = source()
	}
	return c.do(ctx, method, path, token, body, out)
}

// do issues a JSON request with an explicit bearer token. Non-2xx responses
// are translated into the error taxonomy; 401 additionally fires the
// unauthorized hook.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx)
		}
		return httpclient.ParseResponseError(resp, "marketplace")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "marketplace")
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
