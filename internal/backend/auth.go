package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tadarrab/storefront/internal/domain"
)

// Session is the token+user pair returned by the auth endpoints.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RegisterRequest mirrors POST /auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out Session
	if err := c.call(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &out, nil
}

// Register creates an account pending email verification.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var out messageResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return out.Message, nil
}

// VerifyEmail confirms the registration code and returns the first session.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) (*Session, error) {
	body := map[string]string{"email": email, "code": code}
	var out Session
	if err := c.call(ctx, http.MethodPost, "/auth/verify-email", body, &out); err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	return &out, nil
}

// ResendVerification requests a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var out messageResponse
	if err := c.call(ctx, http.MethodPost, "/auth/resend-verification", body, &out); err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}
	return out.Message, nil
}

// RefreshToken validates the given token against POST /auth/refresh-token
// and returns the refreshed session. The token is passed explicitly rather
// than read from the token source so the auth container can validate a
// candidate it has not committed to yet.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, *domain.User, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/auth/refresh-token", token, nil, &out); err != nil {
		return "", nil, fmt.Errorf("refresh token: %w", err)
	}
	return out.Token, &out.User, nil
}
