package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/state"
)

// AuthService drives the login/registration flows against the marketplace
// backend and keeps the auth container in step. A successful login also
// folds the guest cart into the user's server cart.
type AuthService struct {
	backend *backend.Client
	auth    *state.AuthStore
	cart    *state.CartStore
	logger  *slog.Logger
}

func NewAuthService(bc *backend.Client, auth *state.AuthStore, cart *state.CartStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		backend: bc,
		auth:    auth,
		cart:    cart,
		logger:  logger,
	}
}

// Login authenticates against the backend, records the session, and merges
// any guest cart. Merge failures never fail the login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	sess, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.auth.Login(ctx, sess.Token, sess.User)
	s.mergeGuestCart(ctx)
	return &sess.User, nil
}

// Register creates an account pending email verification.
func (s *AuthService) Register(ctx context.Context, req backend.RegisterRequest) (string, error) {
	msg, err := s.backend.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return msg, nil
}

// VerifyEmail confirms the code and logs the new account in, including the
// guest-cart merge, mirroring the login path.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*domain.User, error) {
	sess, err := s.backend.VerifyEmail(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}

	s.auth.Login(ctx, sess.Token, sess.User)
	s.mergeGuestCart(ctx)
	return &sess.User, nil
}

// ResendVerification requests a fresh verification code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	msg, err := s.backend.ResendVerification(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}
	return msg, nil
}

// Logout clears the session. Always succeeds.
func (s *AuthService) Logout(ctx context.Context) {
	s.auth.Logout(ctx)
}

// UpdateProfile shallow-merges profile fields into the current user.
func (s *AuthService) UpdateProfile(ctx context.Context, patch domain.UserPatch) {
	s.auth.UpdateUser(ctx, patch)
}

// mergeGuestCart folds the guest cart into the user's server cart when a
// guest session exists. Best effort: a failed merge leaves the local cart
// untouched for a later retry.
func (s *AuthService) mergeGuestCart(ctx context.Context) {
	anonymousID := s.cart.Snapshot().AnonymousID
	if anonymousID == "" {
		return
	}

	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	merged, err := s.backend.MergeCart(ctx, anonymousID)
	if err != nil {
		s.logger.Warn("guest cart merge failed",
			slog.String("anonymous_id", anonymousID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.cart.SetCart(ctx, *merged)
	s.logger.Info("guest cart merged",
		slog.String("cart_id", merged.CartID),
		slog.Int("items", len(merged.Items)),
	)
}
