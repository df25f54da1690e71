package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/state"
)

// CartService layers server synchronization over the local cart container.
// The container is always mutated first; the server push is best effort and
// its failure never rolls back the local state.
type CartService struct {
	backend *backend.Client
	cart    *state.CartStore
	logger  *slog.Logger
}

func NewCartService(bc *backend.Client, cart *state.CartStore, logger *slog.Logger) *CartService {
	return &CartService{
		backend: bc,
		cart:    cart,
		logger:  logger,
	}
}

// Init establishes a server-side cart session, reusing the current guest
// anonymous ID when one exists.
func (s *CartService) Init(ctx context.Context) error {
	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	sess, err := s.backend.InitCart(ctx, s.cart.Snapshot().AnonymousID)
	if err != nil {
		return fmt.Errorf("init cart session: %w", err)
	}

	s.cart.SetCartID(ctx, sess.CartID, sess.AnonymousID)
	return nil
}

// Refresh replaces the local cart with the server cart. A no-op when no
// server session exists yet.
func (s *CartService) Refresh(ctx context.Context) error {
	cartID := s.cart.Snapshot().CartID
	if cartID == "" {
		return nil
	}

	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	serverCart, err := s.backend.GetCart(ctx, cartID)
	if err != nil {
		return fmt.Errorf("refresh cart: %w", err)
	}

	s.cart.SetCart(ctx, *serverCart)
	return nil
}

// AddItem adds the item locally, then pushes to the server cart when one
// exists. Reports false for the duplicate no-op case.
func (s *CartService) AddItem(ctx context.Context, item domain.CartItem) bool {
	added := s.cart.AddItem(ctx, item)
	if !added {
		return false
	}
	s.pushAdd(ctx, item)
	return true
}

// RemoveItem removes the line locally, then from the server cart.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) {
	s.cart.RemoveItem(ctx, itemID)

	if s.cart.Snapshot().CartID == "" {
		return
	}

	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	serverCart, err := s.backend.RemoveCartItem(ctx, itemID)
	if err != nil {
		s.logger.Warn("server cart remove failed",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.cart.SetCart(ctx, *serverCart)
}

// UpdateQuantity sets the line quantity locally. Quantity is a local-only
// concern; the server recomputes from lines at checkout.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, qty int) {
	s.cart.UpdateItemQuantity(ctx, itemID, qty)
}

// Clear resets the local cart. The server cart, if any, is abandoned with
// its session.
func (s *CartService) Clear(ctx context.Context) {
	s.cart.ClearCart(ctx)
}

func (s *CartService) pushAdd(ctx context.Context, item domain.CartItem) {
	cartID := s.cart.Snapshot().CartID
	if cartID == "" {
		return
	}

	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	serverCart, err := s.backend.AddCartItem(ctx, cartID, item.CourseID, item.SessionID)
	if err != nil {
		s.logger.Warn("server cart add failed",
			slog.String("course_id", item.CourseID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.cart.SetCart(ctx, *serverCart)
}
