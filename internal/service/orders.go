package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/state"
	apperrors "github.com/tadarrab/storefront/pkg/errors"
)

// OrderService places orders from the current cart and reads order history.
type OrderService struct {
	backend *backend.Client
	cart    *state.CartStore
	logger  *slog.Logger
}

func NewOrderService(bc *backend.Client, cart *state.CartStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		backend: bc,
		cart:    cart,
		logger:  logger,
	}
}

// Checkout places an order for the current cart lines and clears the cart
// on success.
func (s *OrderService) Checkout(ctx context.Context) (*domain.Order, error) {
	snap := s.cart.Snapshot()
	if len(snap.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	lines := make([]backend.OrderLine, 0, len(snap.Items))
	for _, item := range snap.Items {
		lines = append(lines, backend.OrderLine{
			CourseID:  item.CourseID,
			SessionID: item.SessionID,
			Qty:       item.Qty,
		})
	}

	s.cart.SetLoading(true)
	defer s.cart.SetLoading(false)

	order, err := s.backend.CreateOrder(ctx, snap.CartID, lines)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.cart.ClearCart(ctx)
	s.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int64("amount", order.Amount),
	)
	return order, nil
}

// List fetches the authenticated user's order history.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
