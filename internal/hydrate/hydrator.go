package hydrate

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tadarrab/storefront/internal/state"
)

// ErrNotReady is reported by the readiness check until hydration completes.
var ErrNotReady = errors.New("state not hydrated yet")

// Hydrator restores the three containers from persisted snapshots at
// startup and reconciles the persisted token with the backend before the
// service reports ready. Consumers must not trust container state before
// Ready reports true.
type Hydrator struct {
	auth     *state.AuthStore
	cart     *state.CartStore
	wishlist *state.WishlistStore

	graceDelay time.Duration
	logger     *slog.Logger
	ready      atomic.Bool
}

func New(auth *state.AuthStore, cart *state.CartStore, wishlist *state.WishlistStore, graceDelay time.Duration, logger *slog.Logger) *Hydrator {
	return &Hydrator{
		auth:       auth,
		cart:       cart,
		wishlist:   wishlist,
		graceDelay: graceDelay,
		logger:     logger,
	}
}

// Run performs the full hydration sequence: restore all containers, wait
// the grace delay for the restore to settle, then pick up and validate any
// persisted token. Restore failures degrade to empty defaults rather than
// aborting startup.
func (h *Hydrator) Run(ctx context.Context) error {
	start := time.Now()

	if err := h.auth.Restore(ctx); err != nil {
		h.logger.Warn("auth restore failed, using defaults", slog.String("error", err.Error()))
	}
	if err := h.cart.Restore(ctx); err != nil {
		h.logger.Warn("cart restore failed, using defaults", slog.String("error", err.Error()))
	}
	if err := h.wishlist.Restore(ctx); err != nil {
		h.logger.Warn("wishlist restore failed, using defaults", slog.String("error", err.Error()))
	}

	if h.graceDelay > 0 {
		select {
		case <-time.After(h.graceDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	h.auth.InitFromCookie(ctx)
	h.auth.ValidateToken(ctx)

	h.ready.Store(true)
	h.logger.Info("state hydrated",
		slog.String("auth_status", string(h.auth.Status())),
		slog.Int("cart_items", h.cart.ItemCount()),
		slog.Int("wishlist_items", h.wishlist.ItemCount()),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// Ready reports whether hydration has completed.
func (h *Hydrator) Ready() bool {
	return h.ready.Load()
}

// Check is a readiness checker gating traffic on hydration.
func (h *Hydrator) Check(ctx context.Context) error {
	if !h.ready.Load() {
		return ErrNotReady
	}
	return nil
}
