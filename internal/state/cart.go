package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/storage"
)

// CartStore is the authoritative in-memory cart for the current session.
// Mutations update state under the lock, then persist the snapshot
// best-effort after releasing it; the slot store is never called while the
// lock is held.
type CartStore struct {
	mu      sync.Mutex
	cart    domain.Cart
	loading bool
	phase   Phase

	store           storage.Store
	defaultCurrency string
	logger          *slog.Logger
}

func NewCartStore(store storage.Store, defaultCurrency string, logger *slog.Logger) *CartStore {
	return &CartStore{
		cart:            domain.Cart{Currency: defaultCurrency},
		phase:           PhaseUninitialized,
		store:           store,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Restore loads the persisted cart snapshot, falling back to the empty
// default when none exists. Totals are recomputed rather than trusted.
func (s *CartStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseRestoring
	s.mu.Unlock()

	var snap domain.Cart
	found, err := s.store.Load(ctx, storage.SlotCart, &snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseReady
		return err
	}
	if found {
		if snap.Currency == "" {
			snap.Currency = s.defaultCurrency
		}
		snap.ComputeTotal()
		s.cart = snap
	}
	s.phase = PhaseReady
	return nil
}

func (s *CartStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetCart replaces the server-owned fields (id, items, total, currency),
// used when the server is the source of truth (after a fetch or a
// guest-cart merge). The anonymous guest id is kept; server carts never
// carry one and losing it would break the post-login merge.
func (s *CartStore) SetCart(ctx context.Context, cart domain.Cart) {
	s.mu.Lock()
	s.cart.CartID = cart.CartID
	s.cart.Items = cart.Items
	s.cart.Currency = cart.Currency
	if s.cart.Currency == "" {
		s.cart.Currency = s.defaultCurrency
	}
	s.cart.ComputeTotal()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// SetCartID records server-assigned identifiers without touching items.
// Both ids are taken as given; an init response without an anonymousID
// clears any stale guest id.
func (s *CartStore) SetCartID(ctx context.Context, cartID, anonymousID string) {
	s.mu.Lock()
	s.cart.CartID = cartID
	s.cart.AnonymousID = anonymousID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// AddItem inserts the item unless one with the same (courseID, sessionID)
// pair already exists. The duplicate case is a silent no-op and reports
// false so callers can surface an "already in cart" notice.
func (s *CartStore) AddItem(ctx context.Context, item domain.CartItem) bool {
	s.mu.Lock()
	if s.cart.FindItemIndex(item.CourseID, item.SessionID) >= 0 {
		s.mu.Unlock()
		return false
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Currency != "" {
		s.cart.Currency = item.Currency
	}
	s.cart.Items = append(s.cart.Items, item)
	s.cart.ComputeTotal()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	return true
}

// RemoveItem deletes the line with the matching id. Unknown ids are a
// silent no-op.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) {
	s.mu.Lock()
	idx := s.cart.FindItemByID(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	s.cart.ComputeTotal()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// UpdateItemQuantity sets the quantity of the matching line. The container
// does not clamp; callers validate qty >= 1.
func (s *CartStore) UpdateItemQuantity(ctx context.Context, itemID string, qty int) {
	s.mu.Lock()
	idx := s.cart.FindItemByID(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.cart.Items[idx].Qty = qty
	s.cart.ComputeTotal()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// ClearCart resets to the empty state, dropping server identifiers and
// reverting to the default currency.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = domain.Cart{Currency: s.defaultCurrency}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// SetLoading marks an in-flight network operation. It gates nothing; it
// exists for consumers to show progress.
func (s *CartStore) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *CartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ItemCount reports the quantity-weighted count, not the number of lines.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *CartStore) HasItem(courseID, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.FindItemIndex(courseID, sessionID) >= 0
}

// Snapshot returns a copy of the current cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartStore) snapshotLocked() domain.Cart {
	snap := s.cart
	snap.Items = make([]domain.CartItem, len(s.cart.Items))
	copy(snap.Items, s.cart.Items)
	return snap
}

func (s *CartStore) persist(ctx context.Context, snap domain.Cart) {
	if err := s.store.Save(ctx, storage.SlotCart, snap); err != nil {
		s.logger.Warn("failed to persist cart snapshot", slog.String("error", err.Error()))
	}
}
