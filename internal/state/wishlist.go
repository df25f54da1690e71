package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/storage"
)

// WishlistStore mirrors CartStore with a simpler model: no quantities, no
// server identifiers, dedup by course ID alone.
type WishlistStore struct {
	mu       sync.Mutex
	wishlist domain.Wishlist
	loading  bool
	phase    Phase

	store  storage.Store
	logger *slog.Logger
}

func NewWishlistStore(store storage.Store, logger *slog.Logger) *WishlistStore {
	return &WishlistStore{
		phase:  PhaseUninitialized,
		store:  store,
		logger: logger,
	}
}

// Restore loads the persisted wishlist, falling back to empty.
func (s *WishlistStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseRestoring
	s.mu.Unlock()

	var snap domain.Wishlist
	found, err := s.store.Load(ctx, storage.SlotWishlist, &snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseReady
		return err
	}
	if found {
		s.wishlist = snap
	}
	s.phase = PhaseReady
	return nil
}

func (s *WishlistStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// AddItem inserts the item unless the course is already saved. Duplicates
// are a silent no-op, reported as false.
func (s *WishlistStore) AddItem(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	if s.wishlist.FindItemIndex(item.CourseID) >= 0 {
		s.mu.Unlock()
		return false
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.wishlist.Items = append(s.wishlist.Items, item)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	return true
}

// RemoveItem deletes the entry for the given course. Unknown courses are a
// silent no-op.
func (s *WishlistStore) RemoveItem(ctx context.Context, courseID string) {
	s.mu.Lock()
	idx := s.wishlist.FindItemIndex(courseID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.wishlist.Items = append(s.wishlist.Items[:idx], s.wishlist.Items[idx+1:]...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// ClearWishlist resets to the empty state.
func (s *WishlistStore) ClearWishlist(ctx context.Context) {
	s.mu.Lock()
	s.wishlist = domain.Wishlist{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

func (s *WishlistStore) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *WishlistStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ItemCount reports the number of saved courses. Wishlist entries carry no
// quantity, so this is a distinct count.
func (s *WishlistStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist.Items)
}

func (s *WishlistStore) HasItem(courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.FindItemIndex(courseID) >= 0
}

// Snapshot returns a copy of the current wishlist.
func (s *WishlistStore) Snapshot() domain.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *WishlistStore) snapshotLocked() domain.Wishlist {
	snap := domain.Wishlist{Items: make([]domain.WishlistItem, len(s.wishlist.Items))}
	copy(snap.Items, s.wishlist.Items)
	return snap
}

func (s *WishlistStore) persist(ctx context.Context, snap domain.Wishlist) {
	if err := s.store.Save(ctx, storage.SlotWishlist, snap); err != nil {
		s.logger.Warn("failed to persist wishlist snapshot", slog.String("error", err.Error()))
	}
}
