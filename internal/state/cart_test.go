package state

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/storage"
	"github.com/tadarrab/storefront/internal/storage/file"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestFileStore(t *testing.T) storage.Store {
	t.Helper()
	s, err := file.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	return s
}

func newTestCartStore(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(newTestFileStore(t), "SAR", testLogger())
}

func cartItem(id, courseID, sessionID string, price int64, qty int) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		CourseID:  courseID,
		SessionID: sessionID,
		Title:     domain.LocalizedText{AR: "دورة", EN: "Course"},
		Price:     price,
		Currency:  "SAR",
		Qty:       qty,
	}
}

func TestCartStore_AddThenRemove(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	added := s.AddItem(ctx, cartItem("a", "c1", "", 100, 1))
	assert.True(t, added)
	assert.Equal(t, int64(100), s.Snapshot().Total)
	assert.Equal(t, 1, s.ItemCount())

	s.RemoveItem(ctx, "a")
	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, int64(0), snap.Total)
}

func TestCartStore_DuplicateAddIsNoOp(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	assert.True(t, s.AddItem(ctx, cartItem("a", "c1", "", 100, 1)))
	assert.False(t, s.AddItem(ctx, cartItem("b", "c1", "", 100, 1)))

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, "a", snap.Items[0].ID)
	assert.Equal(t, int64(100), snap.Total)
}

func TestCartStore_SameCourseDifferentSession(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	assert.True(t, s.AddItem(ctx, cartItem("a", "c1", "s1", 100, 1)))
	assert.True(t, s.AddItem(ctx, cartItem("b", "c1", "s2", 100, 1)))

	assert.Len(t, s.Snapshot().Items, 2)
	assert.True(t, s.HasItem("c1", "s1"))
	assert.True(t, s.HasItem("c1", "s2"))
	assert.False(t, s.HasItem("c1", "s3"))
}

func TestCartStore_TotalAlwaysMatchesItems(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	verify := func() {
		snap := s.Snapshot()
		var want int64
		for _, it := range snap.Items {
			want += it.Price * int64(it.Qty)
		}
		assert.Equal(t, want, snap.Total)
	}

	s.AddItem(ctx, cartItem("a", "c1", "", 19900, 1))
	verify()
	s.AddItem(ctx, cartItem("b", "c2", "s1", 45000, 2))
	verify()
	s.UpdateItemQuantity(ctx, "a", 3)
	verify()
	s.RemoveItem(ctx, "b")
	verify()
}

func TestCartStore_UpdateItemQuantity(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.AddItem(ctx, cartItem("a", "c1", "", 50, 1))
	s.UpdateItemQuantity(ctx, "a", 3)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Items[0].Qty)
	assert.Equal(t, int64(150), snap.Total)
	assert.Equal(t, 3, s.ItemCount())
}

func TestCartStore_UpdateUnknownItemIsNoOp(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.AddItem(ctx, cartItem("a", "c1", "", 50, 1))
	s.UpdateItemQuantity(ctx, "missing", 5)

	assert.Equal(t, int64(50), s.Snapshot().Total)
}

func TestCartStore_ClearIsIdempotent(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.SetCartID(ctx, "cart-1", "anon-1")
	s.AddItem(ctx, cartItem("a", "c1", "", 100, 2))

	s.ClearCart(ctx)
	first := s.Snapshot()
	s.ClearCart(ctx)
	second := s.Snapshot()

	assert.Equal(t, first, second)
	assert.Empty(t, second.Items)
	assert.Equal(t, int64(0), second.Total)
	assert.Empty(t, second.CartID)
	assert.Empty(t, second.AnonymousID)
	assert.Equal(t, "SAR", second.Currency)
}

func TestCartStore_SetCartID(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.SetCartID(ctx, "cart-1", "anon-1")
	snap := s.Snapshot()
	assert.Equal(t, "cart-1", snap.CartID)
	assert.Equal(t, "anon-1", snap.AnonymousID)

	// an init answer without an anonymous id clears the stale one
	s.SetCartID(ctx, "cart-2", "")
	snap = s.Snapshot()
	assert.Equal(t, "cart-2", snap.CartID)
	assert.Empty(t, snap.AnonymousID)
}

func TestCartStore_SetCartKeepsAnonymousID(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.SetCartID(ctx, "cart-1", "anon-1")

	// server carts carry no anonymous id; adopting one must not drop ours
	s.SetCart(ctx, domain.Cart{
		CartID: "cart-1",
		Items: []domain.CartItem{
			cartItem("a", "c1", "", 100, 1),
		},
		Currency: "SAR",
	})

	snap := s.Snapshot()
	assert.Equal(t, "anon-1", snap.AnonymousID)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, int64(100), snap.Total)
}

func TestCartStore_SetCartRecomputesTotal(t *testing.T) {
	s := newTestCartStore(t)
	ctx := context.Background()

	s.SetCart(ctx, domain.Cart{
		CartID: "cart-9",
		Items: []domain.CartItem{
			cartItem("a", "c1", "", 100, 2),
		},
		Total: 999999, // server value is ignored
	})

	snap := s.Snapshot()
	assert.Equal(t, int64(200), snap.Total)
	assert.Equal(t, "SAR", snap.Currency)
}

func TestCartStore_PersistsAcrossRestore(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	s := NewCartStore(store, "SAR", testLogger())
	s.SetCartID(ctx, "cart-1", "anon-1")
	s.AddItem(ctx, cartItem("a", "c1", "s1", 19900, 2))
	before := s.Snapshot()

	restored := NewCartStore(store, "SAR", testLogger())
	assert.Equal(t, PhaseUninitialized, restored.Phase())
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, PhaseReady, restored.Phase())
	assert.Equal(t, before, restored.Snapshot())
}

func TestCartStore_RestoreWithoutSnapshot(t *testing.T) {
	s := newTestCartStore(t)
	require.NoError(t, s.Restore(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, "SAR", snap.Currency)
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestCartStore_Loading(t *testing.T) {
	s := newTestCartStore(t)

	assert.False(t, s.Loading())
	s.SetLoading(true)
	assert.True(t, s.Loading())
	s.SetLoading(false)
	assert.False(t, s.Loading())
}

func TestCartStore_AddItemGeneratesID(t *testing.T) {
	s := newTestCartStore(t)

	item := cartItem("", "c1", "", 100, 1)
	require.True(t, s.AddItem(context.Background(), item))
	assert.NotEmpty(t, s.Snapshot().Items[0].ID)
}
