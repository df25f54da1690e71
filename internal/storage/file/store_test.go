package file

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadarrab/storefront/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := New(t.TempDir(), logger)
	require.NoError(t, err)
	return s
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := payload{Name: "cart", Count: 3}
	require.NoError(t, s.Save(ctx, storage.SlotCart, in))

	var out payload
	found, err := s.Load(ctx, storage.SlotCart, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	var out payload
	found, err := s.Load(context.Background(), "no-such-slot", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_LoadCorrupt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(s.dir, storage.SlotWishlist+".json"), []byte("{not json"), 0o600))

	var out payload
	found, err := s.Load(ctx, storage.SlotWishlist, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storage.SlotAuth, payload{Name: "first", Count: 1}))
	require.NoError(t, s.Save(ctx, storage.SlotAuth, payload{Name: "second", Count: 2}))

	var out payload
	found, err := s.Load(ctx, storage.SlotAuth, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", out.Name)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storage.SlotToken, payload{Name: "tok"}))
	require.NoError(t, s.Delete(ctx, storage.SlotToken))

	var out payload
	found, err := s.Load(ctx, storage.SlotToken, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// deleting an absent slot is a no-op
	require.NoError(t, s.Delete(ctx, storage.SlotToken))
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storage.SlotCart, payload{Name: "x"}))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
