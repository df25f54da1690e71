package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/storage"
	"github.com/tadarrab/storefront/internal/token"
)

type stubValidator struct {
	token string
	user  *domain.User
	err   error
	calls int
}

func (v *stubValidator) RefreshToken(ctx context.Context, tok string) (string, *domain.User, error) {
	v.calls++
	if v.err != nil {
		return "", nil, v.err
	}
	return v.token, v.user, nil
}

func newTestAuthStore(t *testing.T) (*AuthStore, storage.Store, *token.Keeper) {
	t.Helper()
	store := newTestFileStore(t)
	keeper := token.NewKeeper(store, time.Hour, testLogger())
	return NewAuthStore(store, keeper, testLogger()), store, keeper
}

func testUser() domain.User {
	return domain.User{
		ID:       "user-1",
		FullName: "Sara Ahmed",
		Email:    "sara@example.com",
		Locale:   "ar",
	}
}

func TestAuthStore_Login(t *testing.T) {
	s, _, keeper := newTestAuthStore(t)
	ctx := context.Background()

	s.Login(ctx, "tok-1", testUser())

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Equal(t, "tok-1", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "user-1", s.User().ID)

	persisted, found, err := keeper.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok-1", persisted)
}

func TestAuthStore_LogoutIsIdempotent(t *testing.T) {
	s, _, keeper := newTestAuthStore(t)
	ctx := context.Background()

	s.Login(ctx, "tok-1", testUser())
	s.Logout(ctx)
	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, StatusUnauthenticated, s.Status())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	_, found, err := keeper.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuthStore_UpdateUser(t *testing.T) {
	s, _, _ := newTestAuthStore(t)
	ctx := context.Background()

	name := "Sara A."
	s.UpdateUser(ctx, domain.UserPatch{FullName: &name})
	assert.Nil(t, s.User())

	s.Login(ctx, "tok-1", testUser())
	s.UpdateUser(ctx, domain.UserPatch{FullName: &name})

	require.NotNil(t, s.User())
	assert.Equal(t, "Sara A.", s.User().FullName)
	assert.Equal(t, "sara@example.com", s.User().Email)
}

func TestAuthStore_InitFromCookie(t *testing.T) {
	s, _, keeper := newTestAuthStore(t)
	ctx := context.Background()

	require.NoError(t, keeper.Save(ctx, "persisted-tok"))

	s.InitFromCookie(ctx)

	assert.Equal(t, StatusUnknown, s.Status())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "persisted-tok", s.Token())
	assert.Nil(t, s.User())
}

func TestAuthStore_InitFromCookieWithoutToken(t *testing.T) {
	s, _, _ := newTestAuthStore(t)

	s.InitFromCookie(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestAuthStore_InitFromCookieKeepsConfirmedSession(t *testing.T) {
	s, _, _ := newTestAuthStore(t)
	ctx := context.Background()

	s.Login(ctx, "tok-1", testUser())
	s.InitFromCookie(ctx)

	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Equal(t, "tok-1", s.Token())
}

func TestAuthStore_ValidateTokenSuccess(t *testing.T) {
	s, _, keeper := newTestAuthStore(t)
	ctx := context.Background()

	u := testUser()
	v := &stubValidator{token: "fresh-tok", user: &u}
	s.SetValidator(v)

	require.NoError(t, keeper.Save(ctx, "stale-tok"))
	s.InitFromCookie(ctx)
	s.ValidateToken(ctx)

	assert.Equal(t, 1, v.calls)
	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "fresh-tok", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "user-1", s.User().ID)

	persisted, found, err := keeper.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fresh-tok", persisted)
}

func TestAuthStore_ValidateTokenFailureLogsOut(t *testing.T) {
	s, _, keeper := newTestAuthStore(t)
	ctx := context.Background()

	s.SetValidator(&stubValidator{err: errors.New("credential rejected")})

	require.NoError(t, keeper.Save(ctx, "stale-tok"))
	s.InitFromCookie(ctx)
	s.ValidateToken(ctx)

	assert.Equal(t, StatusUnauthenticated, s.Status())
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	_, found, err := keeper.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuthStore_ValidateTokenSkipsConfirmedSession(t *testing.T) {
	s, _, _ := newTestAuthStore(t)
	ctx := context.Background()

	v := &stubValidator{err: errors.New("should not be called")}
	s.SetValidator(v)

	s.Login(ctx, "tok-1", testUser())
	s.ValidateToken(ctx)

	assert.Equal(t, 0, v.calls)
	assert.Equal(t, StatusAuthenticated, s.Status())
}

func TestAuthStore_ValidateTokenWithoutTokenSettlesUnknown(t *testing.T) {
	s, _, _ := newTestAuthStore(t)
	ctx := context.Background()

	assert.Equal(t, StatusUnknown, s.Status())
	s.ValidateToken(ctx)
	assert.Equal(t, StatusUnauthenticated, s.Status())
}

func TestAuthStore_PersistsAcrossRestore(t *testing.T) {
	store := newTestFileStore(t)
	keeper := token.NewKeeper(store, time.Hour, testLogger())
	ctx := context.Background()

	s := NewAuthStore(store, keeper, testLogger())
	s.Login(ctx, "tok-1", testUser())

	restored := NewAuthStore(store, keeper, testLogger())
	require.NoError(t, restored.Restore(ctx))

	assert.Equal(t, PhaseReady, restored.Phase())
	assert.Equal(t, StatusAuthenticated, restored.Status())
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "tok-1", restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, "user-1", restored.User().ID)
}

func TestAuthStore_RestoreWithoutSnapshot(t *testing.T) {
	s, _, _ := newTestAuthStore(t)

	require.NoError(t, s.Restore(context.Background()))
	assert.Equal(t, StatusUnauthenticated, s.Status())
	assert.False(t, s.IsAuthenticated())
}

func TestAuthStore_RestoreTokenWithoutUser(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storage.SlotAuth, authSnapshot{Token: "tok-only", IsAuthenticated: true}))

	keeper := token.NewKeeper(store, time.Hour, testLogger())
	s := NewAuthStore(store, keeper, testLogger())
	require.NoError(t, s.Restore(ctx))

	assert.Equal(t, StatusUnknown, s.Status())
	assert.Equal(t, "tok-only", s.Token())
	assert.Nil(t, s.User())
}
