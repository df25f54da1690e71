package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/internal/storage/file"
	"github.com/tadarrab/storefront/internal/token"
	"github.com/tadarrab/storefront/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testEnv struct {
	auth    *state.AuthStore
	cart    *state.CartStore
	backend *backend.Client
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := testLogger()
	store, err := file.New(t.TempDir(), logger)
	require.NoError(t, err)

	keeper := token.NewKeeper(store, time.Hour, logger)
	auth := state.NewAuthStore(store, keeper, logger)
	cart := state.NewCartStore(store, "SAR", logger)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	bc := backend.New(srv.URL, cfg, httpclient.DefaultCircuitBreakerConfig("test"), logger)
	bc.SetTokenSource(auth.Token)
	auth.SetValidator(bc)

	return &testEnv{auth: auth, cart: cart, backend: bc}
}

func loginHandler(t *testing.T, mergeCalls *int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.Session{
			Token: "tok-1",
			User:  domain.User{ID: "user-1", Email: "sara@example.com"},
		})
	})
	mux.HandleFunc("POST /cart/merge", func(w http.ResponseWriter, r *http.Request) {
		*mergeCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "anon-1", body["anonymousId"])
		json.NewEncoder(w).Encode(domain.Cart{
			CartID:   "cart-merged",
			Items:    []domain.CartItem{{ID: "a", CourseID: "c1", Price: 100, Qty: 1, Currency: "SAR"}},
			Currency: "SAR",
		})
	})
	return mux
}

func TestAuthService_LoginMergesGuestCart(t *testing.T) {
	mergeCalls := 0
	env := newTestEnv(t, loginHandler(t, &mergeCalls))
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())
	ctx := context.Background()

	env.cart.SetCartID(ctx, "", "anon-1")

	user, err := svc.Login(ctx, "sara@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, env.auth.IsAuthenticated())

	assert.Equal(t, 1, mergeCalls)
	snap := env.cart.Snapshot()
	assert.Equal(t, "cart-merged", snap.CartID)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, int64(100), snap.Total)
}

func TestAuthService_LoginWithoutGuestCartSkipsMerge(t *testing.T) {
	mergeCalls := 0
	env := newTestEnv(t, loginHandler(t, &mergeCalls))
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())

	_, err := svc.Login(context.Background(), "sara@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 0, mergeCalls)
}

func TestAuthService_MergeFailureDoesNotFailLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.Session{Token: "tok-1", User: domain.User{ID: "user-1"}})
	})
	mux.HandleFunc("POST /cart/merge", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown anonymous id"})
	})

	env := newTestEnv(t, mux)
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())
	ctx := context.Background()

	env.cart.SetCartID(ctx, "", "anon-1")
	env.cart.AddItem(ctx, domain.CartItem{ID: "a", CourseID: "c1", Price: 100, Qty: 1, Currency: "SAR"})

	user, err := svc.Login(ctx, "sara@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, env.auth.IsAuthenticated())

	// local cart kept for a later retry
	snap := env.cart.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, "anon-1", snap.AnonymousID)
}

func TestAuthService_LoginFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	env := newTestEnv(t, mux)
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())

	_, err := svc.Login(context.Background(), "sara@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, env.auth.Status() == state.StatusAuthenticated)
}

func TestAuthService_VerifyEmailLogsInAndMerges(t *testing.T) {
	mergeCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/verify-email", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.Session{Token: "tok-2", User: domain.User{ID: "user-2"}})
	})
	mux.HandleFunc("POST /cart/merge", func(w http.ResponseWriter, r *http.Request) {
		mergeCalls++
		json.NewEncoder(w).Encode(domain.Cart{CartID: "cart-m", Currency: "SAR"})
	})

	env := newTestEnv(t, mux)
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())
	ctx := context.Background()

	env.cart.SetCartID(ctx, "", "anon-2")

	user, err := svc.VerifyEmail(ctx, "new@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)
	assert.Equal(t, state.StatusAuthenticated, env.auth.Status())
	assert.Equal(t, 1, mergeCalls)
}

func TestAuthService_Logout(t *testing.T) {
	mergeCalls := 0
	env := newTestEnv(t, loginHandler(t, &mergeCalls))
	svc := NewAuthService(env.backend, env.auth, env.cart, testLogger())
	ctx := context.Background()

	_, err := svc.Login(ctx, "sara@example.com", "secret")
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.False(t, env.auth.IsAuthenticated())
	assert.Empty(t, env.auth.Token())
}
