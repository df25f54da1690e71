package token

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tadarrab/storefront/internal/storage"
)

// DefaultTTL is the session token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Keeper mirrors the bearer token into its own durable slot, separate from
// the auth snapshot, so the transport layer can read it before full
// hydration. Tokens are opaque; when one happens to be a JWT with an exp
// claim earlier than the configured TTL, the shorter expiry wins.
type Keeper struct {
	store  storage.Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewKeeper(store storage.Store, ttl time.Duration, logger *slog.Logger) *Keeper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Keeper{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Save persists the token with its computed expiry.
func (k *Keeper) Save(ctx context.Context, tok string) error {
	expires := k.now().Add(k.ttl)
	if claimExp, ok := jwtExpiry(tok); ok && claimExp.Before(expires) {
		expires = claimExp
	}

	st := storedToken{Token: tok, ExpiresAt: expires}
	if err := k.store.Save(ctx, storage.SlotToken, st); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the persisted token if one exists and has not expired.
// An expired token is cleared as a side effect.
func (k *Keeper) Load(ctx context.Context) (string, bool, error) {
	var st storedToken
	found, err := k.store.Load(ctx, storage.SlotToken, &st)
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	if !found || st.Token == "" {
		return "", false, nil
	}

	if !st.ExpiresAt.IsZero() && k.now().After(st.ExpiresAt) {
		k.logger.Debug("persisted token expired, clearing slot")
		if err := k.store.Delete(ctx, storage.SlotToken); err != nil {
			k.logger.Warn("failed to clear expired token", slog.String("error", err.Error()))
		}
		return "", false, nil
	}

	return st.Token, true, nil
}

// Clear removes the persisted token. Safe to call when none exists.
func (k *Keeper) Clear(ctx context.Context) error {
	if err := k.store.Delete(ctx, storage.SlotToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// jwtExpiry extracts the exp claim without verifying the signature. The
// keeper never trusts the token; it only uses the claim to avoid keeping a
// credential around longer than the issuer intended.
func jwtExpiry(tok string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
