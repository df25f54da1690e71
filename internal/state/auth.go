package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/storage"
)

// Status is the tri-state authentication signal. StatusUnknown covers the
// optimistic window between finding a persisted token and validating it, so
// consumers can distinguish "assumed" from "confirmed".
type Status string

const (
	StatusUnknown         Status = "unknown"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// TokenKeeper is the durable token slot, kept separate from the auth
// snapshot so the transport layer can read it before full hydration.
type TokenKeeper interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// TokenValidator exchanges a bearer token for a fresh token and user record.
// Implemented by the backend client; injected after construction to break
// the cycle between the auth container and the client's 401 hook.
type TokenValidator interface {
	RefreshToken(ctx context.Context, token string) (string, *domain.User, error)
}

type authSnapshot struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// AuthStore holds the current user and session token. User and token always
// transition together: any failure path resolves to a full logout, never a
// half-authenticated state.
type AuthStore struct {
	mu            sync.Mutex
	user          *domain.User
	token         string
	authenticated bool
	status        Status
	phase         Phase

	store     storage.Store
	keeper    TokenKeeper
	validator TokenValidator
	logger    *slog.Logger
}

func NewAuthStore(store storage.Store, keeper TokenKeeper, logger *slog.Logger) *AuthStore {
	return &AuthStore{
		status: StatusUnknown,
		phase:  PhaseUninitialized,
		store:  store,
		keeper: keeper,
		logger: logger,
	}
}

// SetValidator wires the refresh-token collaborator. Must be called before
// ValidateToken; kept out of the constructor because the backend client in
// turn needs this container as its token source.
func (s *AuthStore) SetValidator(v TokenValidator) {
	s.mu.Lock()
	s.validator = v
	s.mu.Unlock()
}

// Restore loads the persisted auth snapshot. A snapshot with both user and
// token restores as authenticated; a token without a user restores as
// unknown pending validation.
func (s *AuthStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseRestoring
	s.mu.Unlock()

	var snap authSnapshot
	found, err := s.store.Load(ctx, storage.SlotAuth, &snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseReady
		return err
	}
	if !found {
		s.status = StatusUnauthenticated
		s.phase = PhaseReady
		return nil
	}

	s.user = snap.User
	s.token = snap.Token
	switch {
	case snap.User != nil && snap.Token != "" && snap.IsAuthenticated:
		s.authenticated = true
		s.status = StatusAuthenticated
	case snap.Token != "":
		s.authenticated = snap.IsAuthenticated
		s.status = StatusUnknown
	default:
		s.user = nil
		s.authenticated = false
		s.status = StatusUnauthenticated
	}
	s.phase = PhaseReady
	return nil
}

func (s *AuthStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Login records a confirmed session and mirrors the token into the durable
// token slot.
func (s *AuthStore) Login(ctx context.Context, token string, user domain.User) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.authenticated = true
	s.status = StatusAuthenticated
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.keeper.Save(ctx, token); err != nil {
		s.logger.Warn("failed to persist session token", slog.String("error", err.Error()))
	}
	s.persist(ctx, snap)
}

// Logout clears the session and the persisted token. Idempotent.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.status = StatusUnauthenticated
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.keeper.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session token", slog.String("error", err.Error()))
	}
	s.persist(ctx, snap)
}

// UpdateUser shallow-merges the patch into the current user. A no-op when
// logged out.
func (s *AuthStore) UpdateUser(ctx context.Context, patch domain.UserPatch) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	updated := patch.Apply(*s.user)
	s.user = &updated
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// InitFromCookie picks up a persisted token when the container does not
// already hold a confirmed session. The session is assumed valid
// (authenticated=true, status unknown) until ValidateToken settles it; this
// avoids a flash of logged-out state on startup.
func (s *AuthStore) InitFromCookie(ctx context.Context) {
	s.mu.Lock()
	if s.status == StatusAuthenticated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	tok, found, err := s.keeper.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to read persisted token", slog.String("error", err.Error()))
		return
	}
	if !found {
		return
	}

	s.mu.Lock()
	if s.status == StatusAuthenticated {
		s.mu.Unlock()
		return
	}
	s.token = tok
	s.authenticated = true
	s.status = StatusUnknown
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// ValidateToken refreshes the session when a token is held without a
// confirmed user. Any failure, transport or credential, resolves to a full
// logout with the token slot cleared. Not retried internally.
func (s *AuthStore) ValidateToken(ctx context.Context) {
	s.mu.Lock()
	tok := s.token
	hasUser := s.user != nil
	validator := s.validator
	if hasUser && tok != "" {
		s.authenticated = true
		s.status = StatusAuthenticated
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if tok == "" {
		s.mu.Lock()
		settle := s.status == StatusUnknown
		s.mu.Unlock()
		if settle {
			s.Logout(ctx)
		}
		return
	}
	if validator == nil {
		s.logger.Error("token validator not configured")
		return
	}

	newTok, user, err := validator.RefreshToken(ctx, tok)
	if err != nil {
		s.logger.Info("token validation failed, logging out", slog.String("error", err.Error()))
		s.Logout(ctx)
		return
	}

	s.Login(ctx, newTok, *user)
}

func (s *AuthStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsAuthenticated reports the boolean view of the session, kept for
// snapshot compatibility. True during the optimistic window as well as for
// confirmed sessions.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Token returns the current bearer token, empty when logged out. Used by
// the backend client to attach credentials.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current user, or nil when none is loaded.
func (s *AuthStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) snapshotLocked() authSnapshot {
	snap := authSnapshot{Token: s.token, IsAuthenticated: s.authenticated}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *AuthStore) persist(ctx context.Context, snap authSnapshot) {
	if err := s.store.Save(ctx, storage.SlotAuth, snap); err != nil {
		s.logger.Warn("failed to persist auth snapshot", slog.String("error", err.Error()))
	}
}
