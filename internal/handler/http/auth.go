package http

import (
	"log/slog"
	"net/http"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/hydrate"
	"github.com/tadarrab/storefront/internal/service"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/pkg/httputil"
	"github.com/tadarrab/storefront/pkg/validator"
)

// AuthHandler exposes the auth flows and the session view to the UI shell.
type AuthHandler struct {
	service  *service.AuthService
	auth     *state.AuthStore
	hydrator *hydrate.Hydrator
	logger   *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, auth *state.AuthStore, hydrator *hydrate.Hydrator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  svc,
		auth:     auth,
		hydrator: hydrator,
		logger:   logger,
	}
}

// --- Request DTOs ---

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
	Locale   string `json:"locale" validate:"required,oneof=ar en"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=4,max=10"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Locale   *string `json:"locale" validate:"omitempty,oneof=ar en"`
}

// sessionView reports the tri-state auth status alongside the boolean the
// persisted snapshot carries, plus whether hydration has settled.
type sessionView struct {
	Status          state.Status `json:"status"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *domain.User `json:"user"`
	Hydrated        bool         `json:"hydrated"`
}

func (h *AuthHandler) session() sessionView {
	return sessionView{
		Status:          h.auth.Status(),
		IsAuthenticated: h.auth.IsAuthenticated(),
		User:            h.auth.User(),
		Hydrated:        h.hydrator.Ready(),
	}
}

// --- Handlers ---

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.session()})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.service.Login(r.Context(), req.Email, req.Password); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.session()})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.session()})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.Register(r.Context(), backend.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Locale:   req.Locale,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"message": msg}})
}

// VerifyEmail handles POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.service.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.session()})
}

// ResendVerification handles POST /api/v1/auth/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req ResendVerificationRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.ResendVerification(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"message": msg}})
}

// UpdateProfile handles PATCH /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.service.UpdateProfile(r.Context(), domain.UserPatch{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Locale:   req.Locale,
	})
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.session()})
}
