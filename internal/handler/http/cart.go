package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/service"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/pkg/httputil"
	"github.com/tadarrab/storefront/pkg/validator"
)

// CartHandler exposes the cart container to the UI shell.
type CartHandler struct {
	service *service.CartService
	cart    *state.CartStore
	logger  *slog.Logger
}

func NewCartHandler(svc *service.CartService, cart *state.CartStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		cart:    cart,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a cart line. Display
// fields come from the catalog; the container stores them as given.
type AddItemRequest struct {
	CourseID     string `json:"courseId" validate:"required"`
	SessionID    string `json:"sessionId"`
	TitleAR      string `json:"titleAr"`
	TitleEN      string `json:"titleEn"`
	Price        int64  `json:"price" validate:"gte=0"`
	Currency     string `json:"currency" validate:"required,len=3"`
	Qty          int    `json:"qty" validate:"required,gte=1"`
	ImageURL     string `json:"imageUrl"`
	Instructor   string `json:"instructor"`
	SessionTitle string `json:"sessionTitle"`
}

// UpdateQuantityRequest is the JSON request body for setting a line quantity.
type UpdateQuantityRequest struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

// cartView is the cart payload returned to the shell, the snapshot plus the
// derived fields display components consume.
type cartView struct {
	domain.Cart
	ItemCount int         `json:"itemCount"`
	Loading   bool        `json:"loading"`
	Phase     state.Phase `json:"phase"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Cart:      h.cart.Snapshot(),
		ItemCount: h.cart.ItemCount(),
		Loading:   h.cart.Loading(),
		Phase:     h.cart.Phase(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// Init handles POST /api/v1/cart/init
func (h *CartHandler) Init(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Init(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// Refresh handles POST /api/v1/cart/refresh
func (h *CartHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// AddItem handles POST /api/v1/cart/items. A duplicate (courseId, sessionId)
// pair returns the unchanged cart with added=false; callers use the flag for
// their "already in cart" notice.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	added := h.service.AddItem(r.Context(), domain.CartItem{
		CourseID:     req.CourseID,
		SessionID:    req.SessionID,
		Title:        domain.LocalizedText{AR: req.TitleAR, EN: req.TitleEN},
		Price:        req.Price,
		Currency:     req.Currency,
		Qty:          req.Qty,
		ImageURL:     req.ImageURL,
		Instructor:   req.Instructor,
		SessionTitle: req.SessionTitle,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"cart":  h.view(),
		"added": added,
	}})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{itemId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.service.UpdateQuantity(r.Context(), itemID, req.Qty)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveItem(r.Context(), chi.URLParam(r, "itemId"))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}
