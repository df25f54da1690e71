package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tadarrab/storefront/internal/domain"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/pkg/httputil"
	"github.com/tadarrab/storefront/pkg/validator"
)

// WishlistHandler exposes the wishlist container to the UI shell.
type WishlistHandler struct {
	wishlist *state.WishlistStore
	logger   *slog.Logger
}

func NewWishlistHandler(wishlist *state.WishlistStore, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

// AddWishlistItemRequest is the JSON request body for saving a course.
type AddWishlistItemRequest struct {
	CourseID   string `json:"courseId" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Price      int64  `json:"price" validate:"gte=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
	ImageURL   string `json:"imageUrl"`
	Instructor string `json:"instructor"`
}

type wishlistView struct {
	domain.Wishlist
	ItemCount int         `json:"itemCount"`
	Loading   bool        `json:"loading"`
	Phase     state.Phase `json:"phase"`
}

func (h *WishlistHandler) view() wishlistView {
	return wishlistView{
		Wishlist:  h.wishlist.Snapshot(),
		ItemCount: h.wishlist.ItemCount(),
		Loading:   h.wishlist.Loading(),
		Phase:     h.wishlist.Phase(),
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// AddItem handles POST /api/v1/wishlist/items. Saving an already-saved
// course returns the unchanged list with added=false.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	added := h.wishlist.AddItem(r.Context(), domain.WishlistItem{
		CourseID:   req.CourseID,
		Title:      req.Title,
		Price:      req.Price,
		Currency:   req.Currency,
		ImageURL:   req.ImageURL,
		Instructor: req.Instructor,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"wishlist": h.view(),
		"added":    added,
	}})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{courseId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.wishlist.RemoveItem(r.Context(), chi.URLParam(r, "courseId"))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.ClearWishlist(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}
