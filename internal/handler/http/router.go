package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tadarrab/storefront/internal/hydrate"
	"github.com/tadarrab/storefront/internal/service"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/pkg/health"
	"github.com/tadarrab/storefront/pkg/middleware"
)

// RouterDeps collects everything the facade routes need.
type RouterDeps struct {
	CartService    *service.CartService
	AuthService    *service.AuthService
	OrderService   *service.OrderService
	CatalogService *service.CatalogService
	Cart           *state.CartStore
	Wishlist       *state.WishlistStore
	Auth           *state.AuthStore
	Hydrator       *hydrate.Hydrator
	Health         *health.Handler
	Logger         *slog.Logger
}

// NewRouter creates a chi router with all storefront state routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(deps.CartService, deps.Cart, deps.Logger)
	wishlistHandler := NewWishlistHandler(deps.Wishlist, deps.Logger)
	authHandler := NewAuthHandler(deps.AuthService, deps.Auth, deps.Hydrator, deps.Logger)
	orderHandler := NewOrderHandler(deps.OrderService, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.CatalogService, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/init", cartHandler.Init)
			r.Post("/refresh", cartHandler.Refresh)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{itemId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{itemId}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.ClearWishlist)
			r.Post("/items", wishlistHandler.AddItem)
			r.Delete("/items/{courseId}", wishlistHandler.RemoveItem)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/session", authHandler.GetSession)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/register", authHandler.Register)
			r.Post("/verify-email", authHandler.VerifyEmail)
			r.Post("/resend-verification", authHandler.ResendVerification)
			r.Patch("/profile", authHandler.UpdateProfile)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Checkout)
			r.Get("/", orderHandler.ListOrders)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCourses)
			r.Get("/{slug}", catalogHandler.GetCourse)
			r.Get("/{courseId}/sessions", catalogHandler.ListSessions)
		})
	})

	return r
}
