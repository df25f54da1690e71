package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/config"
	handler "github.com/tadarrab/storefront/internal/handler/http"
	"github.com/tadarrab/storefront/internal/hydrate"
	"github.com/tadarrab/storefront/internal/service"
	"github.com/tadarrab/storefront/internal/state"
	"github.com/tadarrab/storefront/internal/storage"
	filestore "github.com/tadarrab/storefront/internal/storage/file"
	redisstore "github.com/tadarrab/storefront/internal/storage/redis"
	"github.com/tadarrab/storefront/internal/token"
	"github.com/tadarrab/storefront/pkg/health"
	"github.com/tadarrab/storefront/pkg/httpclient"
	"github.com/tadarrab/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront state service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	hydrator   *hydrate.Hydrator
	httpServer *http.Server
	shutdownFn func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Snapshot store backend.
	var (
		store storage.Store
		rdb   *redis.Client
		err   error
	)
	switch cfg.StateStore {
	case config.StoreRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		store = redisstore.New(rdb, cfg.StateTTL, logger)
	default:
		store, err = filestore.New(cfg.StateDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open state dir: %w", err)
		}
		logger.Info("using file snapshot store", slog.String("dir", cfg.StateDir))
	}

	// Tracing (no-op when disabled).
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  "storefront",
		Environment:  cfg.Environment,
		Enabled:      cfg.TracingEnabled,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.TraceSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// State containers.
	keeper := token.NewKeeper(store, cfg.TokenTTL, logger)
	auth := state.NewAuthStore(store, keeper, logger)
	cart := state.NewCartStore(store, cfg.DefaultCurrency, logger)
	wishlist := state.NewWishlistStore(store, logger)

	// Marketplace backend client. Token source and 401 hook come from the
	// auth container, which in turn validates tokens through the client.
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.MarketplaceTimeout
	bc := backend.New(cfg.MarketplaceURL, clientCfg, httpclient.DefaultCircuitBreakerConfig("marketplace"), logger)
	bc.SetTokenSource(auth.Token)
	bc.SetOnUnauthorized(auth.Logout)
	auth.SetValidator(bc)

	hydrator := hydrate.New(auth, cart, wishlist, cfg.HydrationGrace, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("hydration", hydrator.Check)
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	router := handler.NewRouter(handler.RouterDeps{
		CartService:    service.NewCartService(bc, cart, logger),
		AuthService:    service.NewAuthService(bc, auth, cart, logger),
		OrderService:   service.NewOrderService(bc, cart, logger),
		CatalogService: service.NewCatalogService(bc, logger),
		Cart:           cart,
		Wishlist:       wishlist,
		Auth:           auth,
		Hydrator:       hydrator,
		Health:         healthHandler,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		hydrator:   hydrator,
		httpServer: httpServer,
		shutdownFn: shutdownTracer,
	}, nil
}

// Run hydrates the containers, starts the HTTP server, and blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	if err := a.hydrator.Run(ctx); err != nil {
		return fmt.Errorf("hydrate state: %w", err)
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.shutdownFn != nil {
		if err := a.shutdownFn(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
