package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/0ShNa0/ThriftAlley/internal"
	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/events"
	"github.com/0ShNa0/ThriftAlley/internal/handler"
	"github.com/0ShNa0/ThriftAlley/internal/memory"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
	"github.com/0ShNa0/ThriftAlley/internal/postgres"
	"github.com/0ShNa0/ThriftAlley/internal/router"
	"github.com/0ShNa0/ThriftAlley/internal/routes"
	"github.com/0ShNa0/ThriftAlley/internal/service"
	"github.com/0ShNa0/ThriftAlley/internal/storage"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// ==========================================================================
	// Persistence
	// ==========================================================================

	var (
		userStore    domain.UserStore
		sessionStore domain.SessionStore
		productStore domain.ProductStore
		cartStore    domain.CartStore
	)

	switch cfg.Store {
	case "postgres":
		// database/sql connection for migrations
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		// pgx connection pool for the application
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		userStore = postgres.NewUserStore(pool)
		sessionStore = postgres.NewSessionStore(pool)
		productStore = postgres.NewProductStore(pool)
		cartStore = postgres.NewCartStore(pool)

	case "memory":
		logger.Warn("Using in-memory stores; all data is lost on shutdown")
		userStore = memory.NewUserStore()
		sessionStore = memory.NewSessionStore()
		productStore = memory.NewProductStore()
		cartStore = memory.NewCartStore()
	}

	// ==========================================================================
	// Providers
	// ==========================================================================

	// Image storage
	imageStorage, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "provider", cfg.Storage.Provider)

	// Event publisher
	var publisher events.Publisher
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("NATS publisher initialized", "url", cfg.NATSURL)
	} else {
		publisher = events.NewNoopPublisher()
		logger.Info("Event publishing disabled")
	}

	// ==========================================================================
	// Services
	// ==========================================================================

	userService := service.NewUserService(userStore, sessionStore, logger)
	productService := service.NewProductService(productStore, userStore, imageStorage, publisher, logger)
	cartEngine := service.NewCartEngine(userStore, productStore, cartStore, publisher, logger)

	// Shared request validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	deps := routes.Deps{
		UserHandler:    handler.NewUserHandler(userService, validate, logger),
		ProductHandler: handler.NewProductHandler(productService, validate, logger),
		CartHandler:    handler.NewCartHandler(cartEngine, validate, logger),
	}

	// ==========================================================================
	// Router
	// ==========================================================================

	metrics := middleware.NewMetrics("thriftalley")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.CORSOrigins),
		router.Logger(logger),
		middleware.WithUser(userService),
		middleware.WithRequestLogger(logger),
	)

	// Uploaded product images served directly in local storage mode
	if cfg.Storage.Provider == "local" {
		r.Static(cfg.Storage.LocalURL, cfg.Storage.LocalPath)
	}

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, deps)

	// ==========================================================================
	// Serve
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Env, "store", cfg.Store)

	return http.ListenAndServe(addr, r)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
