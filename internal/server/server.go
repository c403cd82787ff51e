// Package server wires the shop together: router, middleware, routes, and
// the dependency chain from database to handlers.
//
// COMPOSITION ROOT:
// Every dependency is assembled in one place (New/setupRoutes) instead of
// being scattered across the codebase:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever touches HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/HerosSMP/Heros-shop.de/internal/auth"
	"github.com/HerosSMP/Heros-shop.de/internal/handler"
	"github.com/HerosSMP/Heros-shop.de/internal/middleware"
	sqliteRepo "github.com/HerosSMP/Heros-shop.de/internal/repository/sqlite"
	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// Config holds server configuration. main.go fills this from the
// environment; tests fill it by hand.
type Config struct {
	Port       int
	DBPath     string
	JWTSecret  string        // signing key for session tokens, min 16 chars
	SessionTTL time.Duration // how long a login stays valid
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL gets flushed and the file
// lock released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, seeds it on first run, and assembles the full
// dependency chain.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// seed inserts the default catalog, site texts, and admin account, but
// only into tables that are still empty. A restarted server never
// overwrites data an admin has since edited.
func (s *Server) seed() error {
	passwords := auth.NewPasswordService()
	data, err := defaultSeed(passwords)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.Seed(ctx, data); err != nil {
		return err
	}
	s.logger.Info("seed check complete")
	return nil
}

// setupRoutes configures middleware and the route table.
//
// MIDDLEWARE ORDER MATTERS — it executes in the order it's added:
// 1. RequestID — assigns a unique ID to each request (for tracing)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
//
// The /api tree splits into a public half (storefront, checkout, login)
// and an admin half wrapped in auth.RequireAuth. The middleware validates
// the session cookie on EVERY admin request, so a token minted with an
// old secret or an expired one is rejected server-side, not client-side.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Services receive repository interfaces, not the concrete DB.
	productService := service.NewProductService(s.db.Products, s.logger)
	orderService := service.NewOrderService(s.db.Orders, s.logger)
	textService := service.NewSiteTextService(s.db.SiteTexts, s.logger)
	userService := service.NewUserService(s.db.Users, passwords, s.logger)
	authService := service.NewAuthService(s.db.Users, tokens, passwords, s.config.SessionTTL, s.logger)

	productHandler := handler.NewProductHandler(productService, s.logger)
	orderHandler := handler.NewOrderHandler(orderService, s.logger)
	textHandler := handler.NewSiteTextHandler(textService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	imageHandler := handler.NewImageHandler(s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public storefront routes — no session required.
		r.Get("/products", productHandler.HandleList)
		r.Get("/products/{id}", productHandler.HandleGet)
		r.Post("/orders", orderHandler.HandleCreate)
		r.Get("/texts", textHandler.HandleList)
		r.Get("/texts/{key}", textHandler.HandleGetValue)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Admin routes — session cookie validated on every request.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Post("/products", productHandler.HandleCreate)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)

			r.Get("/orders", orderHandler.HandleList)
			r.Get("/orders/{id}", orderHandler.HandleGet)
			r.Put("/orders/{id}/status", orderHandler.HandleUpdateStatus)
			r.Delete("/orders/last", orderHandler.HandleDeleteLast)
			r.Delete("/orders/{id}", orderHandler.HandleDelete)

			r.Put("/texts/{key}", textHandler.HandleUpdateValue)

			r.Get("/users", userHandler.HandleList)
			r.Get("/users/exists", userHandler.HandleExists)
			r.Get("/users/{id}", userHandler.HandleGet)
			r.Post("/users", userHandler.HandleCreate)
			r.Put("/users/{id}", userHandler.HandleUpdate)
			r.Delete("/users/{id}", userHandler.HandleDelete)

			r.Post("/images", imageHandler.HandleUpload)
		})
	})

	return nil
}

// Router exposes the configured route table so tests can drive the server
// through httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
