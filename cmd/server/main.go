package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"github.com/invotrack/invotrack/internal/auth"
	"github.com/invotrack/invotrack/internal/config"
	"github.com/invotrack/invotrack/internal/httpapi"
	"github.com/invotrack/invotrack/internal/middleware"
	"github.com/invotrack/invotrack/internal/storage"
	"github.com/invotrack/invotrack/internal/storage/sqlite"
	"github.com/invotrack/invotrack/pkg/logging"
)

func main() {
	logging.Setup()
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.DB.Path)

	if err := seedUser(store, cfg.Seed, logger); err != nil {
		logger.Error("failed to seed user", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	authHandler := httpapi.NewAuthHandler(store, jwtManager, logger)
	invoiceHandler := httpapi.NewInvoiceHandler(store, logger)
	healthHandler := httpapi.NewHealthHandler(store, logger)

	mux := httpapi.NewRouter(authHandler, invoiceHandler, healthHandler, jwtManager)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	handler := c.Handler(middleware.Logging(middleware.Metrics(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// seedUser creates the configured development user if it does not exist.
func seedUser(store storage.Store, seed config.SeedConfig, logger *slog.Logger) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}

	ctx := context.Background()
	_, err := store.GetUserByEmail(ctx, seed.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	digest, err := auth.HashPassword(seed.Password)
	if err != nil {
		return err
	}
	user, err := store.CreateUser(ctx, seed.Email, digest)
	if err != nil {
		return err
	}
	logger.Info("seed user created", "user_id", user.ID, "email", user.Email)
	return nil
}
