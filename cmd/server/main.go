package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/habitual/internal/auth"
	"github.com/mmynk/habitual/internal/config"
	"github.com/mmynk/habitual/internal/middleware"
	"github.com/mmynk/habitual/internal/service"
	"github.com/mmynk/habitual/internal/storage/sqlite"
	"github.com/mmynk/habitual/pkg/logging"
	"github.com/mmynk/habitual/pkg/metrics"
)

func main() {
	logging.Setup()
	cfg := config.Load()
	metrics.Register()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	habitSvc := service.NewHabitService(store, slog.Default())

	router := service.NewRouter(authSvc, habitSvc, jwtManager)
	handler := middleware.CORS(cfg.CORSOrigin)(router)

	// h2c allows HTTP/2 without TLS for clients that speak it; plain
	// HTTP/1.1 requests pass through unchanged.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h2cHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
