package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fittrackr/fittrackr/internal/auth"
	"github.com/fittrackr/fittrackr/internal/metrics"
	"github.com/fittrackr/fittrackr/internal/middleware"
	"github.com/fittrackr/fittrackr/internal/payment"
	"github.com/fittrackr/fittrackr/internal/service"
	"github.com/fittrackr/fittrackr/internal/storage"
	"github.com/fittrackr/fittrackr/internal/storage/memory"
	"github.com/fittrackr/fittrackr/internal/storage/sqlite"
	"github.com/fittrackr/fittrackr/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()
	logger := slog.Default()

	addr := getEnv("ADDR", ":8080")
	jwtSecret := getEnv("JWT_SECRET", "dev-only-insecure-secret-change-me")
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		logger.Error("Invalid TOKEN_TTL", "error", err)
		os.Exit(1)
	}

	// Empty DB_PATH keeps everything in memory; state lives as long as the
	// process, matching the single-session demo.
	var store storage.Store
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		sqliteStore, err := sqlite.New(dbPath)
		if err != nil {
			logger.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		store = sqliteStore
		logger.Info("Storage initialized", "backend", "sqlite", "database", dbPath)
	} else {
		store = memory.New()
		logger.Info("Storage initialized", "backend", "memory")
	}
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)
	gateway := payment.NewStubGateway(logger)

	authService := service.NewAuthService(authenticator, jwtManager, logger)
	fitnessService := service.NewFitnessService(store, gateway, logger)

	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)
	r.Route("/api/v1", func(r chi.Router) {
		authService.RegisterRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))
			fitnessService.RegisterRoutes(r)
		})
	})
	r.Handle("/metrics", metrics.Handler())

	handler := metrics.InstrumentHandler(r)

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
