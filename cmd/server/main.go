package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/open2log/shopping-lists/internal/api"
	"github.com/open2log/shopping-lists/internal/auth"
	"github.com/open2log/shopping-lists/internal/config"
	"github.com/open2log/shopping-lists/internal/storage/sqlite"
	"github.com/open2log/shopping-lists/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func main() {
	logging.Setup()

	cfg := config.NewFromEnv()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Bearer fallback is only active when a secret is configured; behind the
	// gateway the identity header is the sole source of identity.
	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, tokenDuration)
		slog.Info("Bearer token fallback enabled")
	}

	server := api.NewServer(store, jwtManager)

	// Wrap with h2c so the gateway can speak HTTP/2 cleartext upstream
	handler := h2c.NewHandler(server.Router(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
