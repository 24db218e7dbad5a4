/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the PropEase lease engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite store and document file store
  3. Create the lease engine and API handler
  4. Configure HTTP router, start the overdue scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: leases.db)
           Use ":memory:" for an in-memory database
  -files   Document storage directory (default: ./data/files)
  -sweep   Overdue sweep interval (default: 1h)

ENVIRONMENT:
  The same settings can come from a .env file or the environment:
  PORT, DATABASE_PATH, FILES_DIR, SWEEP_INTERVAL. Flags win over
  environment values.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the overdue scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/leases.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propease/lease-engine/api"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/filestore"
	"github.com/propease/lease-engine/store/sqlite"
)

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DATABASE_PATH", "leases.db"), "SQLite database path")
	filesDir := flag.String("files", envStr("FILES_DIR", "./data/files"), "document storage directory")
	sweepEvery := flag.Duration("sweep", envDuration("SWEEP_INTERVAL", time.Hour), "overdue sweep interval")
	flag.Parse()

	log := slog.Default()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	files, err := filestore.NewLocal(*filesDir)
	if err != nil {
		log.Error("failed to initialize file storage", "error", err)
		os.Exit(1)
	}

	eng := engine.New(store, files)
	handler := api.NewHandler(eng)
	router := api.NewRouter(handler)

	scheduler := api.NewOverdueScheduler(eng)
	scheduler.CheckInterval = *sweepEvery
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
