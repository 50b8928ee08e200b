/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the ASN monitor server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, ASN_* environment), then flags
  2. Open the storage backend (sqlite, redis or memory)
  3. Load the persisted record set into the registry
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (overrides ASN_PORT)
  -db       SQLite database path (overrides ASN_DB_PATH)
            Use ":memory:" for an in-memory database
  -storage  Storage driver (overrides ASN_STORAGE_DRIVER)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the storage backend
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/asn.db"

  # Share the record set through Redis
  ASN_STORAGE_DRIVER=redis ASN_REDIS_ADDR=redis:6379 ./server

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - personnel/registry.go: Record set
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/asn-monitor/api"
	"github.com/warp/asn-monitor/config"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/personnel/store"
	"github.com/warp/asn-monitor/pkg/logger"
	"github.com/warp/asn-monitor/pkg/metrics"
	"github.com/warp/asn-monitor/store/redis"
	"github.com/warp/asn-monitor/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	driver := flag.String("storage", cfg.StorageDriver, "Storage driver: sqlite, redis or memory")
	flag.Parse()
	cfg.Port = *port
	cfg.DBPath = *dbPath
	cfg.StorageDriver = *driver
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	// Initialize store
	kv, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer closeStore()

	// Load existing records
	registry := personnel.NewRegistry(kv,
		personnel.WithStorageKey(cfg.StorageKey),
		personnel.WithPolicy(cfg.ValidationPolicy()),
		personnel.WithHorizonDays(cfg.HorizonDays),
		personnel.WithRecomputeOnImport(cfg.ImportRecompute),
		personnel.WithLogger(log.With("component", "registry")),
	)
	n := registry.Load(context.Background())
	log.Info("Records loaded", "count", n, "driver", cfg.StorageDriver)

	handler := api.NewHandler(registry, metrics.NewMetrics("asn"), log.With("component", "api"))
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", "addr", fmt.Sprintf("http://localhost:%d", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server stopped")
}

// openStore opens the configured backend along with its close func.
func openStore(ctx context.Context, cfg *config.Config) (personnel.KeyValueStore, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		kv, err := redis.New(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case config.DriverMemory:
		return store.NewMemory(), func() error { return nil }, nil
	default:
		kv, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	}
}
