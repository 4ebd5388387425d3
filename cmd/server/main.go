/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the time-clock reporting server.
  Handles configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration (business rules are validated here and a
     failure aborts startup - the engine refuses to run on bad thresholds)
  3. Open the SQLite event store
  4. Wire handler and chi router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to YAML config (optional; built-in demo defaults otherwise)
  -port    Override the configured HTTP port
  -db      Override the configured SQLite path (":memory:" supported)
  -seed    Load a demo scenario on startup (e.g. "standard-week")

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store

EXAMPLES:
  ./server -config=./config.yaml
  ./server -db=":memory:" -seed=standard-week

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration format
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lengolf/timeclock-engine/api"
	"github.com/lengolf/timeclock-engine/config"
	"github.com/lengolf/timeclock-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	seed := flag.String("seed", "", "demo scenario to load on startup")
	flag.Parse()

	// Configuration: rules validation happens inside Load and is fatal.
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	zone, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve business time zone: %v", err)
	}

	store, err := sqlite.New(cfg.Database.Path, zone)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, cfg.Rules(), zone)

	if *seed != "" {
		if err := handler.SeedScenario(context.Background(), *seed); err != nil {
			log.Fatalf("Failed to seed scenario: %v", err)
		}
		log.Printf("Seeded demo scenario %q", *seed)
	}

	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Time clock API listening on http://localhost:%d/api (zone %s)", cfg.Server.Port, zone)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
