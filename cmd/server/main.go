// Package main is the entry point for the study room availability server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/zzz403/Better-Robarts-Timetable/internal/api"
	"github.com/zzz403/Better-Robarts-Timetable/internal/availability"
	"github.com/zzz403/Better-Robarts-Timetable/internal/libcal"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
	"github.com/zzz403/Better-Robarts-Timetable/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	addr := flag.String("addr", ":8088", "HTTP server address")
	dataDir := flag.String("data", "./data", "Data directory for SQLite database")
	rosterPath := flag.String("roster", "./rooms.csv", "Room roster CSV file")
	staticDir := flag.String("static", "./static", "Directory for static frontend files")
	baseURL := flag.String("base-url", libcal.DefaultBaseURL, "LibCal base URL")
	throttleMs := flag.Int("throttle-ms", 500, "Delay after each successful grid call, in milliseconds")
	syncIntervalMin := flag.Int("sync-interval", 360, "Minutes between scheduled batch runs")
	horizonDays := flag.Int("horizon-days", 1, "Days past today each scheduled run fetches")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(*addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting study room availability server (version: %s)...", version)

	// Initialize database
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %q: %v", *dataDir, err)
	}
	db, err := storage.NewDB(filepath.Join(*dataDir, "study_rooms.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize repositories
	roomRepo := storage.NewRoomRepository(db)
	slotRepo := storage.NewSlotRepository(db)

	// Load the room roster; it seeds the rooms table and backs the metadata
	// lookups for bonus rooms.
	registry, err := availability.LoadRegistry(*rosterPath)
	if err != nil {
		log.Fatalf("Failed to load roster %q: %v", *rosterPath, err)
	}
	if err := availability.ImportRoster(context.Background(), registry, roomRepo); err != nil {
		log.Fatalf("Failed to import roster: %v", err)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize the pipeline
	client := libcal.NewClient(*baseURL, time.Duration(*throttleMs)*time.Millisecond)
	batch := availability.NewBatchService(client, registry, roomRepo, slotRepo)
	scheduler := availability.NewScheduler(batch, hub, *syncIntervalMin, *horizonDays)

	if err := scheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start batch scheduler: %v", err)
	}

	// Initialize HTTP router
	router := api.NewRouter(db, roomRepo, slotRepo, scheduler, hub, *staticDir)

	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
