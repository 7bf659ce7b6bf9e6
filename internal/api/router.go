// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/zzz403/Better-Robarts-Timetable/internal/api/handlers"
	"github.com/zzz403/Better-Robarts-Timetable/internal/api/middleware"
	"github.com/zzz403/Better-Robarts-Timetable/internal/availability"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
	"github.com/zzz403/Better-Robarts-Timetable/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all API routes.
// The API is read-only over the store except for the batch trigger.
func NewRouter(
	db *storage.DB,
	roomRepo *storage.RoomRepository,
	slotRepo *storage.SlotRepository,
	scheduler *availability.Scheduler,
	hub *websocket.Hub,
	staticDir string,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(roomRepo, slotRepo, scheduler, hub)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Dashboard read endpoints
	api.HandleFunc("/rooms", handlers.ListRooms(roomRepo)).Methods("GET")
	api.HandleFunc("/rooms/{id}", handlers.GetRoom(roomRepo)).Methods("GET")
	api.HandleFunc("/rooms/{id}/slots", handlers.GetRoomSlots(slotRepo)).Methods("GET")
	api.HandleFunc("/schedule", handlers.Schedule(slotRepo)).Methods("GET")
	api.HandleFunc("/dates", handlers.ListDates(slotRepo)).Methods("GET")

	// Batch trigger
	api.HandleFunc("/batches", handlers.StartBatch(scheduler)).Methods("POST")

	// Serve static frontend files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
