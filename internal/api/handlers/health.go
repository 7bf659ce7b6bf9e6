// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zzz403/Better-Robarts-Timetable/internal/availability"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
	"github.com/zzz403/Better-Robarts-Timetable/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		})
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	RoomsCount       int                 `json:"rooms_count"`
	SlotsCount       int                 `json:"slots_count"`
	AvailableSlots   int                 `json:"available_slots"`
	UnavailableSlots int                 `json:"unavailable_slots"`
	BatchRunning     bool                `json:"batch_running"`
	LastRun          *models.BatchResult `json:"last_run,omitempty"`
	ConnectedClients int                 `json:"connected_clients"`
}

// Status returns a handler that reports store statistics and run state.
func Status(
	roomRepo *storage.RoomRepository,
	slotRepo *storage.SlotRepository,
	scheduler *availability.Scheduler,
	hub *websocket.Hub,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var response StatusResponse
		response.RoomsCount, _ = roomRepo.Count(ctx)
		response.SlotsCount, _ = slotRepo.Count(ctx)
		response.AvailableSlots, _ = slotRepo.CountByStatus(ctx, models.StatusAvailable)
		response.UnavailableSlots, _ = slotRepo.CountByStatus(ctx, models.StatusUnavailable)
		if scheduler != nil {
			response.BatchRunning = scheduler.Running()
			response.LastRun = scheduler.LastResult()
		}
		if hub != nil {
			response.ConnectedClients = hub.ClientCount()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
