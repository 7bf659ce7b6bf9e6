package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/zzz403/Better-Robarts-Timetable/internal/api/middleware"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// ListRooms returns all rooms, optionally filtered by ?gid=.
func ListRooms(roomRepo *storage.RoomRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var (
			rooms []models.Room
			err   error
		)
		if gidParam := r.URL.Query().Get("gid"); gidParam != "" {
			gid, convErr := strconv.Atoi(gidParam)
			if convErr != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "gid must be an integer")
				return
			}
			rooms, err = roomRepo.ListByGroup(ctx, gid)
		} else {
			rooms, err = roomRepo.List(ctx)
		}

		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query rooms")
			return
		}

		if rooms == nil {
			rooms = []models.Room{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rooms)
	}
}

// GetRoom returns a single room by space ID.
func GetRoom(roomRepo *storage.RoomRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spaceID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Room ID must be an integer")
			return
		}

		room, err := roomRepo.GetBySpaceID(r.Context(), spaceID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query room")
			return
		}
		if room == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Room not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(room)
	}
}

// GetRoomSlots returns the persisted slots for one room and query date,
// ordered by start time.
func GetRoomSlots(slotRepo *storage.SlotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spaceID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Room ID must be an integer")
			return
		}

		date := r.URL.Query().Get("date")
		if date == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "date query parameter is required")
			return
		}

		slots, err := slotRepo.ListForDay(r.Context(), spaceID, date)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query slots")
			return
		}

		if slots == nil {
			slots = []models.TimeSlot{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(slots)
	}
}
