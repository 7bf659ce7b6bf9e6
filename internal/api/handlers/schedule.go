package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zzz403/Better-Robarts-Timetable/internal/api/middleware"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
)

// Schedule returns the joined slot rows for a date, ordered by space_id then
// start_time. The dashboard renders available slots as positive markers,
// unavailable as negative, and missing rows as blank.
func Schedule(slotRepo *storage.SlotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "date query parameter is required")
			return
		}

		gid := 0
		if gidParam := r.URL.Query().Get("gid"); gidParam != "" {
			var err error
			gid, err = strconv.Atoi(gidParam)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "gid must be an integer")
				return
			}
		}

		rows, err := slotRepo.Schedule(r.Context(), date, gid)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedule")
			return
		}

		if rows == nil {
			rows = []storage.ScheduleRow{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// ListDates returns the distinct query dates in the store with slot counts.
func ListDates(slotRepo *storage.SlotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := slotRepo.ListDates(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query dates")
			return
		}

		if dates == nil {
			dates = []storage.DateCount{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dates)
	}
}
