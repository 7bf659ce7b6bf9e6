package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zzz403/Better-Robarts-Timetable/internal/api/middleware"
	"github.com/zzz403/Better-Robarts-Timetable/internal/availability"
)

// StartBatchRequest is the body for POST /api/batches. Both dates are
// optional; the default range is today through tomorrow.
type StartBatchRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StartBatch triggers an availability batch in the background. Responds 202
// immediately; completion is reported over the websocket.
func StartBatch(scheduler *availability.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartBatchRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
				return
			}
		}

		now := time.Now()
		if req.StartDate == "" {
			req.StartDate = now.Format("2006-01-02")
		}
		if req.EndDate == "" {
			req.EndDate = now.AddDate(0, 0, 1).Format("2006-01-02")
		}

		for _, date := range []string{req.StartDate, req.EndDate} {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Dates must be YYYY-MM-DD")
				return
			}
		}
		if req.EndDate < req.StartDate {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "end_date must not precede start_date")
			return
		}

		if !scheduler.TriggerRun(req.StartDate, req.EndDate) {
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "A batch is already running")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status":     "running",
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
		})
	}
}
