package models

import (
	"time"
)

// BatchResult summarizes one orchestrator run over the target room list.
type BatchResult struct {
	RunID        string    `json:"run_id"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	RoomsPlanned int       `json:"rooms_planned"`
	Success      int       `json:"success"`
	Bonus        int       `json:"bonus"`
	Errors       int       `json:"errors"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Processed reports how many distinct rooms the run persisted.
func (r *BatchResult) Processed() int {
	return r.Success + r.Bonus
}
