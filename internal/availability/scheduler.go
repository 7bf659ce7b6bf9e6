package availability

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
	"github.com/zzz403/Better-Robarts-Timetable/internal/websocket"
)

// Scheduler runs the availability batch on a fixed interval and serves
// manual triggers from the API. Runs never overlap: the store assumes a
// single writer, so a trigger while a run is in flight is refused.
type Scheduler struct {
	cron        *cron.Cron
	batch       *BatchService
	broadcaster *websocket.EventBroadcaster

	interval    time.Duration
	horizonDays int

	running    bool
	lastResult *models.BatchResult
	runningMu  sync.Mutex
}

// NewScheduler creates a batch scheduler. intervalMin is the minutes between
// automatic runs; horizonDays is how far past today each run fetches.
func NewScheduler(
	batch *BatchService,
	hub *websocket.Hub,
	intervalMin int,
	horizonDays int,
) *Scheduler {
	if intervalMin <= 0 {
		intervalMin = 360
	}
	if horizonDays <= 0 {
		horizonDays = 1
	}

	var broadcaster *websocket.EventBroadcaster
	if hub != nil {
		broadcaster = websocket.NewEventBroadcaster(hub)
		batch.SetEvents(broadcaster)
	}

	return &Scheduler{
		cron:        cron.New(),
		batch:       batch,
		broadcaster: broadcaster,
		interval:    time.Duration(intervalMin) * time.Minute,
		horizonDays: horizonDays,
	}
}

// Start begins the periodic schedule.
func (s *Scheduler) Start() error {
	spec := "@every " + s.interval.String()
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Batch scheduler started: every %s, %d day horizon", s.interval, s.horizonDays)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	log.Println("Stopping batch scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Batch scheduler stopped")
}

// TriggerRun starts a batch for [startDate, endDate] in the background.
// Returns false if a run is already in flight.
func (s *Scheduler) TriggerRun(startDate, endDate string) bool {
	if !s.tryAcquire() {
		return false
	}

	go func() {
		defer s.release()
		s.run(startDate, endDate)
	}()

	return true
}

// Running reports whether a batch is currently in flight.
func (s *Scheduler) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}

// LastResult returns the most recent completed run's result, or nil if no
// run has completed yet.
func (s *Scheduler) LastResult() *models.BatchResult {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.lastResult
}

// runScheduled is the cron entry point: today through today+horizon.
func (s *Scheduler) runScheduled() {
	if !s.tryAcquire() {
		log.Println("Skipping scheduled batch: a run is already in flight")
		return
	}
	defer s.release()

	now := time.Now()
	startDate := now.Format("2006-01-02")
	endDate := now.AddDate(0, 0, s.horizonDays).Format("2006-01-02")
	s.run(startDate, endDate)
}

func (s *Scheduler) run(startDate, endDate string) {
	log.Printf("Starting batch for %s..%s", startDate, endDate)

	result, err := s.batch.Run(context.Background(), startDate, endDate)
	if err != nil {
		log.Printf("Batch for %s..%s failed: %v", startDate, endDate, err)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastBatchError(startDate, endDate, err)
		}
		return
	}

	s.runningMu.Lock()
	s.lastResult = result
	s.runningMu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBatchCompleted(*result)
	}
}

func (s *Scheduler) tryAcquire() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()
}
