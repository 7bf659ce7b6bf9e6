package availability

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/zzz403/Better-Robarts-Timetable/internal/libcal"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// GridClient is the upstream dependency of the batch orchestrator. Satisfied
// by *libcal.Client.
type GridClient interface {
	FetchGrid(ctx context.Context, spaceID, groupID int, startDate, endDate string) (*models.GridResponse, error)
}

var _ GridClient = (*libcal.Client)(nil)

// EventSink receives per-room progress events during a run. Satisfied by
// *websocket.EventBroadcaster.
type EventSink interface {
	BroadcastRoomSynced(spaceID int, queryDate string, slotCount int, bonus bool)
}

// BatchService runs availability batches over the target room list.
type BatchService struct {
	client   GridClient
	registry *Registry
	roomRepo *storage.RoomRepository
	slotRepo *storage.SlotRepository
	events   EventSink
}

// NewBatchService creates a new batch orchestrator.
func NewBatchService(
	client GridClient,
	registry *Registry,
	roomRepo *storage.RoomRepository,
	slotRepo *storage.SlotRepository,
) *BatchService {
	return &BatchService{
		client:   client,
		registry: registry,
		roomRepo: roomRepo,
		slotRepo: slotRepo,
	}
}

// SetEvents attaches a sink for per-room progress events. Optional; a nil
// sink disables them.
func (s *BatchService) SetEvents(events EventSink) {
	s.events = events
}

// Run fetches availability for every room in the store over [startDate,
// endDate] and replaces the persisted slots for that range. Rooms are
// processed strictly in sequence; a failed room is counted and skipped, never
// fatal to the batch. Rooms whose slots arrived earlier in the run as bonus
// data are skipped rather than refetched.
func (s *BatchService) Run(ctx context.Context, startDate, endDate string) (*models.BatchResult, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing target rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms in store; import a roster first")
	}

	result := &models.BatchResult{
		RunID:        storage.GenerateID(),
		StartDate:    startDate,
		EndDate:      endDate,
		RoomsPlanned: len(rooms),
		StartedAt:    time.Now().UTC(),
	}

	// Reset the run's scope so the range holds exactly this run's data.
	if err := s.slotRepo.ClearRange(ctx, startDate, endDate); err != nil {
		return nil, err
	}

	processed := make(map[int]bool)

	for i, room := range rooms {
		if processed[room.SpaceID] {
			log.Printf("Skipping room %d (%s): covered by an earlier call", room.SpaceID, room.Name)
			continue
		}

		log.Printf("Fetching room %d/%d: %d (%s, gid %d)", i+1, len(rooms), room.SpaceID, room.Name, room.GroupID)

		grid, err := s.client.FetchGrid(ctx, room.SpaceID, room.GroupID, startDate, endDate)
		if err != nil {
			log.Printf("Fetch failed for room %d: %v", room.SpaceID, err)
			result.Errors++
			continue
		}

		groups, order := libcal.GroupByItem(grid.Slots)

		// The requested room first.
		if target, ok := groups[room.SpaceID]; ok {
			if err := s.persistRoom(ctx, room.SpaceID, room.GroupID, target, false); err != nil {
				log.Printf("Persisting room %d failed: %v", room.SpaceID, err)
				result.Errors++
			} else {
				processed[room.SpaceID] = true
				result.Success++
			}
		}

		// Then every bonus room the response happened to include.
		for _, itemID := range order {
			if itemID == room.SpaceID || processed[itemID] {
				continue
			}
			if err := s.persistBonusRoom(ctx, itemID, groups[itemID]); err != nil {
				log.Printf("Persisting bonus room %d failed: %v", itemID, err)
				continue
			}
			processed[itemID] = true
			result.Bonus++
		}
	}

	result.FinishedAt = time.Now().UTC()
	log.Printf("Batch %s complete: %d success, %d bonus, %d errors; %d rooms covered of %d planned",
		result.RunID, result.Success, result.Bonus, result.Errors, result.Processed(), result.RoomsPlanned)

	return result, nil
}

// persistRoom classifies one room's raw slots and replaces its persisted
// rows, one durable unit per calendar day.
func (s *BatchService) persistRoom(ctx context.Context, spaceID, groupID int, raw []models.RawSlot, bonus bool) error {
	slots := libcal.ClassifyAll(raw)

	for _, day := range partitionByDay(slots) {
		if err := s.slotRepo.ReplaceForDay(ctx, spaceID, groupID, day.date, day.slots); err != nil {
			return err
		}
		if s.events != nil {
			s.events.BroadcastRoomSynced(spaceID, day.date, len(day.slots), bonus)
		}
	}

	log.Printf("Room %d: %d slots persisted", spaceID, len(slots))
	return nil
}

// persistBonusRoom resolves metadata for a room that arrived only as bonus
// data, then persists its slots. A roster miss downgrades to the unknown
// group sentinel rather than failing: slot data is worth more than complete
// metadata.
func (s *BatchService) persistBonusRoom(ctx context.Context, itemID int, raw []models.RawSlot) error {
	groupID := models.UnknownGroupID

	if meta, ok := s.registry.Lookup(itemID); ok {
		if err := s.roomRepo.Upsert(ctx, &meta); err != nil {
			return err
		}
		groupID = meta.GroupID
	} else {
		log.Printf("Warning: no roster entry for bonus room %d; persisting slots without metadata", itemID)
	}

	return s.persistRoom(ctx, itemID, groupID, raw, true)
}

// dayGroup is one calendar day's worth of a room's normalized slots.
type dayGroup struct {
	date  string
	slots []models.NormalizedSlot
}

// partitionByDay groups normalized slots by the calendar day of their start
// time, sorted by date. Every persisted slot carries the query date of its
// own day, which is the unit of replacement.
func partitionByDay(slots []models.NormalizedSlot) []dayGroup {
	byDay := make(map[string][]models.NormalizedSlot)
	for _, slot := range slots {
		day := queryDateOf(slot.Start)
		byDay[day] = append(byDay[day], slot)
	}

	days := make([]dayGroup, 0, len(byDay))
	for date, daySlots := range byDay {
		days = append(days, dayGroup{date: date, slots: daySlots})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date < days[j].date })

	return days
}

// queryDateOf extracts the calendar day from a slot timestamp like
// "2026-08-31 10:00:00".
func queryDateOf(start string) string {
	if len(start) < 10 {
		return start
	}
	return start[:10]
}
