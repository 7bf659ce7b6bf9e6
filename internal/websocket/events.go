package websocket

import (
	"log"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastBatchCompleted sends a batch.completed event with the run's
// counters.
func (b *EventBroadcaster) BroadcastBatchCompleted(result models.BatchResult) {
	payload := BatchCompletedPayload{
		RunID:        result.RunID,
		StartDate:    result.StartDate,
		EndDate:      result.EndDate,
		RoomsPlanned: result.RoomsPlanned,
		Success:      result.Success,
		Bonus:        result.Bonus,
		Errors:       result.Errors,
		Processed:    result.Processed(),
	}

	b.broadcast(NewMessage(TypeBatchCompleted, payload))
}

// BroadcastBatchError sends a batch.error event.
func (b *EventBroadcaster) BroadcastBatchError(startDate, endDate string, err error) {
	payload := BatchErrorPayload{
		StartDate: startDate,
		EndDate:   endDate,
		Error:     "batch_error",
		Message:   err.Error(),
	}

	b.broadcast(NewMessage(TypeBatchError, payload))
}

// BroadcastRoomSynced sends a room.synced event for one room and query date.
func (b *EventBroadcaster) BroadcastRoomSynced(spaceID int, queryDate string, slotCount int, bonus bool) {
	payload := RoomSyncedPayload{
		SpaceID:   spaceID,
		QueryDate: queryDate,
		SlotCount: slotCount,
		Bonus:     bonus,
	}

	b.broadcast(NewMessage(TypeRoomSynced, payload))
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:   level,
		Title:   title,
		Message: message,
	}

	b.broadcast(NewMessage(TypeNotification, payload))
}

func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
