package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeBatchCompleted MessageType = "batch.completed"
	TypeBatchError     MessageType = "batch.error"
	TypeRoomSynced     MessageType = "room.synced"
	TypeNotification   MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// BatchCompletedPayload is the payload for batch.completed events.
type BatchCompletedPayload struct {
	RunID        string `json:"run_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	RoomsPlanned int    `json:"rooms_planned"`
	Success      int    `json:"success"`
	Bonus        int    `json:"bonus"`
	Errors       int    `json:"errors"`
	Processed    int    `json:"processed"`
}

// BatchErrorPayload is the payload for batch.error events.
type BatchErrorPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

// RoomSyncedPayload is the payload for room.synced events.
type RoomSyncedPayload struct {
	SpaceID   int    `json:"space_id"`
	QueryDate string `json:"query_date"`
	SlotCount int    `json:"slot_count"`
	Bonus     bool   `json:"bonus"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
