package models

// SlotStatus is the two-value availability classification for a time slot.
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "available"
	StatusUnavailable SlotStatus = "unavailable"
)

// RawSlot is one slot element exactly as the upstream grid API reports it.
// ClassName and Checksum are optional on the wire.
type RawSlot struct {
	ItemID    int    `json:"itemId"`
	Start     string `json:"start"`
	End       string `json:"end"`
	ClassName string `json:"className,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
}

// GridResponse is the decoded body of one availability grid call.
type GridResponse struct {
	Slots []RawSlot `json:"slots"`
}

// NormalizedSlot is a classified slot ready for persistence.
type NormalizedSlot struct {
	Start    string     `json:"start"`
	End      string     `json:"end"`
	ItemID   int        `json:"item_id"`
	Checksum string     `json:"checksum"`
	Status   SlotStatus `json:"status"`
}

// TimeSlot is a persisted slot row, keyed for replacement by
// (space_id, query_date).
type TimeSlot struct {
	ID        int64      `json:"id"`
	SpaceID   int        `json:"space_id"`
	GroupID   int        `json:"gid"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    SlotStatus `json:"status"`
	ItemID    int        `json:"item_id"`
	Checksum  string     `json:"checksum"`
	QueryDate string     `json:"query_date"`
}
