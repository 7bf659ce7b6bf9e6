// Package models contains the domain models for the application.
package models

import (
	"time"
)

// Room represents one bookable study space.
// Rooms are created on first sighting (roster import or bonus discovery)
// and only ever mutated by upsert; the pipeline never deletes them.
type Room struct {
	SpaceID   int       `json:"space_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	GroupID   int       `json:"gid"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// UnknownGroupID is the sentinel stored for slots belonging to a bonus room
// that has no roster entry. Downstream group filters treat it as "ungrouped".
const UnknownGroupID = 0
