// Package availability drives the room availability pipeline: batch
// orchestration, roster bootstrap, and scheduled runs.
package availability

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// Registry is the read-only room roster, the fallback metadata source for
// rooms that show up only as bonus data in a grid response.
type Registry struct {
	rooms map[int]models.Room
}

// LoadRegistry reads the roster CSV at path. Expected header columns:
// space_id, room_name, capacity_found_at, gid, url.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	return ParseRegistry(f)
}

// ParseRegistry reads roster CSV rows from r.
func ParseRegistry(r io.Reader) (*Registry, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading roster header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"space_id", "room_name", "gid"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("roster missing column %q", required)
		}
	}

	rooms := make(map[int]models.Room)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster row: %w", err)
		}

		spaceID, err := strconv.Atoi(record[col["space_id"]])
		if err != nil {
			return nil, fmt.Errorf("parsing space_id %q: %w", record[col["space_id"]], err)
		}
		groupID, err := strconv.Atoi(record[col["gid"]])
		if err != nil {
			return nil, fmt.Errorf("parsing gid for room %d: %w", spaceID, err)
		}

		room := models.Room{
			SpaceID: spaceID,
			Name:    record[col["room_name"]],
			GroupID: groupID,
		}
		// Capacity and URL are informational; tolerate their absence.
		if i, ok := col["capacity_found_at"]; ok && i < len(record) {
			room.Capacity, _ = strconv.Atoi(record[i])
		}
		if i, ok := col["url"]; ok && i < len(record) {
			room.URL = record[i]
		}

		rooms[spaceID] = room
	}

	return &Registry{rooms: rooms}, nil
}

// Lookup resolves roster metadata for a room by its space id.
func (r *Registry) Lookup(spaceID int) (models.Room, bool) {
	room, ok := r.rooms[spaceID]
	return room, ok
}

// Rooms returns all roster entries, in map order.
func (r *Registry) Rooms() []models.Room {
	rooms := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// Len returns the number of roster entries.
func (r *Registry) Len() int {
	return len(r.rooms)
}
