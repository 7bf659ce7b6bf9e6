package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// RoomRepository provides data access for rooms.
type RoomRepository struct {
	BaseRepository
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Upsert inserts or replaces a room keyed by its space ID. Idempotent.
func (r *RoomRepository) Upsert(ctx context.Context, room *models.Room) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT OR REPLACE INTO rooms (space_id, name, capacity, gid, url)
		VALUES (?, ?, ?, ?, ?)
	`,
		room.SpaceID, room.Name, room.Capacity, room.GroupID, room.URL,
	)
	if err != nil {
		return fmt.Errorf("upserting room %d: %w", room.SpaceID, err)
	}

	return nil
}

// GetBySpaceID retrieves a room by its space ID. Returns nil if not found.
func (r *RoomRepository) GetBySpaceID(ctx context.Context, spaceID int) (*models.Room, error) {
	room := &models.Room{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT space_id, name, capacity, gid, url, created_at
		FROM rooms WHERE space_id = ?
	`, spaceID).Scan(
		&room.SpaceID, &room.Name, &room.Capacity, &room.GroupID, &room.URL, &room.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying room: %w", err)
	}

	return room, nil
}

// List retrieves all rooms ordered by space ID, the order the batch
// orchestrator and the dashboard both iterate in.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	return r.list(ctx, `
		SELECT space_id, name, capacity, gid, url, created_at
		FROM rooms
		ORDER BY space_id
	`)
}

// ListByGroup retrieves the rooms in one group ordered by space ID.
func (r *RoomRepository) ListByGroup(ctx context.Context, groupID int) ([]models.Room, error) {
	return r.list(ctx, `
		SELECT space_id, name, capacity, gid, url, created_at
		FROM rooms
		WHERE gid = ?
		ORDER BY space_id
	`, groupID)
}

func (r *RoomRepository) list(ctx context.Context, query string, args ...any) ([]models.Room, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.SpaceID, &room.Name, &room.Capacity, &room.GroupID, &room.URL, &room.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// ReplaceAll clears the rooms table and inserts the given set, in one
// transaction. Used by the roster bootstrap import.
func (r *RoomRepository) ReplaceAll(ctx context.Context, rooms []models.Room) error {
	return r.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM rooms"); err != nil {
			return fmt.Errorf("clearing rooms: %w", err)
		}

		for _, room := range rooms {
			_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO rooms (space_id, name, capacity, gid, url)
				VALUES (?, ?, ?, ?, ?)
			`, room.SpaceID, room.Name, room.Capacity, room.GroupID, room.URL)
			if err != nil {
				return fmt.Errorf("inserting room %d: %w", room.SpaceID, err)
			}
		}

		return nil
	})
}

// Count returns the number of rooms.
func (r *RoomRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rooms: %w", err)
	}
	return count, nil
}
