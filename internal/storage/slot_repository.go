package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// SlotRepository provides data access for time slots.
type SlotRepository struct {
	BaseRepository
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *DB) *SlotRepository {
	return &SlotRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ReplaceForDay atomically replaces all slot rows for (spaceID, queryDate)
// with the given normalized set. Delete and insert run in one transaction so
// readers never see a partial day for the room.
func (r *SlotRepository) ReplaceForDay(ctx context.Context, spaceID, groupID int, queryDate string, slots []models.NormalizedSlot) error {
	return r.Transaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM time_slots WHERE space_id = ? AND query_date = ?
		`, spaceID, queryDate)
		if err != nil {
			return fmt.Errorf("deleting slots for room %d on %s: %w", spaceID, queryDate, err)
		}

		for _, slot := range slots {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO time_slots (space_id, gid, start_time, end_time, status, item_id, checksum, query_date)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, spaceID, groupID, slot.Start, slot.End, slot.Status, slot.ItemID, slot.Checksum, queryDate)
			if err != nil {
				return fmt.Errorf("inserting slot for room %d: %w", spaceID, err)
			}
		}

		return nil
	})
}

// ClearRange deletes all slot rows whose query date falls inside the given
// inclusive date range. The orchestrator calls this once at the start of a
// run to reset the run's scope.
func (r *SlotRepository) ClearRange(ctx context.Context, startDate, endDate string) error {
	_, err := r.DB().ExecContext(ctx, `
		DELETE FROM time_slots WHERE query_date BETWEEN ? AND ?
	`, startDate, endDate)
	if err != nil {
		return fmt.Errorf("clearing slots for %s..%s: %w", startDate, endDate, err)
	}

	return nil
}

// ListForDay retrieves all slot rows for one room and query date ordered by
// start time.
func (r *SlotRepository) ListForDay(ctx context.Context, spaceID int, queryDate string) ([]models.TimeSlot, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT id, space_id, gid, start_time, end_time, status, item_id, checksum, query_date
		FROM time_slots
		WHERE space_id = ? AND query_date = ?
		ORDER BY start_time
	`, spaceID, queryDate)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ScheduleRow is one joined slot row for the dashboard's schedule grid.
type ScheduleRow struct {
	SpaceID   int               `json:"space_id"`
	RoomName  string            `json:"room_name"`
	GroupID   int               `json:"gid"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Status    models.SlotStatus `json:"status"`
}

// Schedule retrieves the joined slot rows for one query date ordered by
// space_id then start_time, the dashboard's read contract. A groupID of
// models.UnknownGroupID (0) means no group filter.
func (r *SlotRepository) Schedule(ctx context.Context, queryDate string, groupID int) ([]ScheduleRow, error) {
	query := `
		SELECT ts.space_id, COALESCE(r.name, 'Room ' || ts.space_id), ts.gid,
		       ts.start_time, ts.end_time, ts.status
		FROM time_slots ts
		LEFT JOIN rooms r ON ts.space_id = r.space_id
		WHERE ts.query_date = ?
	`
	args := []any{queryDate}
	if groupID != models.UnknownGroupID {
		query += " AND ts.gid = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY ts.space_id, ts.start_time"

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}
	defer rows.Close()

	var schedule []ScheduleRow
	for rows.Next() {
		var row ScheduleRow
		if err := rows.Scan(
			&row.SpaceID, &row.RoomName, &row.GroupID,
			&row.StartTime, &row.EndTime, &row.Status,
		); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		schedule = append(schedule, row)
	}

	return schedule, rows.Err()
}

// DateCount is the number of persisted slots for one query date.
type DateCount struct {
	QueryDate string `json:"query_date"`
	SlotCount int    `json:"slot_count"`
}

// ListDates retrieves the distinct query dates present in the store with
// their slot counts, oldest first.
func (r *SlotRepository) ListDates(ctx context.Context) ([]DateCount, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT query_date, COUNT(*)
		FROM time_slots
		GROUP BY query_date
		ORDER BY query_date
	`)
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	var dates []DateCount
	for rows.Next() {
		var d DateCount
		if err := rows.Scan(&d.QueryDate, &d.SlotCount); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// CountByStatus returns the number of slot rows with the given status.
func (r *SlotRepository) CountByStatus(ctx context.Context, status models.SlotStatus) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM time_slots WHERE status = ?
	`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting %s slots: %w", status, err)
	}
	return count, nil
}

// Count returns the total number of slot rows.
func (r *SlotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM time_slots").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting slots: %w", err)
	}
	return count, nil
}

func scanSlots(rows *sql.Rows) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(
			&slot.ID, &slot.SpaceID, &slot.GroupID, &slot.StartTime, &slot.EndTime,
			&slot.Status, &slot.ItemID, &slot.Checksum, &slot.QueryDate,
		); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}
