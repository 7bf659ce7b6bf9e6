package storage

import (
	"context"
	"testing"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

func normalized(itemID int, start, end string, status models.SlotStatus) models.NormalizedSlot {
	return models.NormalizedSlot{Start: start, End: end, ItemID: itemID, Status: status}
}

func TestReplaceForDayReplacesCompletely(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	first := []models.NormalizedSlot{
		normalized(10, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusAvailable),
		normalized(10, "2026-09-01 08:30:00", "2026-09-01 09:00:00", models.StatusUnavailable),
		normalized(10, "2026-09-01 09:00:00", "2026-09-01 09:30:00", models.StatusAvailable),
	}
	if err := repo.ReplaceForDay(ctx, 10, 7314, "2026-09-01", first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []models.NormalizedSlot{
		normalized(10, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusUnavailable),
	}
	if err := repo.ReplaceForDay(ctx, 10, 7314, "2026-09-01", second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := repo.ListForDay(ctx, 10, "2026-09-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("slot count = %d, want 1 (no accumulation of stale rows)", len(got))
	}
	if got[0].Status != models.StatusUnavailable || got[0].QueryDate != "2026-09-01" {
		t.Errorf("unexpected row: %+v", got[0])
	}
}

func TestReplaceForDayScopedToRoomAndDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	seed := []models.NormalizedSlot{normalized(20, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusAvailable)}
	if err := repo.ReplaceForDay(ctx, 20, 1, "2026-09-01", seed); err != nil {
		t.Fatalf("seeding room 20: %v", err)
	}
	otherDay := []models.NormalizedSlot{normalized(10, "2026-09-02 08:00:00", "2026-09-02 08:30:00", models.StatusAvailable)}
	if err := repo.ReplaceForDay(ctx, 10, 1, "2026-09-02", otherDay); err != nil {
		t.Fatalf("seeding other day: %v", err)
	}

	if err := repo.ReplaceForDay(ctx, 10, 1, "2026-09-01", nil); err != nil {
		t.Fatalf("replace with empty set: %v", err)
	}

	if got, _ := repo.ListForDay(ctx, 20, "2026-09-01"); len(got) != 1 {
		t.Errorf("room 20 rows disturbed: %+v", got)
	}
	if got, _ := repo.ListForDay(ctx, 10, "2026-09-02"); len(got) != 1 {
		t.Errorf("other-day rows disturbed: %+v", got)
	}
	if got, _ := repo.ListForDay(ctx, 10, "2026-09-01"); len(got) != 0 {
		t.Errorf("expected empty day, got %+v", got)
	}
}

func TestClearRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	for _, day := range []string{"2026-08-31", "2026-09-01", "2026-09-02", "2026-09-05"} {
		slots := []models.NormalizedSlot{normalized(10, day+" 08:00:00", day+" 08:30:00", models.StatusAvailable)}
		if err := repo.ReplaceForDay(ctx, 10, 1, day, slots); err != nil {
			t.Fatalf("seeding %s: %v", day, err)
		}
	}

	if err := repo.ClearRange(ctx, "2026-09-01", "2026-09-02"); err != nil {
		t.Fatalf("clear range: %v", err)
	}

	dates, err := repo.ListDates(ctx)
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if len(dates) != 2 || dates[0].QueryDate != "2026-08-31" || dates[1].QueryDate != "2026-09-05" {
		t.Errorf("dates after clear = %+v, want 2026-08-31 and 2026-09-05 only", dates)
	}
}

func TestScheduleOrderingAndGroupFilter(t *testing.T) {
	db := newTestDB(t)
	slotRepo := NewSlotRepository(db)
	roomRepo := NewRoomRepository(db)
	ctx := context.Background()

	if err := roomRepo.Upsert(ctx, &models.Room{SpaceID: 10, Name: "GSR A", GroupID: 7314}); err != nil {
		t.Fatalf("upsert room: %v", err)
	}

	roomTen := []models.NormalizedSlot{
		normalized(10, "2026-09-01 09:00:00", "2026-09-01 09:30:00", models.StatusAvailable),
		normalized(10, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusUnavailable),
	}
	if err := slotRepo.ReplaceForDay(ctx, 10, 7314, "2026-09-01", roomTen); err != nil {
		t.Fatalf("replace room 10: %v", err)
	}
	// Room 5 has no rooms row (bonus room without roster entry).
	roomFive := []models.NormalizedSlot{normalized(5, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusAvailable)}
	if err := slotRepo.ReplaceForDay(ctx, 5, models.UnknownGroupID, "2026-09-01", roomFive); err != nil {
		t.Fatalf("replace room 5: %v", err)
	}

	rows, err := slotRepo.Schedule(ctx, "2026-09-01", 0)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}
	// Ordered by space_id, then start_time.
	if rows[0].SpaceID != 5 || rows[1].SpaceID != 10 || rows[2].SpaceID != 10 {
		t.Errorf("space ordering wrong: %+v", rows)
	}
	if rows[1].StartTime != "2026-09-01 08:00:00" {
		t.Errorf("start_time ordering wrong: %+v", rows[1])
	}
	// Unknown room falls back to a generated display name.
	if rows[0].RoomName != "Room 5" {
		t.Errorf("fallback name = %q, want %q", rows[0].RoomName, "Room 5")
	}

	filtered, err := slotRepo.Schedule(ctx, "2026-09-01", 7314)
	if err != nil {
		t.Fatalf("filtered schedule: %v", err)
	}
	if len(filtered) != 2 || filtered[0].SpaceID != 10 {
		t.Errorf("group filter wrong: %+v", filtered)
	}
}

func TestStatusCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	slots := []models.NormalizedSlot{
		normalized(10, "2026-09-01 08:00:00", "2026-09-01 08:30:00", models.StatusAvailable),
		normalized(10, "2026-09-01 08:30:00", "2026-09-01 09:00:00", models.StatusAvailable),
		normalized(10, "2026-09-01 09:00:00", "2026-09-01 09:30:00", models.StatusUnavailable),
	}
	if err := repo.ReplaceForDay(ctx, 10, 1, "2026-09-01", slots); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if n, _ := repo.CountByStatus(ctx, models.StatusAvailable); n != 2 {
		t.Errorf("available count = %d, want 2", n)
	}
	if n, _ := repo.CountByStatus(ctx, models.StatusUnavailable); n != 1 {
		t.Errorf("unavailable count = %d, want 1", n)
	}
	if n, _ := repo.Count(ctx); n != 3 {
		t.Errorf("total count = %d, want 3", n)
	}
}
