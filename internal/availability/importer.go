package availability

import (
	"context"
	"fmt"
	"log"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage"
)

// ImportRoster replaces the rooms table with the roster's contents. Run once
// at startup; rooms discovered later as bonus data are upserted
// individually by the batch orchestrator.
func ImportRoster(ctx context.Context, registry *Registry, roomRepo *storage.RoomRepository) error {
	if registry.Len() == 0 {
		return fmt.Errorf("roster is empty")
	}

	if err := roomRepo.ReplaceAll(ctx, registry.Rooms()); err != nil {
		return fmt.Errorf("importing roster: %w", err)
	}

	log.Printf("Imported %d rooms from roster", registry.Len())
	return nil
}
