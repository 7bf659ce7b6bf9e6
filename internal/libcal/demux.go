package libcal

import (
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// GroupByItem partitions the slots of one grid response by their owning item
// id. A grid query is scoped to a display grid, not a single room, so a
// response routinely carries slots for adjacent rooms beyond the requested
// one; those must be kept and attributed to their own rooms.
//
// Every input slot lands in exactly one group and input order is preserved
// within each group. The returned slice lists the distinct item ids in order
// of first appearance, since map iteration order is not stable.
func GroupByItem(slots []models.RawSlot) (map[int][]models.RawSlot, []int) {
	groups := make(map[int][]models.RawSlot)
	var order []int

	for _, slot := range slots {
		if _, seen := groups[slot.ItemID]; !seen {
			order = append(order, slot.ItemID)
		}
		groups[slot.ItemID] = append(groups[slot.ItemID], slot)
	}

	return groups, order
}
