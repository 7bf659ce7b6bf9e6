package libcal

import (
	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

// CheckoutClass is the className the grid attaches to a slot that is already
// booked. Any other value, or no className at all, means the slot is open.
const CheckoutClass = "s-lc-eq-checkout"

// Classify maps one raw grid slot to its normalized form. Pure and total: a
// slot is unavailable iff its className equals CheckoutClass, and a missing
// checksum normalizes to the empty string.
func Classify(raw models.RawSlot) models.NormalizedSlot {
	status := models.StatusAvailable
	if raw.ClassName == CheckoutClass {
		status = models.StatusUnavailable
	}

	return models.NormalizedSlot{
		Start:    raw.Start,
		End:      raw.End,
		ItemID:   raw.ItemID,
		Checksum: raw.Checksum,
		Status:   status,
	}
}

// ClassifyAll maps a slice of raw slots, preserving order.
func ClassifyAll(raw []models.RawSlot) []models.NormalizedSlot {
	slots := make([]models.NormalizedSlot, len(raw))
	for i, r := range raw {
		slots[i] = Classify(r)
	}
	return slots
}
