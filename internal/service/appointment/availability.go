package appointment

import (
	"github.com/isabeauty/agenda-api/internal/model"
)

// IsSlotFree reports whether no booking occupies (date, slot). Comparison is
// exact string equality on both fields.
func IsSlotFree(records []*model.Appointment, date, slot string) bool {
	for _, r := range records {
		if r.Date == date && r.Time == slot {
			return false
		}
	}
	return true
}

// AvailableSlots returns every candidate slot that is free on the given
// date, in the candidate order. keepSlot, when non-empty, is always included
// so an edit form can keep offering the booking's current slot.
func AvailableSlots(records []*model.Appointment, date string, candidates []string, keepSlot string) []string {
	available := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if slot == keepSlot || IsSlotFree(records, date, slot) {
			available = append(available, slot)
		}
	}
	return available
}
