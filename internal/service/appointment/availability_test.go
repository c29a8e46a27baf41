package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isabeauty/agenda-api/internal/model"
)

func booked(date string, slots ...string) []*model.Appointment {
	records := make([]*model.Appointment, 0, len(slots))
	for i, slot := range slots {
		records = append(records, &model.Appointment{
			ID:   int64(i + 1),
			Date: date,
			Time: slot,
		})
	}
	return records
}

func TestIsSlotFree(t *testing.T) {
	records := booked("2025-03-10", "10:00")

	assert.False(t, IsSlotFree(records, "2025-03-10", "10:00"))
	assert.True(t, IsSlotFree(records, "2025-03-10", "11:00"))
	assert.True(t, IsSlotFree(records, "2025-03-11", "10:00"))
	assert.True(t, IsSlotFree(nil, "2025-03-10", "10:00"))
}

func TestAvailableSlots(t *testing.T) {
	records := booked("2025-03-10", "10:00")

	slots := AvailableSlots(records, "2025-03-10", model.Slots(), "")
	assert.Len(t, slots, 8)
	assert.NotContains(t, slots, "10:00")
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])
}

func TestAvailableSlotsFullyBooked(t *testing.T) {
	records := booked("2025-03-10", model.Slots()...)

	assert.Empty(t, AvailableSlots(records, "2025-03-10", model.Slots(), ""))

	// The edit flow keeps offering the booking's current slot.
	slots := AvailableSlots(records, "2025-03-10", model.Slots(), "13:00")
	assert.Equal(t, []string{"13:00"}, slots)
}

func TestAvailableSlotsOtherDateUnaffected(t *testing.T) {
	records := booked("2025-03-10", model.Slots()...)
	assert.Len(t, AvailableSlots(records, "2025-03-11", model.Slots(), ""), 9)
}
