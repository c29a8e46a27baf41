package repository

import (
	"github.com/isabeauty/agenda-api/internal/model"
)

// AppointmentRepository is the record store: an ordered in-memory collection
// of appointments mirrored wholesale to a persistent resource. The list
// operations are purely in-memory; callers decide when to Save, and a failed
// Save leaves the in-memory mutation in place.
type AppointmentRepository interface {
	// Load reads the persisted collection into memory. An absent resource is
	// not an error and yields an empty collection.
	Load() ([]*model.Appointment, error)
	// Save rewrites the persisted resource with the full collection.
	Save() error

	List() []*model.Appointment
	Len() int
	At(index int) (*model.Appointment, bool)
	Append(apt *model.Appointment)
	ReplaceAt(index int, apt *model.Appointment) error
	RemoveAt(index int) (*model.Appointment, error)

	// MaxID returns the highest assigned appointment ID, 0 when empty.
	MaxID() int64
}
