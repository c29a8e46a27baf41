package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Channel is the pub/sub channel booking events go out on. Downstream
// consumers (reminder bots, sync jobs) subscribe here.
const Channel = "bookings"

// EventContext is populated by handlers during a mutating request and read
// back by the tracking middleware once the request has finished.
type EventContext struct {
	Resource  string
	Operation string
	OldData   interface{}
	NewData   interface{}
}

// BookingEvent is the wire form of one mutation.
type BookingEvent struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
