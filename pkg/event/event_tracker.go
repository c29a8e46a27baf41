package event

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isabeauty/agenda-api/pkg/messaging"
)

const contextKey = "eventCtx"

// EventTrackerMiddleware publishes one event per successful mutation. A
// failed publish is logged and dropped; it never affects the request.
type EventTrackerMiddleware struct {
	broker messaging.Broker
}

func NewEventTrackerMiddleware(broker messaging.Broker) *EventTrackerMiddleware {
	return &EventTrackerMiddleware{broker: broker}
}

// FromContext returns the event context set by TrackEvent, if any.
func FromContext(c *gin.Context) *EventContext {
	if v, ok := c.Get(contextKey); ok {
		if ctx, ok := v.(*EventContext); ok {
			return ctx
		}
	}
	return nil
}

func (m *EventTrackerMiddleware) TrackEvent(resource, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventCtx := &EventContext{
			Resource:  resource,
			Operation: operation,
		}
		c.Set(contextKey, eventCtx)

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		data := eventCtx.NewData
		if data == nil {
			data = eventCtx.OldData
		}
		if data == nil {
			return
		}

		payload, err := json.Marshal(data)
		if err != nil {
			log.Warn().Err(err).Str("resource", resource).Msg("failed to marshal event payload")
			return
		}

		evt := &BookingEvent{
			ID:        uuid.New(),
			EventType: fmt.Sprintf("%s_%s", strings.ToUpper(resource), strings.ToUpper(operation)),
			Payload:   payload,
			CreatedAt: time.Now(),
		}

		if err := m.broker.Publish(c.Request.Context(), Channel, evt); err != nil {
			log.Warn().Err(err).Str("event_type", evt.EventType).Msg("failed to publish booking event")
		}
	}
}
