// Package kafka publishes post-computation audit events.  Publishing is
// strictly best-effort: the computation result never depends on the broker.
package kafka

import (
	"encoding/json"
	"time"
)

// Topic constants.
const (
	TopicPrazoComputed   = "prazo.computed"
	TopicCalendarUpdated = "prazo.calendar.updated"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}
