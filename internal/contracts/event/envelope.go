package event

import "time"

const (
	Version  = 1
	Producer = "blackout-api"
)

// Envelope is the stable contract for every domain event this service
// emits. Consumers rely on version/producer/message_id/occurred_at plus the
// payload; message_id stays stable across redeliveries.
type Envelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}
