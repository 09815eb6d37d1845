package bus

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single delivery of a payload on a topic.
type Event struct {
	Topic    Topic
	Payload  Payload
	Metadata Metadata
}

// Metadata identifies an emission.
type Metadata struct {
	// ID is unique per emission.
	ID string

	// Sequence increases by one per emission on the same bus.
	Sequence uint64

	// Timestamp is when Emit was called.
	Timestamp time.Time

	// Source is the tag the emitter passed to Emit.
	Source string
}

// Source is shorthand for e.Metadata.Source.
func (e Event) Source() string {
	return e.Metadata.Source
}

func newEvent(topic Topic, payload Payload, source string, seq uint64, now time.Time) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Sequence:  seq,
			Timestamp: now,
			Source:    source,
		},
	}
}
