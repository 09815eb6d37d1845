package bus

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/status"
)

// Listener receives events for the topic it was registered on. A returned
// error is logged and counted but does not stop delivery.
type Listener func(evt Event) error

type registration struct {
	source   string
	listener Listener
}

// Bus delivers task lifecycle events to registered listeners.
type Bus struct {
	mu        sync.Mutex
	listeners map[Topic][]*registration
	emitted   map[Topic]uint64
	sequence  uint64
	delivered uint64
	failures  uint64

	resolver status.Resolver
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option configures a Bus.
type Option func(*Bus)

// WithResolver sets the resolver used by the task emitters. Defaults to
// status.Default(); a nil resolver keeps the default.
func WithResolver(r status.Resolver) Option {
	return func(b *Bus) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithLogger sets where listener failures are logged. Defaults to the
// operational log.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Bus) {
		b.log = l
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[Topic][]*registration),
		emitted:   make(map[Topic]uint64),
		resolver:  status.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Op()
	}
	return b
}

// Resolver returns the resolver the task emitters use.
func (b *Bus) Resolver() status.Resolver {
	return b.resolver
}

// On registers listener for topic under source. An existing registration for
// the same (topic, source) is replaced and keeps its place in delivery order.
func (b *Bus) On(topic Topic, source string, listener Listener) error {
	if !topic.Valid() {
		return boarderrors.NewUnknownTopicError(string(topic))
	}
	if listener == nil {
		return boarderrors.NewValidationFailedError("listener", "nil", "Listener registration").
			WithContext("topic", string(topic)).
			WithContext("source", source)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, reg := range b.listeners[topic] {
		if reg.source == source {
			reg.listener = listener
			return nil
		}
	}
	b.listeners[topic] = append(b.listeners[topic], &registration{source: source, listener: listener})
	return nil
}

// Off removes the registration for (topic, source). It reports whether one
// existed.
func (b *Bus) Off(topic Topic, source string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.listeners[topic]
	for i, reg := range regs {
		if reg.source != source {
			continue
		}
		regs = append(regs[:i:i], regs[i+1:]...)
		if len(regs) == 0 {
			delete(b.listeners, topic)
		} else {
			b.listeners[topic] = regs
		}
		return true
	}
	return false
}

// OffAll removes every registration made under source and returns how many
// were removed.
func (b *Bus) OffAll(source string) int {
	removed := 0
	for _, topic := range Topics {
		if b.Off(topic, source) {
			removed++
		}
	}
	return removed
}

// Emit delivers payload to every listener on topic, in registration order.
// It fails only when topic is unknown or payload belongs to another topic;
// listener failures are absorbed. Registrations changed by a listener take
// effect from the next emission.
func (b *Bus) Emit(topic Topic, payload Payload, source string) error {
	if !topic.Valid() {
		return boarderrors.NewUnknownTopicError(string(topic))
	}
	if payload == nil {
		return boarderrors.NewPayloadMismatchError(string(topic), "nil")
	}
	if payload.Topic() != topic {
		return boarderrors.NewPayloadMismatchError(string(topic), string(payload.Topic()))
	}

	b.mu.Lock()
	b.sequence++
	b.emitted[topic]++
	evt := newEvent(topic, payload, source, b.sequence, b.now())
	regs := make([]registration, 0, len(b.listeners[topic]))
	for _, reg := range b.listeners[topic] {
		regs = append(regs, *reg)
	}
	b.mu.Unlock()

	for _, reg := range regs {
		err := b.deliver(reg, evt)

		b.mu.Lock()
		b.delivered++
		if err != nil {
			b.failures++
		}
		b.mu.Unlock()

		if err != nil {
			b.log.WithFields(logrus.Fields{
				"topic":    string(topic),
				"source":   reg.source,
				"emitter":  source,
				"event_id": evt.Metadata.ID,
				"error":    boarderrors.DisplayErrorSummary(err),
			}).Warn("listener failed, continuing delivery")
		}
	}
	return nil
}

func (b *Bus) deliver(reg registration, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = boarderrors.NewListenerPanicError(string(evt.Topic), reg.source, r)
		}
	}()

	if lerr := reg.listener(evt); lerr != nil {
		return boarderrors.NewListenerFailureError(string(evt.Topic), reg.source, lerr)
	}
	return nil
}

// Sources returns the sources registered on topic, in delivery order.
func (b *Bus) Sources(topic Topic) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	sources := make([]string, 0, len(b.listeners[topic]))
	for _, reg := range b.listeners[topic] {
		sources = append(sources, reg.source)
	}
	return sources
}

func (b *Bus) String() string {
	s := b.Stats()
	return fmt.Sprintf("bus(topics=%d listeners=%d emitted=%d)", s.Topics, s.Listeners, s.TotalEmitted())
}
