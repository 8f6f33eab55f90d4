package fluid

import (
	"sync"

	"go.uber.org/zap"
)

// historyCap bounds the event history; the oldest event is evicted first.
const historyCap = 100

// Event is an ephemeral message exchanged between components on one
// dashboard. It never leaves the bus instance that carried it.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type subscriber struct {
	id          int
	componentID string
	fn          func(Event)
}

// Bus is an in-memory publish/subscribe channel scoped to one dashboard
// instance. Scoping one bus per dashboard prevents cross-dashboard event
// leakage; Clear on teardown prevents duplicate handling across remounts.
//
// Delivery is synchronous. A subscriber that emits during its own
// invocation recurses; the bus does not guard against that.
type Bus struct {
	mu      sync.Mutex
	subs    map[string][]subscriber
	nextID  int
	history []Event
	logger  *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:   make(map[string][]subscriber),
		logger: logger,
	}
}

// Subscribe registers a callback for one event type and returns an
// unsubscribe function. Multiple subscribers per type are allowed.
// The componentID is carried for diagnostics only.
func (b *Bus) Subscribe(eventType string, fn func(Event), componentID string) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscriber{
		id:          id,
		componentID: componentID,
		fn:          fn,
	})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[eventType]
		for i, s := range subs {
			if s.id == id {
				b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.subs[eventType]) == 0 {
			delete(b.subs, eventType)
		}
	}
}

// Emit appends the event to the bounded history and synchronously invokes
// every current subscriber for its type. A panicking subscriber is recovered
// and logged so one failing listener cannot starve the others.
func (b *Bus) Emit(event Event) {
	b.mu.Lock()
	b.history = append(b.history, event)
	if len(b.history) > historyCap {
		b.history = b.history[len(b.history)-historyCap:]
	}
	subs := make([]subscriber, len(b.subs[event.Type]))
	copy(subs, b.subs[event.Type])
	b.mu.Unlock()

	for _, s := range subs {
		b.invoke(s, event)
	}
}

func (b *Bus) invoke(s subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("dashboard event subscriber panicked",
				zap.String("eventType", event.Type),
				zap.String("componentId", s.componentID),
				zap.Any("panic", r))
		}
	}()
	s.fn(event)
}

// History returns a copy of the retained events, oldest first
func (b *Bus) History() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}

// SubscriberCount returns the number of live subscriptions for a type
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[eventType])
}

// Clear drops all subscriptions and history. Called on dashboard unmount.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]subscriber)
	b.history = nil
}
