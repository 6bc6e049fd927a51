package daemon

import (
	"context"
	"sync"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/ship"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

// EventRelay drains the event bus firehose while the daemon runs. Every
// event is logged at debug level and counted, per type, in the
// events_total metric and in Counts.
type EventRelay struct {
	bus *ship.ShipEventBus

	mu     sync.Mutex
	counts map[navigation.EventType]int
}

func NewEventRelay(bus *ship.ShipEventBus) *EventRelay {
	return &EventRelay{bus: bus, counts: make(map[navigation.EventType]int)}
}

// Start subscribes before returning, so no event published after Start is
// missed. The returned channel closes once ctx is done and the buffered
// events have been handled.
func (r *EventRelay) Start(ctx context.Context) <-chan struct{} {
	events := r.bus.SubscribeAll()
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer r.bus.UnsubscribeAll(events)

		for {
			select {
			case event := <-events:
				r.handle(ctx, event)
			case <-ctx.Done():
				r.drain(ctx, events)
				return
			}
		}
	}()
	return done
}

func (r *EventRelay) drain(ctx context.Context, events <-chan navigation.Event) {
	for {
		select {
		case event := <-events:
			r.handle(ctx, event)
		default:
			return
		}
	}
}

func (r *EventRelay) handle(ctx context.Context, event navigation.Event) {
	r.mu.Lock()
	r.counts[event.Type()]++
	r.mu.Unlock()

	metrics.RecordEvent(string(event.Type()))

	fields := map[string]interface{}{
		"type": string(event.Type()),
		"tick": uint64(event.At()),
	}
	if id, ok := navigation.ShipOf(event); ok {
		fields["ship_id"] = id
	}
	logging.LoggerFromContext(ctx).Log(logging.LevelDebug, "Event", fields)
}

// Counts returns how many events of each type have been relayed
func (r *EventRelay) Counts() map[navigation.EventType]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[navigation.EventType]int, len(r.counts))
	for t, n := range r.counts {
		out[t] = n
	}
	return out
}

// Total returns the number of events relayed so far
func (r *EventRelay) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}
