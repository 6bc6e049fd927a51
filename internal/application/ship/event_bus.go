package ship

import (
	"context"
	"sync"

	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

// ShipEventBus provides in-process pub/sub for ship events.
// Thread-safe, supports multiple subscribers per ship.
// Sends never block: a subscriber whose buffer is full misses the event.
type ShipEventBus struct {
	mu sync.RWMutex
	// subscribers[shipID] = []channels
	subscribers map[uint32][]chan navigation.Event
	// firehose receives every event, site events included
	firehose   []chan navigation.Event
	bufferSize int
}

var _ navigation.EventPublisher = (*ShipEventBus)(nil)

// NewShipEventBus creates a bus whose subscription channels hold bufferSize events
func NewShipEventBus(bufferSize int) *ShipEventBus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &ShipEventBus{
		subscribers: make(map[uint32][]chan navigation.Event),
		bufferSize:  bufferSize,
	}
}

// Publish delivers events to the firehose and to the subscribers of the ship
// each event concerns
func (b *ShipEventBus) Publish(_ context.Context, events ...navigation.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, event := range events {
		b.deliver(b.firehose, event)
		if id, ok := navigation.ShipOf(event); ok {
			b.deliver(b.subscribers[id], event)
		}
	}
}

func (b *ShipEventBus) deliver(channels []chan navigation.Event, event navigation.Event) {
	for _, ch := range channels {
		select {
		case ch <- event:
		default:
			// Subscriber is slow; drop rather than block settlement
		}
	}
}

// Subscribe returns a channel receiving events for shipID.
// Caller must Unsubscribe when done.
func (b *ShipEventBus) Subscribe(shipID uint32) <-chan navigation.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan navigation.Event, b.bufferSize)
	b.subscribers[shipID] = append(b.subscribers[shipID], ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel
func (b *ShipEventBus) Unsubscribe(shipID uint32, ch <-chan navigation.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channels := b.subscribers[shipID]
	for i, c := range channels {
		if c == ch {
			close(c)
			channels[i] = channels[len(channels)-1]
			b.subscribers[shipID] = channels[:len(channels)-1]
			break
		}
	}
	if len(b.subscribers[shipID]) == 0 {
		delete(b.subscribers, shipID)
	}
}

// SubscribeAll returns a channel receiving every event.
// Caller must UnsubscribeAll when done.
func (b *ShipEventBus) SubscribeAll() <-chan navigation.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan navigation.Event, b.bufferSize)
	b.firehose = append(b.firehose, ch)
	return ch
}

// UnsubscribeAll removes a firehose subscription and closes its channel
func (b *ShipEventBus) UnsubscribeAll(ch <-chan navigation.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.firehose {
		if c == ch {
			close(c)
			b.firehose[i] = b.firehose[len(b.firehose)-1]
			b.firehose = b.firehose[:len(b.firehose)-1]
			return
		}
	}
}

// SubscriberCount returns the number of subscribers for shipID
func (b *ShipEventBus) SubscriberCount(shipID uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[shipID])
}

// MultiPublisher fans events out to several publishers in order
type MultiPublisher []navigation.EventPublisher

var _ navigation.EventPublisher = MultiPublisher(nil)

func (m MultiPublisher) Publish(ctx context.Context, events ...navigation.Event) {
	if len(events) == 0 {
		return
	}
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, events...)
		}
	}
}

// NoOpPublisher discards every event
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(context.Context, ...navigation.Event) {}
