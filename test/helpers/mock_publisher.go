package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

// MockPublisher records every published event
type MockPublisher struct {
	mu     sync.Mutex
	events []navigation.Event
}

var _ navigation.EventPublisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (p *MockPublisher) Publish(ctx context.Context, events ...navigation.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

// Events returns a copy of everything published so far
func (p *MockPublisher) Events() []navigation.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]navigation.Event(nil), p.events...)
}

// Types returns the type of every published event, in order
func (p *MockPublisher) Types() []navigation.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]navigation.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type()
	}
	return types
}

// Reset forgets recorded events
func (p *MockPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
