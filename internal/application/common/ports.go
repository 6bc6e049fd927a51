package common

import (
	"context"
	"time"
)

// EventRecord is an event as stored in the event log
type EventRecord struct {
	ID string
	// ShipID is nil for events that concern no ship
	ShipID    *uint32
	Type      string
	Tick      uint64
	Payload   string
	CreatedAt time.Time
}

// EventFilter narrows an event log query. Zero values match everything.
type EventFilter struct {
	ShipID *uint32
	Type   string
	// Limit caps the result to the most recent events, 0 for no cap
	Limit int
}

// EventLogReader reads back the persisted event log
type EventLogReader interface {
	List(ctx context.Context, filter EventFilter) ([]EventRecord, error)
}
