package navigation

import "context"

// ShipRepository defines persistence operations for ships
type ShipRepository interface {
	// FindByID returns shared.ErrShipNotFound (wrapped) when the ship does not exist
	FindByID(ctx context.Context, id uint32) (*Ship, error)
	// Add stores a newly spawned ship; shared.ErrAlreadyExists if the id is taken
	Add(ctx context.Context, ship *Ship) error
	// Save overwrites the dynamic state of an existing ship
	Save(ctx context.Context, ship *Ship) error
	// ListIDs returns every ship id in spawn order
	ListIDs(ctx context.Context) ([]uint32, error)
}

// EventPublisher is a fire-and-forget sink for events.
// Implementations must not block settlement and must not fail it.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event)
}
