package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// MockShipRepository is an in-memory implementation of ShipRepository for testing.
// It stores snapshots, so mutating a loaded ship has no effect until Save.
type MockShipRepository struct {
	mu    sync.Mutex
	ships map[uint32]*navigation.Ship
	order []uint32

	// SaveErr, when set, is returned by every Save
	SaveErr   error
	SaveCalls int
}

var _ navigation.ShipRepository = (*MockShipRepository)(nil)

// NewMockShipRepository creates a new mock ship repository
func NewMockShipRepository() *MockShipRepository {
	return &MockShipRepository{ships: make(map[uint32]*navigation.Ship)}
}

func (m *MockShipRepository) FindByID(ctx context.Context, id uint32) (*navigation.Ship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ship, exists := m.ships[id]
	if !exists {
		return nil, shared.NewShipNotFoundError(id)
	}
	return CloneShip(ship), nil
}

func (m *MockShipRepository) Add(ctx context.Context, ship *navigation.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.ships[ship.ID()]; exists {
		return shared.NewShipAlreadyExistsError(ship.ID())
	}
	m.ships[ship.ID()] = CloneShip(ship)
	m.order = append(m.order, ship.ID())
	return nil
}

func (m *MockShipRepository) Save(ctx context.Context, ship *navigation.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, exists := m.ships[ship.ID()]; !exists {
		return shared.NewShipNotFoundError(ship.ID())
	}
	m.ships[ship.ID()] = CloneShip(ship)
	return nil
}

func (m *MockShipRepository) ListIDs(ctx context.Context) ([]uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]uint32(nil), m.order...), nil
}

// Stored returns the stored snapshot without copying, for assertions
func (m *MockShipRepository) Stored(id uint32) *navigation.Ship {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ships[id]
}

// CloneShip deep-copies a ship through its persisted shape
func CloneShip(s *navigation.Ship) *navigation.Ship {
	spec := s.Spec()
	return navigation.ReconstructShip(s.ID(), s.Name(), s.Owner(), spec, navigation.ShipState{
		Position:     s.Position(),
		Energy:       s.Energy(),
		Health:       s.Health(),
		Inventory:    inventory.Restore(spec.MaxInventorySize, s.Inventory().Items()),
		Cargo:        inventory.Restore(spec.MaxCargoSize, s.Cargo().Items()),
		Orders:       navigation.RestoreOrderQueue(s.Orders().Orders()),
		LastRecharge: s.LastRecharge(),
	})
}
