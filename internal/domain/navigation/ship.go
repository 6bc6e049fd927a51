package navigation

import (
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// ShipSpec holds the static attributes of a ship, fixed at spawn
type ShipSpec struct {
	MaxSpeed         int
	MaxInventorySize int
	MaxCargoSize     int
	MaxEnergy        int
	MaxHealth        int
	RechargeRate     int
}

// DefaultShipSpec is what a ship gets when nothing is configured
func DefaultShipSpec() ShipSpec {
	return ShipSpec{
		MaxSpeed:         1000,
		MaxInventorySize: 4,
		MaxCargoSize:     4,
		MaxEnergy:        100,
		MaxHealth:        100,
		RechargeRate:     10,
	}
}

func (s ShipSpec) validate() error {
	switch {
	case s.MaxSpeed <= 0:
		return fmt.Errorf("max_speed must be positive")
	case s.MaxInventorySize < 0 || s.MaxCargoSize < 0:
		return fmt.Errorf("inventory and cargo sizes cannot be negative")
	case s.MaxEnergy < 0 || s.MaxHealth < 0:
		return fmt.Errorf("max_energy and max_health cannot be negative")
	case s.RechargeRate < 0:
		return fmt.Errorf("recharge_rate cannot be negative")
	}
	return nil
}

// Ship entity - an autonomous ship on the hex grid
//
// Invariants:
// - Static attributes (spec, owner, name) never change after spawn
// - 0 <= Energy <= MaxEnergy
// - Position lies inside the grid it was spawned on
// - Only the order queue head carries a start tick
//
// A ship is changed only by placing orders, dropping orders and settlement.
type Ship struct {
	id    uint32
	name  string
	owner shared.Identity
	spec  ShipSpec

	position     hexgrid.Position
	energy       int
	health       int
	inventory    *inventory.Inventory
	cargo        *inventory.Inventory
	orders       *OrderQueue
	lastRecharge shared.Tick
}

// SpawnShip creates a ship with empty holds at the given position.
// Energy and health are clamped to the spec's maxima.
func SpawnShip(
	id uint32,
	name string,
	owner shared.Identity,
	spec ShipSpec,
	position hexgrid.Position,
	energy int,
	health int,
	now shared.Tick,
) (*Ship, error) {
	if owner.IsZero() {
		return nil, shared.NewValidationError("owner", "ship owner cannot be empty")
	}
	if err := spec.validate(); err != nil {
		return nil, shared.NewValidationError("spec", err.Error())
	}
	return &Ship{
		id:           id,
		name:         name,
		owner:        owner,
		spec:         spec,
		position:     position,
		energy:       clamp(energy, spec.MaxEnergy),
		health:       clamp(health, spec.MaxHealth),
		inventory:    inventory.New(spec.MaxInventorySize),
		cargo:        inventory.New(spec.MaxCargoSize),
		orders:       NewOrderQueue(),
		lastRecharge: now,
	}, nil
}

// ShipState is the dynamic part of a ship as persisted
type ShipState struct {
	Position     hexgrid.Position
	Energy       int
	Health       int
	Inventory    *inventory.Inventory
	Cargo        *inventory.Inventory
	Orders       *OrderQueue
	LastRecharge shared.Tick
}

// ReconstructShip rebuilds a ship from persistence without spawn defaults
func ReconstructShip(id uint32, name string, owner shared.Identity, spec ShipSpec, state ShipState) *Ship {
	s := &Ship{
		id:           id,
		name:         name,
		owner:        owner,
		spec:         spec,
		position:     state.Position,
		energy:       clamp(state.Energy, spec.MaxEnergy),
		health:       state.Health,
		inventory:    state.Inventory,
		cargo:        state.Cargo,
		orders:       state.Orders,
		lastRecharge: state.LastRecharge,
	}
	if s.inventory == nil {
		s.inventory = inventory.New(spec.MaxInventorySize)
	}
	if s.cargo == nil {
		s.cargo = inventory.New(spec.MaxCargoSize)
	}
	if s.orders == nil {
		s.orders = NewOrderQueue()
	}
	return s
}

// Getters

func (s *Ship) ID() uint32                      { return s.id }
func (s *Ship) Name() string                    { return s.name }
func (s *Ship) Owner() shared.Identity          { return s.owner }
func (s *Ship) Spec() ShipSpec                  { return s.spec }
func (s *Ship) MaxSpeed() int                   { return s.spec.MaxSpeed }
func (s *Ship) MaxEnergy() int                  { return s.spec.MaxEnergy }
func (s *Ship) RechargeRate() int               { return s.spec.RechargeRate }
func (s *Ship) Position() hexgrid.Position      { return s.position }
func (s *Ship) Energy() int                     { return s.energy }
func (s *Ship) Health() int                     { return s.health }
func (s *Ship) Inventory() *inventory.Inventory { return s.inventory }
func (s *Ship) Cargo() *inventory.Inventory     { return s.cargo }
func (s *Ship) Orders() *OrderQueue             { return s.orders }
func (s *Ship) LastRecharge() shared.Tick       { return s.lastRecharge }

// IsOwnedBy checks ownership
func (s *Ship) IsOwnedBy(caller shared.Identity) bool {
	return s.owner.Equals(caller)
}

// PlaceOrder validates nothing: callers run ValidateMove/ValidateMine first
func (s *Ship) PlaceOrder(order Order, now shared.Tick) {
	s.orders.Enqueue(order, now)
}

// DropOrder removes the order at index. When restampHead is set and the head
// was removed, the new head starts at now.
func (s *Ship) DropOrder(index int, restampHead bool, now shared.Tick) (Order, error) {
	removed, err := s.orders.Remove(index)
	if err != nil {
		return nil, err
	}
	if index == 0 && restampHead {
		s.orders.RestampHead(now)
	}
	return removed, nil
}

// ApplyRecharge sets the recharged energy and records the settlement tick
func (s *Ship) ApplyRecharge(energy int, now shared.Tick) {
	s.energy = clamp(energy, s.spec.MaxEnergy)
	s.lastRecharge = now
}

// SpendEnergy deducts energy, refusing to go below zero
func (s *Ship) SpendEnergy(amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot spend negative energy %d", amount)
	}
	if amount > s.energy {
		return shared.NewInsufficientEnergyError(amount, s.energy)
	}
	s.energy -= amount
	return nil
}

// MoveTo places the ship on an already wrapped position
func (s *Ship) MoveTo(p hexgrid.Position) {
	s.position = p
}

// ReceiveCargo adds an item to the cargo hold
func (s *Ship) ReceiveCargo(item inventory.Item) error {
	return s.cargo.AddItem(item)
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(%d, owner=%s, pos=%s, energy=%d/%d, orders=%d)",
		s.id, s.owner, s.position, s.energy, s.spec.MaxEnergy, s.orders.Len())
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < 0 {
		return 0
	}
	return v
}
