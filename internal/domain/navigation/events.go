package navigation

import (
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// EventType names an event for the event log
type EventType string

const (
	EventShipSpawned     EventType = "SHIP_SPAWNED"
	EventShipMoved       EventType = "SHIP_MOVED"
	EventEnergyRecharged EventType = "ENERGY_RECHARGED"
	EventEnergyUsed      EventType = "ENERGY_USED"
	EventOrderCreated    EventType = "ORDER_CREATED"
	EventOrderUpdated    EventType = "ORDER_UPDATED"
	EventOrderCompleted  EventType = "ORDER_COMPLETED"
	EventOrderDropped    EventType = "ORDER_DROPPED"
	EventResourceMined   EventType = "RESOURCE_MINED"
	EventSiteMinted      EventType = "SITE_MINTED"
)

// Event is something observable that happened to a ship or site.
// Events are informational; nothing in settlement depends on them.
type Event interface {
	Type() EventType
	// ShipID is 0 for events that do not concern a ship; use ShipOf to tell
	// them apart from events of ship 0
	ShipID() uint32
	At() shared.Tick
}

// ShipOf returns the ship an event concerns. Site events concern no ship.
func ShipOf(event Event) (uint32, bool) {
	switch event.(type) {
	case SiteMintedEvent, *SiteMintedEvent:
		return 0, false
	default:
		return event.ShipID(), true
	}
}

// EventHeader carries the fields every event shares
type EventHeader struct {
	Ship uint32      `json:"ship_id,omitempty"`
	Tick shared.Tick `json:"tick"`
}

func (h EventHeader) ShipID() uint32  { return h.Ship }
func (h EventHeader) At() shared.Tick { return h.Tick }

type ShipSpawnedEvent struct {
	EventHeader
	Owner    string           `json:"owner"`
	Name     string           `json:"name,omitempty"`
	Position hexgrid.Position `json:"position"`
}

type ShipMovedEvent struct {
	EventHeader
	From  hexgrid.Position  `json:"from"`
	To    hexgrid.Position  `json:"to"`
	Tiles int               `json:"tiles"`
	Dir   hexgrid.Direction `json:"direction"`
}

type EnergyRechargedEvent struct {
	EventHeader
	Amount int `json:"amount"`
	Energy int `json:"energy"`
}

type EnergyUsedEvent struct {
	EventHeader
	Kind   OrderKind `json:"kind"`
	Amount int       `json:"amount"`
	Energy int       `json:"energy"`
}

type OrderCreatedEvent struct {
	EventHeader
	Kind  OrderKind `json:"kind"`
	Order string    `json:"order"`
	Index int       `json:"index"`
}

type OrderUpdatedEvent struct {
	EventHeader
	Kind  OrderKind `json:"kind"`
	Order string    `json:"order"`
}

type OrderCompletedEvent struct {
	EventHeader
	Kind  OrderKind `json:"kind"`
	Order string    `json:"order"`
}

type OrderDroppedEvent struct {
	EventHeader
	Kind  OrderKind `json:"kind"`
	Order string    `json:"order"`
	Index int       `json:"index"`
}

type ResourceMinedEvent struct {
	EventHeader
	SiteID   uint32                 `json:"site_id"`
	Resource inventory.ResourceType `json:"resource"`
	Quantity int                    `json:"quantity"`
}

type SiteMintedEvent struct {
	EventHeader
	SiteID   uint32           `json:"site_id"`
	Level    string           `json:"level"`
	Position hexgrid.Position `json:"position"`
}

func (ShipSpawnedEvent) Type() EventType     { return EventShipSpawned }
func (ShipMovedEvent) Type() EventType       { return EventShipMoved }
func (EnergyRechargedEvent) Type() EventType { return EventEnergyRecharged }
func (EnergyUsedEvent) Type() EventType      { return EventEnergyUsed }
func (OrderCreatedEvent) Type() EventType    { return EventOrderCreated }
func (OrderUpdatedEvent) Type() EventType    { return EventOrderUpdated }
func (OrderCompletedEvent) Type() EventType  { return EventOrderCompleted }
func (OrderDroppedEvent) Type() EventType    { return EventOrderDropped }
func (ResourceMinedEvent) Type() EventType   { return EventResourceMined }
func (SiteMintedEvent) Type() EventType      { return EventSiteMinted }
