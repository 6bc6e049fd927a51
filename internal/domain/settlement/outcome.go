package settlement

import (
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// Outcome describes what one settlement did to a ship
type Outcome struct {
	ShipID uint32
	Tick   shared.Tick

	Recharged int

	Moved     int
	From      hexgrid.Position
	To        hexgrid.Position
	Direction hexgrid.Direction

	EnergyUsed int
	UsedBy     navigation.OrderKind

	// Completed is the order popped from the queue, Updated the remainder
	// that replaced the head. At most one is set.
	Completed navigation.Order
	Updated   navigation.Order

	Mined  *inventory.Resource
	SiteID uint32

	// Deferred is set when a finished mine order waits for energy
	Deferred bool
}

// Changed reports whether settlement altered any observable state
func (o *Outcome) Changed() bool {
	return o.Recharged > 0 || o.Moved > 0 || o.EnergyUsed > 0 || o.Completed != nil || o.Updated != nil
}

// Events converts the outcome into events, in the order they happened
func (o *Outcome) Events(energyAfter int) []navigation.Event {
	header := navigation.EventHeader{Ship: o.ShipID, Tick: o.Tick}
	var events []navigation.Event

	if o.Recharged > 0 {
		events = append(events, navigation.EnergyRechargedEvent{
			EventHeader: header,
			Amount:      o.Recharged,
			Energy:      energyAfter + o.EnergyUsed,
		})
	}
	if o.Moved > 0 {
		events = append(events, navigation.ShipMovedEvent{
			EventHeader: header,
			From:        o.From,
			To:          o.To,
			Tiles:       o.Moved,
			Dir:         o.Direction,
		})
	}
	if o.EnergyUsed > 0 {
		events = append(events, navigation.EnergyUsedEvent{
			EventHeader: header,
			Kind:        o.UsedBy,
			Amount:      o.EnergyUsed,
			Energy:      energyAfter,
		})
	}
	if o.Mined != nil {
		events = append(events, navigation.ResourceMinedEvent{
			EventHeader: header,
			SiteID:      o.SiteID,
			Resource:    o.Mined.Type,
			Quantity:    o.Mined.Quantity,
		})
	}
	if o.Updated != nil {
		events = append(events, navigation.OrderUpdatedEvent{
			EventHeader: header,
			Kind:        o.Updated.Kind(),
			Order:       o.Updated.String(),
		})
	}
	if o.Completed != nil {
		events = append(events, navigation.OrderCompletedEvent{
			EventHeader: header,
			Kind:        o.Completed.Kind(),
			Order:       o.Completed.String(),
		})
	}
	return events
}
