package navigation

import (
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// OrderKind names an order variant for logs, metrics and persistence
type OrderKind string

const (
	OrderKindMove OrderKind = "MOVE"
	OrderKindMine OrderKind = "MINE"
)

// Order is a closed sum type: MoveOrder or MineOrder
type Order interface {
	Kind() OrderKind
	String() string
	isOrder()
}

// MoveOrder moves the ship Distance tiles in Direction.
// Speed is in milli-tiles per tick, so 1000 is one tile per tick.
type MoveOrder struct {
	Direction hexgrid.Direction
	Speed     int
	Distance  int
}

// MineOrder extracts Resource from a site for a fixed number of ticks
type MineOrder struct {
	SiteID   uint32
	Resource inventory.ResourceType
	Duration int
}

func (MoveOrder) Kind() OrderKind { return OrderKindMove }
func (MineOrder) Kind() OrderKind { return OrderKindMine }

func (MoveOrder) isOrder() {}
func (MineOrder) isOrder() {}

func (o MoveOrder) String() string {
	return fmt.Sprintf("Move(%s, speed=%d, distance=%d)", o.Direction, o.Speed, o.Distance)
}

func (o MineOrder) String() string {
	return fmt.Sprintf("Mine(site=%d, %s, duration=%d)", o.SiteID, o.Resource, o.Duration)
}

// QueuedOrder is a slot in the order queue. Start is nil until the order
// reaches the head of the queue.
type QueuedOrder struct {
	Order Order
	Start *shared.Tick
}

// Started reports whether the order has a start tick
func (q QueuedOrder) Started() bool {
	return q.Start != nil
}

func stamp(t shared.Tick) *shared.Tick {
	return &t
}

// SiteCatalogue is the slice of a resource site an order needs for validation
type SiteCatalogue interface {
	Offers(resource inventory.ResourceType) bool
}

// ValidateMove checks a move order against the ship's max speed
func ValidateMove(o MoveOrder, maxSpeed int) error {
	if !o.Direction.IsValid() {
		return shared.NewInvalidOrderError(fmt.Sprintf("unknown direction %d", int(o.Direction)))
	}
	if o.Speed < 0 || o.Speed > maxSpeed {
		return shared.NewInvalidOrderError(fmt.Sprintf("speed %d outside [0, %d]", o.Speed, maxSpeed))
	}
	if o.Distance <= 0 {
		return shared.NewInvalidOrderError(fmt.Sprintf("distance must be positive, got %d", o.Distance))
	}
	return nil
}

// ValidateMine checks a mine order against the target site's catalogue.
// site is nil when the site does not exist.
func ValidateMine(o MineOrder, site SiteCatalogue) error {
	if o.Duration <= 0 {
		return shared.NewInvalidOrderError(fmt.Sprintf("duration must be positive, got %d", o.Duration))
	}
	if site == nil {
		return shared.NewSiteNotFoundError(o.SiteID)
	}
	if !o.Resource.IsValid() || !site.Offers(o.Resource) {
		return shared.NewInvalidOrderError(fmt.Sprintf("site %d does not offer %s", o.SiteID, o.Resource))
	}
	return nil
}
