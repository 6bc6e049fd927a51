package settlement

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/rareships-go/internal/domain/economy"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// milliTiles is the progress a ship needs to cross one tile
const milliTiles = 1000

// SiteLookup resolves resource sites during mining
type SiteLookup interface {
	FindByID(ctx context.Context, id uint32) (*planet.ResourceSite, error)
}

// Options tunes behavior left open for product decisions
type Options struct {
	// RestampHeadOnDrop treats an unstamped head as starting now instead of
	// rejecting it. Heads lose their stamp when the order in front of them is
	// dropped.
	RestampHeadOnDrop bool
}

// Engine reconciles a ship's stored state with the current tick.
//
// Settlement never iterates over ticks: everything is derived from
// now - start of the head order and now - last recharge. Settling twice at
// the same tick changes nothing the second time.
//
// The engine mutates the ship it is given. When Settle returns an error the
// ship may be partially updated and must not be persisted.
type Engine struct {
	grid  *hexgrid.Grid
	sites SiteLookup
	opts  Options
}

func NewEngine(grid *hexgrid.Grid, sites SiteLookup, opts Options) *Engine {
	if grid == nil {
		grid = hexgrid.DefaultGrid()
	}
	return &Engine{grid: grid, sites: sites, opts: opts}
}

func (e *Engine) Grid() *hexgrid.Grid {
	return e.grid
}

// Settle recharges the ship and advances its head order
func (e *Engine) Settle(ctx context.Context, ship *navigation.Ship, now shared.Tick) (*Outcome, error) {
	outcome := &Outcome{ShipID: ship.ID(), Tick: now}
	if ship.Orders().IsEmpty() {
		return outcome, nil
	}

	e.recharge(ship, now, outcome)

	if err := e.advanceHead(ctx, ship, now, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// SettleRecharge applies only the recharge step, regardless of the queue
func (e *Engine) SettleRecharge(ship *navigation.Ship, now shared.Tick) *Outcome {
	outcome := &Outcome{ShipID: ship.ID(), Tick: now}
	e.recharge(ship, now, outcome)
	return outcome
}

// recharge only stamps the last recharge tick when energy was below max.
// A full ship keeps its old stamp, so time spent full counts toward the next
// recharge once energy has been spent.
func (e *Engine) recharge(ship *navigation.Ship, now shared.Tick, outcome *Outcome) {
	elapsed := now.Since(ship.LastRecharge())
	if elapsed == 0 || ship.Energy() >= ship.MaxEnergy() {
		return
	}
	before := ship.Energy()
	after := economy.Recharge(before, ship.MaxEnergy(), elapsed, ship.RechargeRate())
	ship.ApplyRecharge(after, now)
	outcome.Recharged = after - before
}

func (e *Engine) advanceHead(ctx context.Context, ship *navigation.Ship, now shared.Tick, outcome *Outcome) error {
	head, ok := ship.Orders().Head()
	if !ok {
		return nil
	}
	if !head.Started() {
		if !e.opts.RestampHeadOnDrop {
			return shared.NewInvalidOrderError(fmt.Sprintf("ship %d: head order %s has no start tick", ship.ID(), head.Order))
		}
		ship.Orders().RestampHead(now)
		return nil
	}
	elapsed := now.Since(*head.Start)

	switch order := head.Order.(type) {
	case navigation.MoveOrder:
		return e.advanceMove(ship, order, elapsed, now, outcome)
	case navigation.MineOrder:
		return e.advanceMine(ctx, ship, order, elapsed, now, outcome)
	default:
		return shared.NewInvalidOrderError(fmt.Sprintf("unsupported order type %T", head.Order))
	}
}

func (e *Engine) advanceMove(ship *navigation.Ship, order navigation.MoveOrder, elapsed uint64, now shared.Tick, outcome *Outcome) error {
	travelled := progress(elapsed, order.Speed)
	if travelled == 0 {
		return nil
	}
	tiles := order.Distance
	if travelled < uint64(order.Distance) {
		tiles = int(travelled)
	}

	cost := economy.MoveCostPerTile(order.Speed, ship.MaxSpeed())
	tiles = economy.AffordableTiles(tiles, cost, ship.Energy())
	spent := cost * tiles
	if err := ship.SpendEnergy(spent); err != nil {
		return err
	}

	from := ship.Position()
	ship.MoveTo(e.grid.Move(from, order.Direction, tiles))

	outcome.Moved = tiles
	outcome.From = from
	outcome.To = ship.Position()
	outcome.Direction = order.Direction
	outcome.EnergyUsed = spent
	outcome.UsedBy = navigation.OrderKindMove

	if tiles == order.Distance {
		outcome.Completed = ship.Orders().PopAndRestamp(now)
		return nil
	}
	remainder := navigation.MoveOrder{Direction: order.Direction, Speed: order.Speed, Distance: order.Distance - tiles}
	ship.Orders().ReplaceHead(remainder, now)
	outcome.Updated = remainder
	return nil
}

// progress returns whole tiles covered in elapsed ticks at speed milli-tiles per tick
func progress(elapsed uint64, speed int) uint64 {
	if elapsed == 0 || speed <= 0 {
		return 0
	}
	s := uint64(speed)
	if elapsed > math.MaxUint64/s {
		return math.MaxUint64 / milliTiles
	}
	return elapsed * s / milliTiles
}

func (e *Engine) advanceMine(ctx context.Context, ship *navigation.Ship, order navigation.MineOrder, elapsed uint64, now shared.Tick, outcome *Outcome) error {
	if elapsed < uint64(order.Duration) {
		return nil
	}
	cost := economy.MineCost(order.Duration)
	if cost > ship.Energy() {
		outcome.Deferred = true
		return nil
	}

	site, err := e.findSite(ctx, order.SiteID)
	if err != nil {
		return err
	}
	if !site.IsAt(ship.Position()) {
		return shared.NewResourceNotFoundError(fmt.Sprintf("ship %d at %s is not at site %d (%s)", ship.ID(), ship.Position(), site.ID(), site.Position()))
	}
	if !site.Offers(order.Resource) {
		return shared.NewResourceNotFoundError(fmt.Sprintf("site %d does not offer %s", site.ID(), order.Resource))
	}
	if !site.CanBeMinedBy(ship.Owner()) {
		return shared.NewNotSiteOwnerError(site.ID(), ship.Owner())
	}

	if err := ship.SpendEnergy(cost); err != nil {
		return err
	}
	mined := inventory.NewResource(order.Resource, site.Rate(order.Resource)*order.Duration)
	if err := ship.ReceiveCargo(mined); err != nil {
		return fmt.Errorf("ship %d cannot store %s: %w", ship.ID(), mined, err)
	}

	outcome.EnergyUsed = cost
	outcome.UsedBy = navigation.OrderKindMine
	outcome.Mined = mined
	outcome.SiteID = site.ID()
	outcome.Completed = ship.Orders().PopAndRestamp(now)
	return nil
}

func (e *Engine) findSite(ctx context.Context, id uint32) (*planet.ResourceSite, error) {
	if e.sites == nil {
		return nil, shared.NewSiteNotFoundError(id)
	}
	site, err := e.sites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, shared.NewSiteNotFoundError(id)
	}
	return site, nil
}
