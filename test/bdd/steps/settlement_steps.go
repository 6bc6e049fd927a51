package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/test/helpers"
)

type settlementContext struct {
	ship         *navigation.Ship
	sites        *helpers.MockSiteRepository
	digestBefore string
	err          error
}

func (sc *settlementContext) reset() {
	sc.ship = nil
	sc.sites = helpers.NewMockSiteRepository()
	sc.digestBefore = ""
	sc.err = nil
}

func (sc *settlementContext) engine() *settlement.Engine {
	return settlement.NewEngine(hexgrid.DefaultGrid(), sc.sites, settlement.Options{})
}

// Given steps

func (sc *settlementContext) aShipOwnedByWithEnergyAt(owner string, maxEnergy, energy, x, y int) error {
	identity, err := shared.NewIdentity(owner)
	if err != nil {
		return err
	}
	spec := navigation.DefaultShipSpec()
	spec.MaxEnergy = maxEnergy
	ship, err := navigation.SpawnShip(1, "", identity, spec, hexgrid.Position{X: x, Y: y}, energy, spec.MaxHealth, 0)
	if err != nil {
		return err
	}
	sc.ship = ship
	return nil
}

func (sc *settlementContext) aBasicSiteAt(id, x, y int) error {
	return sc.mintSite(id, x, y, nil)
}

func (sc *settlementContext) aBasicSiteAtOwnedBy(id, x, y int, owner string) error {
	identity, err := shared.NewIdentity(owner)
	if err != nil {
		return err
	}
	return sc.mintSite(id, x, y, &identity)
}

func (sc *settlementContext) mintSite(id, x, y int, owner *shared.Identity) error {
	site, err := planet.MintSite(uint32(id), planet.Basic, helpers.TestCatalog(), hexgrid.Position{X: x, Y: y}, owner)
	if err != nil {
		return err
	}
	return sc.sites.Add(context.Background(), site)
}

func (sc *settlementContext) theShipIsOrderedToMove(direction string, speed, distance, tick int) error {
	d, err := hexgrid.ParseDirection(direction)
	if err != nil {
		return err
	}
	order := navigation.MoveOrder{Direction: d, Speed: speed, Distance: distance}
	if err := navigation.ValidateMove(order, sc.ship.MaxSpeed()); err != nil {
		return err
	}
	sc.ship.PlaceOrder(order, shared.Tick(tick))
	return nil
}

func (sc *settlementContext) theShipIsOrderedToMine(resource string, siteID, duration, tick int) error {
	rt, err := inventory.ParseResourceType(resource)
	if err != nil {
		return err
	}
	order := navigation.MineOrder{SiteID: uint32(siteID), Resource: rt, Duration: duration}
	site, err := sc.sites.FindByID(context.Background(), order.SiteID)
	if err != nil {
		return err
	}
	if err := navigation.ValidateMine(order, site); err != nil {
		return err
	}
	sc.ship.PlaceOrder(order, shared.Tick(tick))
	return nil
}

// When steps

func (sc *settlementContext) theShipIsSettledAtTick(tick int) error {
	_, sc.err = sc.engine().Settle(context.Background(), sc.ship, shared.Tick(tick))
	return nil
}

func (sc *settlementContext) theShipIsSettledAgainAtTick(tick int) error {
	sc.digestBefore = sc.ship.Digest()
	return sc.theShipIsSettledAtTick(tick)
}

func (sc *settlementContext) orderIsDroppedAtTick(index, tick int) error {
	_, err := sc.ship.DropOrder(index, false, shared.Tick(tick))
	return err
}

// Then steps

func (sc *settlementContext) settlementShouldSucceed() error {
	if sc.err != nil {
		return fmt.Errorf("expected settlement to succeed, got: %v", sc.err)
	}
	return nil
}

func (sc *settlementContext) settlementShouldFailWith(kind string) error {
	expected, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if sc.err == nil {
		return fmt.Errorf("expected settlement to fail with %s, but it succeeded", kind)
	}
	if !errors.Is(sc.err, expected) {
		return fmt.Errorf("expected %s, got: %v", kind, sc.err)
	}
	return nil
}

func (sc *settlementContext) theShipShouldBeAt(x, y int) error {
	expected := hexgrid.Position{X: x, Y: y}
	if sc.ship.Position() != expected {
		return fmt.Errorf("expected ship at %s, got %s", expected, sc.ship.Position())
	}
	return nil
}

func (sc *settlementContext) theShipEnergyShouldBe(expected int) error {
	if sc.ship.Energy() != expected {
		return fmt.Errorf("expected energy %d, got %d", expected, sc.ship.Energy())
	}
	return nil
}

func (sc *settlementContext) theHeadOrderShouldBeAMoveStartedAt(distance, tick int) error {
	head, ok := sc.ship.Orders().Head()
	if !ok {
		return fmt.Errorf("order queue is empty")
	}
	move, ok := head.Order.(navigation.MoveOrder)
	if !ok {
		return fmt.Errorf("expected a move order at the head, got %s", head.Order)
	}
	if move.Distance != distance {
		return fmt.Errorf("expected %d tiles left, got %d", distance, move.Distance)
	}
	if !head.Started() || *head.Start != shared.Tick(tick) {
		return fmt.Errorf("expected head to start at tick %d, got %v", tick, head.Start)
	}
	return nil
}

func (sc *settlementContext) theOrderQueueShouldHave(expected int) error {
	if sc.ship.Orders().Len() != expected {
		return fmt.Errorf("expected %d orders, got %d", expected, sc.ship.Orders().Len())
	}
	return nil
}

func (sc *settlementContext) theOrderQueueShouldBeEmpty() error {
	return sc.theOrderQueueShouldHave(0)
}

func (sc *settlementContext) theCargoShouldBeEmpty() error {
	if sc.ship.Cargo().Len() != 0 {
		return fmt.Errorf("expected empty cargo, got %s", sc.ship.Cargo())
	}
	return nil
}

func (sc *settlementContext) theCargoShouldContain(table *godog.Table) error {
	return assertStacks(sc.ship.Cargo(), table)
}

func (sc *settlementContext) theShipStateShouldBeUnchanged() error {
	if sc.err != nil {
		return fmt.Errorf("second settlement failed: %v", sc.err)
	}
	if after := sc.ship.Digest(); after != sc.digestBefore {
		return fmt.Errorf("ship digest changed from %s to %s", sc.digestBefore, after)
	}
	return nil
}

var errorKinds = map[string]error{
	"ShipNotFound":     shared.ErrShipNotFound,
	"SiteNotFound":     shared.ErrSiteNotFound,
	"AlreadyExists":    shared.ErrAlreadyExists,
	"NotOwner":         shared.ErrNotOwner,
	"NotAuthorized":    shared.ErrNotAuthorized,
	"InventoryFull":    shared.ErrInventoryFull,
	"InvalidOrder":     shared.ErrInvalidOrder,
	"ResourceNotFound": shared.ErrResourceNotFound,
	"NotSiteOwner":     shared.ErrNotSiteOwner,
}

// assertStacks compares resource stacks in order against a resource|quantity table
func assertStacks(inv *inventory.Inventory, table *godog.Table) error {
	items := inv.Items()
	expected := len(table.Rows) - 1
	if len(items) != expected {
		return fmt.Errorf("expected %d stacks, got %d (%s)", expected, len(items), inv)
	}
	for i, row := range table.Rows[1:] {
		resource, err := inventory.ParseResourceType(cellValue(table, row, "resource"))
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(cellValue(table, row, "quantity"))
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		stack, ok := items[i].(*inventory.Resource)
		if !ok {
			return fmt.Errorf("slot %d holds %T, not a resource", i, items[i])
		}
		if stack.Type != resource || stack.Quantity != quantity {
			return fmt.Errorf("slot %d: expected %s x%d, got %s", i, resource, quantity, stack)
		}
	}
	return nil
}

// cellValue looks a column up by its header in the first row
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func InitializeSettlementScenario(ctx *godog.ScenarioContext) {
	sc := &settlementContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a ship owned by "([^"]*)" with max energy (\d+) and energy (\d+) at (\d+),(\d+)$`, sc.aShipOwnedByWithEnergyAt)
	ctx.Step(`^a basic site (\d+) at (\d+),(\d+)$`, sc.aBasicSiteAt)
	ctx.Step(`^a basic site (\d+) at (\d+),(\d+) owned by "([^"]*)"$`, sc.aBasicSiteAtOwnedBy)
	ctx.Step(`^the ship is ordered to move (\w+) at speed (\d+) for (\d+) tiles at tick (\d+)$`, sc.theShipIsOrderedToMove)
	ctx.Step(`^the ship is ordered to mine (\w+) at site (\d+) for (\d+) ticks at tick (\d+)$`, sc.theShipIsOrderedToMine)

	// When steps
	ctx.Step(`^the ship is settled at tick (\d+)$`, sc.theShipIsSettledAtTick)
	ctx.Step(`^the ship is settled again at tick (\d+)$`, sc.theShipIsSettledAgainAtTick)
	ctx.Step(`^order (\d+) is dropped at tick (\d+)$`, sc.orderIsDroppedAtTick)

	// Then steps
	ctx.Step(`^settlement should succeed$`, sc.settlementShouldSucceed)
	ctx.Step(`^settlement should fail with "([^"]*)"$`, sc.settlementShouldFailWith)
	ctx.Step(`^the ship should be at (\d+),(\d+)$`, sc.theShipShouldBeAt)
	ctx.Step(`^the ship energy should be (\d+)$`, sc.theShipEnergyShouldBe)
	ctx.Step(`^the head order should be a move of (\d+) tiles started at tick (\d+)$`, sc.theHeadOrderShouldBeAMoveStartedAt)
	ctx.Step(`^the order queue should have (\d+) orders?$`, sc.theOrderQueueShouldHave)
	ctx.Step(`^the order queue should be empty$`, sc.theOrderQueueShouldBeEmpty)
	ctx.Step(`^the cargo should be empty$`, sc.theCargoShouldBeEmpty)
	ctx.Step(`^the cargo should contain:$`, sc.theCargoShouldContain)
	ctx.Step(`^the ship state should be unchanged$`, sc.theShipStateShouldBeUnchanged)
}
