package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/rareships-go/internal/adapters/persistence"
	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	planetCommands "github.com/andrescamacho/rareships-go/internal/application/planet/commands"
	"github.com/andrescamacho/rareships-go/internal/application/setup"
	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/test/helpers"
)

// fleetOperationsContext drives the full command bus over the shared test database
type fleetOperationsContext struct {
	ticks    *shared.MockTickSource
	ships    *persistence.GormShipRepository
	mediator mediator.Mediator
	sweep    *shipCommands.SettleFleetResponse
	err      error
}

func (fc *fleetOperationsContext) reset() error {
	fc.ticks = shared.NewMockTickSource(0)
	fc.ships = nil
	fc.mediator = nil
	fc.sweep = nil
	fc.err = nil
	return helpers.TruncateAllTables()
}

func (fc *fleetOperationsContext) as(who string) (context.Context, error) {
	identity, err := shared.NewIdentity(who)
	if err != nil {
		return nil, err
	}
	return auth.WithCaller(context.Background(), identity), nil
}

// Given steps

func (fc *fleetOperationsContext) aWorldAdministeredBy(maxX, maxY int, admin string) error {
	grid, err := hexgrid.NewGrid(maxX, maxY)
	if err != nil {
		return err
	}
	identity, err := shared.NewIdentity(admin)
	if err != nil {
		return err
	}

	db := helpers.SharedTestDB
	fc.ships = persistence.NewGormShipRepository(db)
	eventLog := persistence.NewGormEventLogRepository(db, nil)

	registry := setup.NewHandlerRegistry(setup.Dependencies{
		ShipRepo:      fc.ships,
		SiteRepo:      persistence.NewGormSiteRepository(db),
		EventLog:      eventLog,
		Publisher:     eventLog,
		Ticks:         fc.ticks,
		Grid:          grid,
		Catalog:       helpers.TestCatalog(),
		SpawnDefaults: shipCommands.DefaultSpawnDefaults(),
		Admin:         identity,
	})
	fc.mediator, err = registry.CreateConfiguredMediator()
	return err
}

func (fc *fleetOperationsContext) playerSpawnsShipNamed(player string, shipID int, name string) error {
	return fc.send(player, &shipCommands.SpawnShipCommand{ShipID: uint32(shipID), Name: name})
}

func (fc *fleetOperationsContext) mintsBasicSite(caller string, siteID, x, y int) error {
	return fc.send(caller, &planetCommands.MintSiteCommand{
		SiteID:   uint32(siteID),
		Level:    planet.Basic,
		Position: hexgrid.Position{X: x, Y: y},
	})
}

func (fc *fleetOperationsContext) mintsBasicSiteOwnedBy(caller string, siteID, x, y int, owner string) error {
	identity, err := shared.NewIdentity(owner)
	if err != nil {
		return err
	}
	return fc.send(caller, &planetCommands.MintSiteCommand{
		SiteID:   uint32(siteID),
		Level:    planet.Basic,
		Position: hexgrid.Position{X: x, Y: y},
		Owner:    &identity,
	})
}

func (fc *fleetOperationsContext) playerOrdersShipToMove(player string, shipID int, direction string, speed, distance int) error {
	d, err := hexgrid.ParseDirection(direction)
	if err != nil {
		return err
	}
	return fc.send(player, &shipCommands.OrderShipCommand{
		ShipID: uint32(shipID),
		Order:  navigation.MoveOrder{Direction: d, Speed: speed, Distance: distance},
	})
}

func (fc *fleetOperationsContext) playerOrdersShipToMine(player string, shipID int, resource string, siteID, duration int) error {
	rt, err := inventory.ParseResourceType(resource)
	if err != nil {
		return err
	}
	return fc.send(player, &shipCommands.OrderShipCommand{
		ShipID: uint32(shipID),
		Order:  navigation.MineOrder{SiteID: uint32(siteID), Resource: rt, Duration: duration},
	})
}

// send dispatches a command as player and keeps the error for the Then steps
func (fc *fleetOperationsContext) send(player string, request mediator.Request) error {
	ctx, err := fc.as(player)
	if err != nil {
		return err
	}
	_, fc.err = fc.mediator.Send(ctx, request)
	return nil
}

// When steps

func (fc *fleetOperationsContext) playerDropsOrder(player string, index, shipID int) error {
	return fc.send(player, &shipCommands.DropOrderCommand{ShipID: uint32(shipID), Index: index})
}

func (fc *fleetOperationsContext) theFleetIsSweptAtTick(tick int) error {
	fc.ticks.Set(shared.Tick(tick))
	resp, err := fc.mediator.Send(context.Background(), &shipCommands.SettleFleetCommand{})
	if err != nil {
		return fmt.Errorf("fleet sweep failed: %w", err)
	}
	fc.sweep = resp.(*shipCommands.SettleFleetResponse)
	return nil
}

// Then steps

func (fc *fleetOperationsContext) theCommandShouldFailWith(kind string) error {
	expected, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if fc.err == nil {
		return fmt.Errorf("expected the command to fail with %s, but it succeeded", kind)
	}
	if !errors.Is(fc.err, expected) {
		return fmt.Errorf("expected %s, got: %v", kind, fc.err)
	}
	return nil
}

func (fc *fleetOperationsContext) theSweepShouldHaveSettledWithoutFailures(settled int) error {
	if fc.sweep == nil {
		return fmt.Errorf("no sweep has run")
	}
	if fc.sweep.Settled != settled {
		return fmt.Errorf("expected %d settled ships, got %d", settled, fc.sweep.Settled)
	}
	if len(fc.sweep.Failures) != 0 {
		return fmt.Errorf("expected no failures, got %d (first: %v)", len(fc.sweep.Failures), fc.sweep.Failures[0].Err)
	}
	return nil
}

func (fc *fleetOperationsContext) theSweepShouldHaveSettledWithFailureFor(settled, failures, shipID int) error {
	if fc.sweep == nil {
		return fmt.Errorf("no sweep has run")
	}
	if fc.sweep.Settled != settled {
		return fmt.Errorf("expected %d settled ships, got %d", settled, fc.sweep.Settled)
	}
	if len(fc.sweep.Failures) != failures {
		return fmt.Errorf("expected %d failures, got %d", failures, len(fc.sweep.Failures))
	}
	for _, failure := range fc.sweep.Failures {
		if failure.ShipID == uint32(shipID) {
			return nil
		}
	}
	return fmt.Errorf("ship %d is not among the failures", shipID)
}

func (fc *fleetOperationsContext) storedShip(shipID int) (*navigation.Ship, error) {
	resp, err := fc.mediator.Send(context.Background(), &shipQueries.GetShipQuery{ShipID: uint32(shipID)})
	if err != nil {
		return nil, err
	}
	return resp.(*shipQueries.GetShipResponse).Ship, nil
}

func (fc *fleetOperationsContext) shipShouldBeStoredAtWithEnergy(shipID, x, y, energy int) error {
	ship, err := fc.storedShip(shipID)
	if err != nil {
		return err
	}
	if expected := (hexgrid.Position{X: x, Y: y}); ship.Position() != expected {
		return fmt.Errorf("expected ship %d at %s, got %s", shipID, expected, ship.Position())
	}
	if ship.Energy() != energy {
		return fmt.Errorf("expected ship %d energy %d, got %d", shipID, energy, ship.Energy())
	}
	return nil
}

func (fc *fleetOperationsContext) shipShouldHold(shipID, quantity int, resource string) error {
	rt, err := inventory.ParseResourceType(resource)
	if err != nil {
		return err
	}
	ship, err := fc.storedShip(shipID)
	if err != nil {
		return err
	}
	if got := ship.Cargo().Quantity(rt); got != quantity {
		return fmt.Errorf("expected ship %d to hold %d %s, got %d", shipID, quantity, rt, got)
	}
	return nil
}

func (fc *fleetOperationsContext) shipShouldHaveQueuedOrders(shipID, expected int) error {
	ship, err := fc.storedShip(shipID)
	if err != nil {
		return err
	}
	if ship.Orders().Len() != expected {
		return fmt.Errorf("expected ship %d to have %d orders, got %d", shipID, expected, ship.Orders().Len())
	}
	return nil
}

func (fc *fleetOperationsContext) theEventLogShouldHold(expected int, eventType string) error {
	resp, err := fc.mediator.Send(context.Background(), &shipQueries.ListEventsQuery{Type: eventType})
	if err != nil {
		return err
	}
	if got := len(resp.(*shipQueries.ListEventsResponse).Events); got != expected {
		return fmt.Errorf("expected %d %s events, got %d", expected, eventType, got)
	}
	return nil
}

func InitializeFleetOperationsScenario(ctx *godog.ScenarioContext) {
	fc := &fleetOperationsContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, fc.reset()
	})

	// Given steps
	ctx.Step(`^a (\d+)x(\d+) world administered by "([^"]*)"$`, fc.aWorldAdministeredBy)
	ctx.Step(`^player "([^"]*)" spawns ship (\d+) named "([^"]*)"$`, fc.playerSpawnsShipNamed)
	ctx.Step(`^"([^"]*)" mints a basic site (\d+) at (\d+),(\d+)$`, fc.mintsBasicSite)
	ctx.Step(`^"([^"]*)" mints a basic site (\d+) at (\d+),(\d+) owned by "([^"]*)"$`, fc.mintsBasicSiteOwnedBy)
	ctx.Step(`^player "([^"]*)" orders ship (\d+) to move (\w+) at speed (\d+) for (\d+) tiles$`, fc.playerOrdersShipToMove)
	ctx.Step(`^player "([^"]*)" orders ship (\d+) to mine (\w+) at site (\d+) for (\d+) ticks$`, fc.playerOrdersShipToMine)

	// When steps
	ctx.Step(`^player "([^"]*)" drops order (\d+) of ship (\d+)$`, fc.playerDropsOrder)
	ctx.Step(`^the fleet is swept at tick (\d+)$`, fc.theFleetIsSweptAtTick)

	// Then steps
	ctx.Step(`^the command should fail with "([^"]*)"$`, fc.theCommandShouldFailWith)
	ctx.Step(`^the sweep should have settled (\d+) ships without failures$`, fc.theSweepShouldHaveSettledWithoutFailures)
	ctx.Step(`^the sweep should have settled (\d+) ships with (\d+) failures? for ship (\d+)$`, fc.theSweepShouldHaveSettledWithFailureFor)
	ctx.Step(`^ship (\d+) should be stored at (\d+),(\d+) with energy (\d+)$`, fc.shipShouldBeStoredAtWithEnergy)
	ctx.Step(`^ship (\d+) should hold (\d+) (\w+)$`, fc.shipShouldHold)
	ctx.Step(`^ship (\d+) should have (\d+) queued orders?$`, fc.shipShouldHaveQueuedOrders)
	ctx.Step(`^the event log should hold (\d+) "([^"]*)" events?$`, fc.theEventLogShouldHold)
}
