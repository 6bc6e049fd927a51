package settlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

var (
	alice  = shared.MustNewIdentity("alice")
	bob    = shared.MustNewIdentity("bob")
	center = hexgrid.Position{X: 5000, Y: 5000}
)

type siteMap map[uint32]*planet.ResourceSite

func (m siteMap) FindByID(_ context.Context, id uint32) (*planet.ResourceSite, error) {
	site, ok := m[id]
	if !ok {
		return nil, shared.NewSiteNotFoundError(id)
	}
	return site, nil
}

func catalog(t *testing.T) *planet.Catalog {
	t.Helper()
	c, err := planet.NewCatalog(map[planet.Level]planet.LevelSpec{
		planet.Basic:    {Rates: map[inventory.ResourceType]int{inventory.Iron: 2, inventory.Copper: 1}, Storage: 4},
		planet.Advanced: {Rates: map[inventory.ResourceType]int{inventory.Iron: 3, inventory.Gold: 1}, Storage: 8},
		planet.Fortress: {Rates: map[inventory.ResourceType]int{inventory.Uranium: 1}, Storage: 16},
	})
	require.NoError(t, err)
	return c
}

func mintSite(t *testing.T, id uint32, pos hexgrid.Position, owner *shared.Identity) *planet.ResourceSite {
	t.Helper()
	site, err := planet.MintSite(id, planet.Basic, catalog(t), pos, owner)
	require.NoError(t, err)
	return site
}

func newShip(t *testing.T, maxEnergy, energy int) *navigation.Ship {
	t.Helper()
	spec := navigation.DefaultShipSpec()
	spec.MaxEnergy = maxEnergy
	ship, err := navigation.SpawnShip(1, "", alice, spec, center, energy, 100, 0)
	require.NoError(t, err)
	return ship
}

func newEngine(sites siteMap) *settlement.Engine {
	return settlement.NewEngine(hexgrid.DefaultGrid(), sites, settlement.Options{})
}

func TestSettle_EmptyQueueIsNoOp(t *testing.T) {
	ship := newShip(t, 100, 50)
	before := ship.Digest()

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 40)

	require.NoError(t, err)
	assert.False(t, outcome.Changed())
	assert.Equal(t, before, ship.Digest(), "no recharge either")
}

func TestSettle_MoveSplitsOrder(t *testing.T) {
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 5}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, outcome.Moved)
	assert.Equal(t, hexgrid.Position{X: 5003, Y: 5000}, ship.Position())
	assert.Equal(t, 700, ship.Energy())

	head, ok := ship.Orders().Head()
	require.True(t, ok)
	assert.Equal(t, navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 2}, head.Order)
	assert.Equal(t, shared.Tick(3), *head.Start)
	assert.Equal(t, head.Order, outcome.Updated)
}

func TestSettle_MoveCompletesAndRestampsNext(t *testing.T) {
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 2}, 0)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.West, Speed: 500, Distance: 1}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Moved)
	assert.NotNil(t, outcome.Completed)
	head, ok := ship.Orders().Head()
	require.True(t, ok)
	assert.Equal(t, hexgrid.West, head.Order.(navigation.MoveOrder).Direction)
	assert.Equal(t, shared.Tick(10), *head.Start)
}

func TestSettle_MoveLessThanOneTileIsNoOp(t *testing.T) {
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 300, Distance: 5}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 3)

	require.NoError(t, err)
	assert.Zero(t, outcome.Moved)
	assert.Equal(t, center, ship.Position())
	head, _ := ship.Orders().Head()
	assert.Equal(t, shared.Tick(0), *head.Start, "head keeps its start tick")
}

func TestSettle_ZeroSpeedNeverMoves(t *testing.T) {
	ship := newShip(t, 100, 100)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 0, Distance: 1}, 0)

	_, err := newEngine(nil).Settle(context.Background(), ship, 1_000_000)

	require.NoError(t, err)
	assert.Equal(t, center, ship.Position())
	assert.Equal(t, 1, ship.Orders().Len())
}

func TestSettle_MoveClampedByEnergy(t *testing.T) {
	ship := newShip(t, 100, 100)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 5}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 5)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Moved)
	assert.Equal(t, 0, ship.Energy())
	head, _ := ship.Orders().Head()
	assert.Equal(t, 4, head.Order.(navigation.MoveOrder).Distance)
	assert.Equal(t, shared.Tick(5), *head.Start)
}

func TestSettle_MoveWithoutEnergyRestampsHead(t *testing.T) {
	spec := navigation.DefaultShipSpec()
	spec.RechargeRate = 0
	ship, err := navigation.SpawnShip(1, "", alice, spec, center, 50, 100, 0)
	require.NoError(t, err)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 3}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 4)

	require.NoError(t, err)
	assert.Zero(t, outcome.Moved)
	assert.Equal(t, 50, ship.Energy())
	head, _ := ship.Orders().Head()
	assert.Equal(t, 3, head.Order.(navigation.MoveOrder).Distance)
	assert.Equal(t, shared.Tick(4), *head.Start)
}

func TestSettle_MoveWrapsAroundGrid(t *testing.T) {
	spec := navigation.DefaultShipSpec()
	spec.MaxEnergy = 1000
	ship, err := navigation.SpawnShip(1, "", alice, spec, hexgrid.Position{X: 9999, Y: 5000}, 1000, 100, 0)
	require.NoError(t, err)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 2}, 0)

	_, err = newEngine(nil).Settle(context.Background(), ship, 2)

	require.NoError(t, err)
	assert.Equal(t, hexgrid.Position{X: 1, Y: 5000}, ship.Position())
}

func TestSettle_RechargeClampsAtMax(t *testing.T) {
	ship := newShip(t, 100, 100)
	require.NoError(t, ship.SpendEnergy(95))
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 5}, 20)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 20)

	require.NoError(t, err)
	assert.Equal(t, 95, outcome.Recharged)
	assert.Equal(t, 100, ship.Energy())
	assert.Equal(t, shared.Tick(20), ship.LastRecharge())
}

func TestSettle_FullShipKeepsRechargeStamp(t *testing.T) {
	ship := newShip(t, 100, 100)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 1}, 0)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 0, Distance: 1}, 0)
	engine := newEngine(nil)

	outcome, err := engine.Settle(context.Background(), ship, 1)
	require.NoError(t, err)
	assert.Zero(t, outcome.Recharged)
	assert.Equal(t, 0, ship.Energy())
	assert.Equal(t, shared.Tick(0), ship.LastRecharge(), "full ship is not stamped")

	outcome, err = engine.Settle(context.Background(), ship, 5)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.Recharged)
	assert.Equal(t, 50, ship.Energy())
	assert.Equal(t, shared.Tick(5), ship.LastRecharge())
}

func TestSettleRecharge_FullShipIsNoOp(t *testing.T) {
	ship := newShip(t, 100, 100)
	before := ship.Digest()

	outcome := newEngine(nil).SettleRecharge(ship, 9)

	assert.False(t, outcome.Changed())
	assert.Equal(t, shared.Tick(0), ship.LastRecharge())
	assert.Equal(t, before, ship.Digest())
}

func TestSettle_MiningIsAtomic(t *testing.T) {
	site := mintSite(t, 1, center, nil)
	engine := newEngine(siteMap{1: site})
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 10}, 5)

	outcome, err := engine.Settle(context.Background(), ship, 14)
	require.NoError(t, err)
	assert.Nil(t, outcome.Mined)
	assert.Equal(t, 0, ship.Cargo().Len())

	outcome, err = engine.Settle(context.Background(), ship, 15)
	require.NoError(t, err)
	require.NotNil(t, outcome.Mined)
	assert.Equal(t, 20, ship.Cargo().Quantity(inventory.Iron))
	assert.Equal(t, 0, ship.Energy())
	assert.True(t, ship.Orders().IsEmpty())
}

func TestSettle_MiningDefersUntilEnergySuffices(t *testing.T) {
	site := mintSite(t, 1, center, nil)
	engine := newEngine(siteMap{1: site})
	ship := newShip(t, 1000, 500)
	ship.PlaceOrder(navigation.MineOrder{SiteID: 1, Resource: inventory.Copper, Duration: 10}, 0)

	outcome, err := engine.Settle(context.Background(), ship, 10)
	require.NoError(t, err)
	assert.True(t, outcome.Deferred)
	assert.Equal(t, 600, ship.Energy())
	assert.Equal(t, 1, ship.Orders().Len())

	outcome, err = engine.Settle(context.Background(), ship, 50)
	require.NoError(t, err)
	assert.False(t, outcome.Deferred)
	assert.Equal(t, 10, ship.Cargo().Quantity(inventory.Copper))
	assert.Equal(t, 0, ship.Energy())
}

func TestSettle_MiningErrors(t *testing.T) {
	elsewhere := hexgrid.Position{X: 1, Y: 1}
	tests := []struct {
		name  string
		sites siteMap
		order navigation.MineOrder
		kind  error
	}{
		{"missing site", siteMap{}, navigation.MineOrder{SiteID: 9, Resource: inventory.Iron, Duration: 1}, shared.ErrSiteNotFound},
		{"not co-located", siteMap{1: mintSite(t, 1, elsewhere, nil)}, navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 1}, shared.ErrResourceNotFound},
		{"not offered", siteMap{1: mintSite(t, 1, center, nil)}, navigation.MineOrder{SiteID: 1, Resource: inventory.Gold, Duration: 1}, shared.ErrResourceNotFound},
		{"claimed by someone else", siteMap{1: mintSite(t, 1, center, &bob)}, navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 1}, shared.ErrNotSiteOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := newShip(t, 100, 100)
			ship.PlaceOrder(tt.order, 0)

			_, err := newEngine(tt.sites).Settle(context.Background(), ship, 5)

			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestSettle_MiningOwnSiteSucceeds(t *testing.T) {
	engine := newEngine(siteMap{1: mintSite(t, 1, center, &alice)})
	ship := newShip(t, 100, 100)
	ship.PlaceOrder(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 1}, 0)

	_, err := engine.Settle(context.Background(), ship, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, ship.Cargo().Quantity(inventory.Iron))
}

func TestSettle_MiningPropagatesInventoryFull(t *testing.T) {
	spec := navigation.DefaultShipSpec()
	spec.MaxCargoSize = 0
	ship, err := navigation.SpawnShip(1, "", alice, spec, center, 100, 100, 0)
	require.NoError(t, err)
	ship.PlaceOrder(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 1}, 0)

	_, err = newEngine(siteMap{1: mintSite(t, 1, center, nil)}).Settle(context.Background(), ship, 1)

	assert.ErrorIs(t, err, shared.ErrInventoryFull)
}

func TestSettle_IsIdempotentAtSameTick(t *testing.T) {
	engine := newEngine(siteMap{1: mintSite(t, 1, center, nil)})
	ship := newShip(t, 1000, 400)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.SouthWest, Speed: 700, Distance: 9}, 0)
	ship.PlaceOrder(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 2}, 0)

	for _, now := range []shared.Tick{4, 9, 30, 31} {
		_, err := engine.Settle(context.Background(), ship, now)
		require.NoError(t, err)
		first := ship.Digest()

		outcome, err := engine.Settle(context.Background(), ship, now)
		require.NoError(t, err)
		assert.False(t, outcome.Changed(), "tick %d", now)
		assert.Equal(t, first, ship.Digest(), "tick %d", now)
	}
}

func TestSettle_UnstampedHead(t *testing.T) {
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 1}, 0)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.West, Speed: 1000, Distance: 1}, 0)
	_, err := ship.DropOrder(0, false, 2)
	require.NoError(t, err)

	_, err = newEngine(nil).Settle(context.Background(), ship, 5)
	assert.ErrorIs(t, err, shared.ErrInvalidOrder)

	lenient := settlement.NewEngine(hexgrid.DefaultGrid(), nil, settlement.Options{RestampHeadOnDrop: true})
	_, err = lenient.Settle(context.Background(), ship, 5)
	require.NoError(t, err)
	head, _ := ship.Orders().Head()
	assert.Equal(t, shared.Tick(5), *head.Start)

	outcome, err := lenient.Settle(context.Background(), ship, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Moved)
}

func TestSettleRecharge_IgnoresQueue(t *testing.T) {
	ship := newShip(t, 100, 100)
	require.NoError(t, ship.SpendEnergy(60))

	outcome := newEngine(nil).SettleRecharge(ship, 3)

	assert.Equal(t, 30, outcome.Recharged)
	assert.Equal(t, 70, ship.Energy())
}

func TestOutcome_Events(t *testing.T) {
	ship := newShip(t, 1000, 1000)
	ship.PlaceOrder(navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 5}, 0)

	outcome, err := newEngine(nil).Settle(context.Background(), ship, 2)
	require.NoError(t, err)

	var types []navigation.EventType
	for _, ev := range outcome.Events(ship.Energy()) {
		types = append(types, ev.Type())
	}
	assert.Equal(t, []navigation.EventType{
		navigation.EventShipMoved,
		navigation.EventEnergyUsed,
		navigation.EventOrderUpdated,
	}, types)
}
