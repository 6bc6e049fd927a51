package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	planetCommands "github.com/andrescamacho/rareships-go/internal/application/planet/commands"
	planetQueries "github.com/andrescamacho/rareships-go/internal/application/planet/queries"
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

func TestCreateConfiguredMediator_EndToEnd(t *testing.T) {
	ticks := shared.NewMockTickSource(0)
	repos := helpers.NewTestRepositories(t, nil)

	registry := setup.NewHandlerRegistry(setup.Dependencies{
		ShipRepo:      repos.Ships,
		SiteRepo:      repos.Sites,
		EventLog:      repos.EventLog,
		Publisher:     repos.EventLog,
		Ticks:         ticks,
		Grid:          helpers.TestGrid(),
		Catalog:       helpers.TestCatalog(),
		SpawnDefaults: shipCommands.DefaultSpawnDefaults(),
		Admin:         shared.MustNewIdentity("overseer"),
	})
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	alice := helpers.AsCaller(context.Background(), "alice")
	admin := helpers.AsCaller(context.Background(), "overseer")

	// Commands acting for a caller are rejected before reaching their handler
	_, err = m.Send(context.Background(), &shipCommands.SpawnShipCommand{ShipID: 1})
	require.ErrorIs(t, err, shared.ErrNotAuthorized)

	_, err = m.Send(alice, &shipCommands.SpawnShipCommand{ShipID: 1, Name: "Kestrel"})
	require.NoError(t, err)

	_, err = m.Send(admin, &planetCommands.MintSiteCommand{SiteID: 4, Level: planet.Basic, Position: hexgrid.Position{X: 51, Y: 50}})
	require.NoError(t, err)
	resp, err := m.Send(context.Background(), &planetQueries.GetSiteQuery{SiteID: 4})
	require.NoError(t, err)
	assert.Equal(t, planet.Basic, resp.(*planetQueries.GetSiteResponse).Site.Level())

	// One tile east at full speed onto the site, then one tick of mining
	_, err = m.Send(alice, &shipCommands.OrderShipCommand{ShipID: 1, Order: navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: 1}})
	require.NoError(t, err)
	_, err = m.Send(alice, &shipCommands.OrderShipCommand{ShipID: 1, Order: navigation.MineOrder{SiteID: 4, Resource: inventory.Iron, Duration: 1}})
	require.NoError(t, err)

	ticks.Set(1)
	_, err = m.Send(context.Background(), &shipCommands.SettleFleetCommand{})
	require.NoError(t, err)

	// 100 spent on the move; recharge refills 10 per tick until mining can afford 100
	ticks.Set(11)
	resp, err = m.Send(context.Background(), &shipCommands.SettleFleetCommand{})
	require.NoError(t, err)
	sweep := resp.(*shipCommands.SettleFleetResponse)
	assert.Equal(t, 1, sweep.Settled)
	assert.Empty(t, sweep.Failures)

	resp, err = m.Send(context.Background(), &shipQueries.GetShipQuery{ShipID: 1})
	require.NoError(t, err)
	ship := resp.(*shipQueries.GetShipResponse).Ship
	assert.Equal(t, "Kestrel", ship.Name())
	assert.Equal(t, hexgrid.Position{X: 51, Y: 50}, ship.Position())
	assert.Equal(t, 2, ship.Cargo().Quantity(inventory.Iron))
	assert.Equal(t, 0, ship.Energy())
	assert.True(t, ship.Orders().IsEmpty())

	resp, err = m.Send(context.Background(), &shipQueries.ListEventsQuery{Type: string(navigation.EventResourceMined)})
	require.NoError(t, err)
	assert.Len(t, resp.(*shipQueries.ListEventsResponse).Events, 1)
}
