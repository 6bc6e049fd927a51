package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
	"github.com/andrescamacho/rareships-go/test/helpers"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func intPtr(v int) *int { return &v }

func TestSpawnDefaults_ClampsStartValues(t *testing.T) {
	cfg := config.Default().Ship
	cfg.StartEnergy = intPtr(500)
	cfg.StartHealth = intPtr(-3)

	defaults, err := bootstrap.SpawnDefaults(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.MaxEnergy, defaults.Energy)
	assert.Equal(t, 0, defaults.Health)
	assert.Equal(t, cfg.RechargeRate, defaults.Spec.RechargeRate)
}

func TestSpawnDefaults_FullWhenUnset(t *testing.T) {
	defaults, err := bootstrap.SpawnDefaults(config.Default().Ship)
	require.NoError(t, err)

	assert.Equal(t, navigation.DefaultShipSpec(), defaults.Spec)
	assert.Equal(t, defaults.Spec.MaxEnergy, defaults.Energy)
}

func TestSpawnDefaults_RejectsZeroSpeed(t *testing.T) {
	cfg := config.Default().Ship
	cfg.MaxSpeed = 0

	_, err := bootstrap.SpawnDefaults(cfg)
	assert.Error(t, err)
}

func TestFleetLimiter(t *testing.T) {
	limiter := bootstrap.FleetLimiter(config.SettlementConfig{FleetRate: 20, FleetBurst: 4})
	assert.Equal(t, rate.Limit(20), limiter.Limit())
	assert.Equal(t, 4, limiter.Burst())

	unlimited := bootstrap.FleetLimiter(config.SettlementConfig{})
	assert.Equal(t, rate.Inf, unlimited.Limit())
}

func TestLoadCatalog_DefaultsToBuiltIn(t *testing.T) {
	cat, err := bootstrap.LoadCatalog(config.CatalogConfig{})
	require.NoError(t, err)

	spec, err := cat.Spec(planet.Fortress)
	require.NoError(t, err)
	assert.Equal(t, 16, spec.Storage)
}

func TestNewLogger_RejectsUnknownOutput(t *testing.T) {
	_, _, err := bootstrap.NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "syslog"})
	assert.Error(t, err)
}

func TestNew_WiresMediatorOverDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.World.MaxX, cfg.World.MaxY = 40, 20
	cfg.World.TickInterval = time.Second

	genesis, err := cfg.World.GenesisTime()
	require.NoError(t, err)
	clock := fixedClock{now: genesis.Add(90 * time.Second)}

	rt, err := bootstrap.New(cfg, bootstrap.Options{Clock: clock, DB: helpers.NewTestDB(t)})
	require.NoError(t, err)
	defer rt.Close()

	assert.EqualValues(t, 90, rt.Ticks.CurrentTick())

	events := rt.Bus.Subscribe(7)
	defer rt.Bus.Unsubscribe(7, events)

	ctx := helpers.AsCaller(rt.Context(context.Background()), "alice")
	_, err = rt.Mediator.Send(ctx, &shipCommands.SpawnShipCommand{ShipID: 7, Name: "Wren"})
	require.NoError(t, err)

	resp, err := rt.Mediator.Send(ctx, &shipQueries.GetShipQuery{ShipID: 7})
	require.NoError(t, err)
	ship := resp.(*shipQueries.GetShipResponse).Ship
	assert.Equal(t, hexgrid.Position{X: 20, Y: 10}, ship.Position())

	select {
	case event := <-events:
		assert.Equal(t, navigation.EventShipSpawned, event.Type())
	default:
		t.Fatal("spawn event was not published on the bus")
	}

	recorded, err := rt.Mediator.Send(ctx, &shipQueries.ListEventsQuery{})
	require.NoError(t, err)
	assert.Len(t, recorded.(*shipQueries.ListEventsResponse).Events, 1)
}
