package setup

import (
	"golang.org/x/time/rate"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	planetCommands "github.com/andrescamacho/rareships-go/internal/application/planet/commands"
	planetQueries "github.com/andrescamacho/rareships-go/internal/application/planet/queries"
	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// Dependencies are the ports and settings the handlers are built from.
// EventLog, Publisher, FleetLimiter and CommandMetrics are optional.
type Dependencies struct {
	ShipRepo  navigation.ShipRepository
	SiteRepo  planet.SiteRepository
	EventLog  common.EventLogReader
	Publisher navigation.EventPublisher
	Ticks     shared.TickSource

	Grid    *hexgrid.Grid
	Catalog *planet.Catalog

	SpawnDefaults     shipCommands.SpawnDefaults
	Admin             shared.Identity
	RestampHeadOnDrop bool
	FleetLimiter      *rate.Limiter

	CommandMetrics *metrics.CommandMetricsCollector
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	deps   Dependencies
	engine *settlement.Engine
	locker *common.ShipLocker
}

// NewHandlerRegistry creates a new handler registry. All handlers built from
// one registry share a ship locker, so they serialize on the same ships.
func NewHandlerRegistry(deps Dependencies) *HandlerRegistry {
	if deps.Grid == nil {
		deps.Grid = hexgrid.DefaultGrid()
	}
	engine := settlement.NewEngine(deps.Grid, deps.SiteRepo, settlement.Options{
		RestampHeadOnDrop: deps.RestampHeadOnDrop,
	})
	return &HandlerRegistry{
		deps:   deps,
		engine: engine,
		locker: common.NewShipLocker(),
	}
}

// Engine returns the settlement engine the handlers use
func (r *HandlerRegistry) Engine() *settlement.Engine {
	return r.engine
}

// RegisterShipHandlers registers ship commands and queries:
//   - SpawnShip, OrderShip, DropOrder
//   - SettleShip, SettleRecharge, SettleFleet
//   - GetShip, ListShips
func (r *HandlerRegistry) RegisterShipHandlers(m mediator.Mediator) error {
	d := r.deps

	spawnHandler := shipCommands.NewSpawnShipHandler(d.ShipRepo, d.Grid, d.Ticks, d.Publisher, d.SpawnDefaults)
	if err := mediator.RegisterHandler[*shipCommands.SpawnShipCommand](m, spawnHandler); err != nil {
		return err
	}

	orderHandler := shipCommands.NewOrderShipHandler(d.ShipRepo, d.SiteRepo, d.Ticks, d.Publisher, r.locker)
	if err := mediator.RegisterHandler[*shipCommands.OrderShipCommand](m, orderHandler); err != nil {
		return err
	}

	dropHandler := shipCommands.NewDropOrderHandler(d.ShipRepo, d.Ticks, d.Publisher, r.locker, d.RestampHeadOnDrop)
	if err := mediator.RegisterHandler[*shipCommands.DropOrderCommand](m, dropHandler); err != nil {
		return err
	}

	settleHandler := shipCommands.NewSettleShipHandler(d.ShipRepo, r.engine, d.Ticks, d.Publisher, r.locker)
	if err := mediator.RegisterHandler[*shipCommands.SettleShipCommand](m, settleHandler); err != nil {
		return err
	}

	rechargeHandler := shipCommands.NewSettleRechargeHandler(d.ShipRepo, r.engine, d.Ticks, d.Publisher, r.locker)
	if err := mediator.RegisterHandler[*shipCommands.SettleRechargeCommand](m, rechargeHandler); err != nil {
		return err
	}

	// The sweep dispatches SettleShipCommand back through m
	fleetHandler := shipCommands.NewSettleFleetHandler(d.ShipRepo, m, d.FleetLimiter)
	if err := mediator.RegisterHandler[*shipCommands.SettleFleetCommand](m, fleetHandler); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*shipQueries.GetShipQuery](m, shipQueries.NewGetShipHandler(d.ShipRepo)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*shipQueries.ListShipsQuery](m, shipQueries.NewListShipsHandler(d.ShipRepo))
}

// RegisterPlanetHandlers registers MintSite and GetSite
func (r *HandlerRegistry) RegisterPlanetHandlers(m mediator.Mediator) error {
	d := r.deps

	mintHandler := planetCommands.NewMintSiteHandler(d.SiteRepo, d.Catalog, d.Grid, d.Admin, d.Ticks, d.Publisher)
	if err := mediator.RegisterHandler[*planetCommands.MintSiteCommand](m, mintHandler); err != nil {
		return err
	}

	return mediator.RegisterHandler[*planetQueries.GetSiteQuery](m, planetQueries.NewGetSiteHandler(d.SiteRepo))
}

// RegisterEventHandlers registers ListEvents when an event log is available
func (r *HandlerRegistry) RegisterEventHandlers(m mediator.Mediator) error {
	if r.deps.EventLog == nil {
		return nil
	}
	return mediator.RegisterHandler[*shipQueries.ListEventsQuery](m, shipQueries.NewListEventsHandler(r.deps.EventLog))
}

// CreateConfiguredMediator creates a mediator with every handler registered.
//
// Middleware order, outermost first: request logging, command metrics,
// caller check.
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()

	m.Use(logging.RequestLoggingMiddleware())
	if r.deps.CommandMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(r.deps.CommandMetrics))
	}
	m.Use(auth.RequireCallerMiddleware())

	if err := r.RegisterShipHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterPlanetHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterEventHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
