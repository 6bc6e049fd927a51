package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/adapters/persistence"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/application/setup"
	"github.com/andrescamacho/rareships-go/internal/application/ship"
	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/catalog"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/database"
)

// eventBusBuffer is how many events a slow subscriber may lag behind
const eventBusBuffer = 256

// Options adjust how a Runtime is assembled
type Options struct {
	// Register Prometheus collectors; only honoured when metrics.enabled is set
	EnableMetrics bool

	// Clock drives the tick source and event timestamps; nil uses the real clock
	Clock shared.Clock

	// DB replaces the configured connection (tests)
	DB *gorm.DB
}

// Runtime is a fully wired rareships instance: database, repositories,
// event sinks and a configured mediator
type Runtime struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *logging.SlogLogger
	Ticks    shared.TickSource
	Ships    *persistence.GormShipRepository
	Sites    *persistence.GormSiteRepository
	EventLog *persistence.GormEventLogRepository
	Bus      *ship.ShipEventBus
	Registry *setup.HandlerRegistry
	Mediator mediator.Mediator

	closers []io.Closer
	ownsDB  bool
}

// New connects to the configured database, migrates it and registers every handler
func New(cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	logger, logCloser, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	rt.Logger = logger
	if logCloser != nil {
		rt.closers = append(rt.closers, logCloser)
	}

	if err := rt.build(cfg, opts); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) build(cfg *config.Config, opts Options) error {
	grid, err := hexgrid.NewGrid(cfg.World.MaxX, cfg.World.MaxY)
	if err != nil {
		return fmt.Errorf("invalid world bounds: %w", err)
	}
	genesis, err := cfg.World.GenesisTime()
	if err != nil {
		return err
	}
	cat, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	spawnDefaults, err := SpawnDefaults(cfg.Ship)
	if err != nil {
		return err
	}

	var admin shared.Identity
	if cfg.World.Admin != "" {
		if admin, err = shared.NewIdentity(cfg.World.Admin); err != nil {
			return fmt.Errorf("invalid world.admin: %w", err)
		}
	}

	rt.DB = opts.DB
	if rt.DB == nil {
		rt.DB, err = database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.ownsDB = true
		if err := database.AutoMigrate(rt.DB); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	rt.Ticks = shared.NewClockTickSource(opts.Clock, genesis, cfg.World.TickInterval)
	rt.Ships = persistence.NewGormShipRepository(rt.DB)
	rt.Sites = persistence.NewGormSiteRepository(rt.DB)
	rt.EventLog = persistence.NewGormEventLogRepository(rt.DB, opts.Clock)
	rt.Bus = ship.NewShipEventBus(eventBusBuffer)

	var commandMetrics *metrics.CommandMetricsCollector
	if opts.EnableMetrics && cfg.Metrics.Enabled {
		if commandMetrics, err = registerMetrics(); err != nil {
			return err
		}
	}

	rt.Registry = setup.NewHandlerRegistry(setup.Dependencies{
		ShipRepo:          rt.Ships,
		SiteRepo:          rt.Sites,
		EventLog:          rt.EventLog,
		Publisher:         ship.MultiPublisher{rt.Bus, rt.EventLog},
		Ticks:             rt.Ticks,
		Grid:              grid,
		Catalog:           cat,
		SpawnDefaults:     spawnDefaults,
		Admin:             admin,
		RestampHeadOnDrop: cfg.Settlement.RestampHeadOnDrop,
		FleetLimiter:      FleetLimiter(cfg.Settlement),
		CommandMetrics:    commandMetrics,
	})

	rt.Mediator, err = rt.Registry.CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// registerMetrics creates the registry and installs the settlement recorder
func registerMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	settlementCollector := metrics.NewSettlementMetricsCollector()
	if err := settlementCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register settlement metrics: %w", err)
	}
	metrics.SetGlobalSettlementCollector(settlementCollector)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandMetrics, nil
}

// Context attaches the runtime logger so handlers and middleware can find it
func (rt *Runtime) Context(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, rt.Logger)
}

// Close releases the database and any log file
func (rt *Runtime) Close() error {
	var firstErr error
	if rt.DB != nil && rt.ownsDB {
		if err := database.Close(rt.DB); err != nil {
			firstErr = err
		}
	}
	for _, c := range rt.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewLogger builds the slog-backed logger described by cfg. The closer is
// non-nil only when the logger owns a file.
func NewLogger(cfg config.LoggingConfig) (*logging.SlogLogger, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "", "stderr":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	logger, err := logging.NewSlogLogger(w, cfg.Level, cfg.Format)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, err
	}
	return logger, closer, nil
}

// LoadCatalog returns the configured site level catalogue, or the built-in one
func LoadCatalog(cfg config.CatalogConfig) (*planet.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	return cat, nil
}

// SpawnDefaults turns ship settings into what SpawnShip gives a new ship.
// Start values above the maxima are clamped.
func SpawnDefaults(cfg config.ShipConfig) (shipCommands.SpawnDefaults, error) {
	spec := navigation.ShipSpec{
		MaxSpeed:         cfg.MaxSpeed,
		MaxInventorySize: cfg.MaxInventorySize,
		MaxCargoSize:     cfg.MaxCargoSize,
		MaxEnergy:        cfg.MaxEnergy,
		MaxHealth:        cfg.MaxHealth,
		RechargeRate:     cfg.RechargeRate,
	}
	if spec.MaxSpeed <= 0 {
		return shipCommands.SpawnDefaults{}, fmt.Errorf("ship.max_speed must be positive, got %d", spec.MaxSpeed)
	}

	defaults := shipCommands.SpawnDefaults{Spec: spec, Energy: spec.MaxEnergy, Health: spec.MaxHealth}
	if cfg.StartEnergy != nil {
		defaults.Energy = clamp(*cfg.StartEnergy, spec.MaxEnergy)
	}
	if cfg.StartHealth != nil {
		defaults.Health = clamp(*cfg.StartHealth, spec.MaxHealth)
	}
	return defaults, nil
}

// FleetLimiter throttles the fleet sweep to fleet_rate ships per second
func FleetLimiter(cfg config.SettlementConfig) *rate.Limiter {
	if cfg.FleetRate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.FleetBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.FleetRate), burst)
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
