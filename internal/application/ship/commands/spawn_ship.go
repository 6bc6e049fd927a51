package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// SpawnShipCommand creates a ship owned by the caller
type SpawnShipCommand struct {
	ShipID uint32
	Name   string
}

func (*SpawnShipCommand) RequiresCaller() {}

// SpawnShipResponse carries the new ship
type SpawnShipResponse struct {
	Ship *navigation.Ship
}

// SpawnDefaults is what every new ship starts with
type SpawnDefaults struct {
	Spec   navigation.ShipSpec
	Energy int
	Health int
	// Position nil spawns at the center of the grid
	Position *hexgrid.Position
}

// DefaultSpawnDefaults returns full energy and health at the grid center
func DefaultSpawnDefaults() SpawnDefaults {
	spec := navigation.DefaultShipSpec()
	return SpawnDefaults{Spec: spec, Energy: spec.MaxEnergy, Health: spec.MaxHealth}
}

// SpawnShipHandler handles SpawnShipCommand
type SpawnShipHandler struct {
	shipRepo  navigation.ShipRepository
	grid      *hexgrid.Grid
	ticks     shared.TickSource
	publisher navigation.EventPublisher
	defaults  SpawnDefaults
}

func NewSpawnShipHandler(
	shipRepo navigation.ShipRepository,
	grid *hexgrid.Grid,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
	defaults SpawnDefaults,
) *SpawnShipHandler {
	return &SpawnShipHandler{
		shipRepo:  shipRepo,
		grid:      grid,
		ticks:     ticks,
		publisher: publisherOrNoOp(publisher),
		defaults:  defaults,
	}
}

func (h *SpawnShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SpawnShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SpawnShipCommand")
	}

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	position := h.grid.Center()
	if h.defaults.Position != nil {
		position = h.grid.Wrap(*h.defaults.Position)
	}
	now := h.ticks.CurrentTick()

	ship, err := navigation.SpawnShip(cmd.ShipID, cmd.Name, caller, h.defaults.Spec, position, h.defaults.Energy, h.defaults.Health, now)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn ship %d: %w", cmd.ShipID, err)
	}

	if err := h.shipRepo.Add(ctx, ship); err != nil {
		return nil, fmt.Errorf("failed to spawn ship %d: %w", cmd.ShipID, err)
	}

	h.publisher.Publish(ctx, navigation.ShipSpawnedEvent{
		EventHeader: navigation.EventHeader{Ship: ship.ID(), Tick: now},
		Owner:       caller.Value(),
		Name:        ship.Name(),
		Position:    ship.Position(),
	})

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Ship spawned", map[string]interface{}{
		"ship_id":  ship.ID(),
		"owner":    caller.Value(),
		"position": ship.Position().String(),
		"tick":     uint64(now),
	})

	return &SpawnShipResponse{Ship: ship}, nil
}
