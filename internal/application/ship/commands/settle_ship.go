package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

const (
	operationSettle   = "settle"
	operationRecharge = "settle_recharge"
)

// SettleShipCommand brings a ship up to the current tick.
// Anyone may settle any ship.
type SettleShipCommand struct {
	ShipID uint32
}

// SettleShipResponse carries the settled ship and what changed
type SettleShipResponse struct {
	Ship    *navigation.Ship
	Outcome *settlement.Outcome
}

// SettleShipHandler handles SettleShipCommand.
//
// On error nothing is saved: the ship stays exactly as it was before the call.
type SettleShipHandler struct {
	shipRepo  navigation.ShipRepository
	engine    *settlement.Engine
	ticks     shared.TickSource
	publisher navigation.EventPublisher
	locker    *common.ShipLocker
}

func NewSettleShipHandler(
	shipRepo navigation.ShipRepository,
	engine *settlement.Engine,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
	locker *common.ShipLocker,
) *SettleShipHandler {
	return &SettleShipHandler{
		shipRepo:  shipRepo,
		engine:    engine,
		ticks:     ticks,
		publisher: publisherOrNoOp(publisher),
		locker:    lockerOrNew(locker),
	}
}

func (h *SettleShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SettleShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleShipCommand")
	}

	unlock := h.locker.Lock(cmd.ShipID)
	defer unlock()

	ship, err := loadShip(ctx, h.shipRepo, cmd.ShipID)
	if err != nil {
		return nil, err
	}

	now := h.ticks.CurrentTick()
	outcome, err := h.engine.Settle(ctx, ship, now)
	if err != nil {
		metrics.RecordSettlementFailure(operationSettle, err)
		logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Settlement failed", map[string]interface{}{
			"ship_id": cmd.ShipID,
			"tick":    uint64(now),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to settle ship %d: %w", cmd.ShipID, err)
	}

	if err := commit(ctx, h.shipRepo, h.publisher, ship, outcome); err != nil {
		return nil, err
	}
	metrics.RecordSettlementOutcome(operationSettle, outcome)

	logOutcome(ctx, "Ship settled", ship, outcome)

	return &SettleShipResponse{Ship: ship, Outcome: outcome}, nil
}

// commit persists the settled ship and publishes what happened.
// The ship is saved even when nothing observable changed: recharge and head
// restamps still move tick stamps forward.
func commit(ctx context.Context, repo navigation.ShipRepository, publisher navigation.EventPublisher, ship *navigation.Ship, outcome *settlement.Outcome) error {
	if err := repo.Save(ctx, ship); err != nil {
		return fmt.Errorf("failed to save ship %d: %w", ship.ID(), err)
	}
	publisher.Publish(ctx, outcome.Events(ship.Energy())...)
	return nil
}

func logOutcome(ctx context.Context, message string, ship *navigation.Ship, outcome *settlement.Outcome) {
	level := logging.LevelInfo
	if !outcome.Changed() {
		level = logging.LevelDebug
	}

	metadata := map[string]interface{}{
		"ship_id":   ship.ID(),
		"tick":      uint64(outcome.Tick),
		"position":  ship.Position().String(),
		"energy":    ship.Energy(),
		"recharged": outcome.Recharged,
		"queue_len": ship.Orders().Len(),
	}
	if outcome.Moved > 0 {
		metadata["tiles_moved"] = outcome.Moved
	}
	if outcome.Mined != nil {
		metadata["mined"] = outcome.Mined.String()
	}
	if outcome.Deferred {
		metadata["deferred"] = true
	}
	logging.LoggerFromContext(ctx).Log(level, message, metadata)
}
