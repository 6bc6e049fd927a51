package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// SettleRechargeCommand only applies accumulated recharge; the order queue is left alone
type SettleRechargeCommand struct {
	ShipID uint32
}

// SettleRechargeHandler handles SettleRechargeCommand
type SettleRechargeHandler struct {
	shipRepo  navigation.ShipRepository
	engine    *settlement.Engine
	ticks     shared.TickSource
	publisher navigation.EventPublisher
	locker    *common.ShipLocker
}

func NewSettleRechargeHandler(
	shipRepo navigation.ShipRepository,
	engine *settlement.Engine,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
	locker *common.ShipLocker,
) *SettleRechargeHandler {
	return &SettleRechargeHandler{
		shipRepo:  shipRepo,
		engine:    engine,
		ticks:     ticks,
		publisher: publisherOrNoOp(publisher),
		locker:    lockerOrNew(locker),
	}
}

func (h *SettleRechargeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SettleRechargeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleRechargeCommand")
	}

	unlock := h.locker.Lock(cmd.ShipID)
	defer unlock()

	ship, err := loadShip(ctx, h.shipRepo, cmd.ShipID)
	if err != nil {
		metrics.RecordSettlementFailure(operationRecharge, err)
		return nil, err
	}

	outcome := h.engine.SettleRecharge(ship, h.ticks.CurrentTick())

	if err := commit(ctx, h.shipRepo, h.publisher, ship, outcome); err != nil {
		return nil, err
	}
	metrics.RecordSettlementOutcome(operationRecharge, outcome)

	logOutcome(ctx, "Ship recharged", ship, outcome)

	return &SettleShipResponse{Ship: ship, Outcome: outcome}, nil
}
