package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// DropOrderCommand removes the order at Index from the ship's queue
type DropOrderCommand struct {
	ShipID uint32
	Index  int
}

func (*DropOrderCommand) RequiresCaller() {}

type DropOrderResponse struct {
	Dropped   navigation.Order
	Remaining int
}

// DropOrderHandler handles DropOrderCommand.
//
// Dropping the head leaves the next order without a start tick unless the
// handler was built with restampHead.
type DropOrderHandler struct {
	shipRepo    navigation.ShipRepository
	ticks       shared.TickSource
	publisher   navigation.EventPublisher
	locker      *common.ShipLocker
	restampHead bool
}

func NewDropOrderHandler(
	shipRepo navigation.ShipRepository,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
	locker *common.ShipLocker,
	restampHead bool,
) *DropOrderHandler {
	return &DropOrderHandler{
		shipRepo:    shipRepo,
		ticks:       ticks,
		publisher:   publisherOrNoOp(publisher),
		locker:      lockerOrNew(locker),
		restampHead: restampHead,
	}
}

func (h *DropOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DropOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DropOrderCommand")
	}

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	unlock := h.locker.Lock(cmd.ShipID)
	defer unlock()

	ship, err := loadOwnedShip(ctx, h.shipRepo, cmd.ShipID, caller)
	if err != nil {
		return nil, err
	}

	now := h.ticks.CurrentTick()
	dropped, err := ship.DropOrder(cmd.Index, h.restampHead, now)
	if err != nil {
		return nil, err
	}

	if err := h.shipRepo.Save(ctx, ship); err != nil {
		return nil, fmt.Errorf("failed to save ship %d: %w", ship.ID(), err)
	}

	h.publisher.Publish(ctx, navigation.OrderDroppedEvent{
		EventHeader: navigation.EventHeader{Ship: ship.ID(), Tick: now},
		Kind:        dropped.Kind(),
		Order:       dropped.String(),
		Index:       cmd.Index,
	})

	logger := logging.LoggerFromContext(ctx)
	logger.Log(logging.LevelInfo, "Order dropped", map[string]interface{}{
		"ship_id": ship.ID(),
		"order":   dropped.String(),
		"index":   cmd.Index,
	})
	if cmd.Index == 0 && !h.restampHead && !ship.Orders().IsEmpty() {
		logger.Log(logging.LevelWarn, "New head order has no start tick; settlement will reject it", map[string]interface{}{
			"ship_id": ship.ID(),
		})
	}

	return &DropOrderResponse{Dropped: dropped, Remaining: ship.Orders().Len()}, nil
}
