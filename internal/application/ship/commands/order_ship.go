package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// OrderShipCommand appends an order to the ship's queue
type OrderShipCommand struct {
	ShipID uint32
	Order  navigation.Order
}

func (*OrderShipCommand) RequiresCaller() {}

// OrderShipResponse reports where the order landed
type OrderShipResponse struct {
	Index int
	// Start is set only when the order went straight to the head of the queue
	Start       *shared.Tick
	QueueLength int
}

// OrderShipHandler handles OrderShipCommand
type OrderShipHandler struct {
	shipRepo  navigation.ShipRepository
	siteRepo  planet.SiteRepository
	ticks     shared.TickSource
	publisher navigation.EventPublisher
	locker    *common.ShipLocker
}

func NewOrderShipHandler(
	shipRepo navigation.ShipRepository,
	siteRepo planet.SiteRepository,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
	locker *common.ShipLocker,
) *OrderShipHandler {
	return &OrderShipHandler{
		shipRepo:  shipRepo,
		siteRepo:  siteRepo,
		ticks:     ticks,
		publisher: publisherOrNoOp(publisher),
		locker:    lockerOrNew(locker),
	}
}

func (h *OrderShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*OrderShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *OrderShipCommand")
	}
	if cmd.Order == nil {
		return nil, shared.NewInvalidOrderError("order is required")
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

	if err := h.validate(ctx, ship, cmd.Order); err != nil {
		return nil, err
	}

	now := h.ticks.CurrentTick()
	ship.PlaceOrder(cmd.Order, now)
	index := ship.Orders().Len() - 1

	if err := h.shipRepo.Save(ctx, ship); err != nil {
		return nil, fmt.Errorf("failed to save ship %d: %w", ship.ID(), err)
	}

	h.publisher.Publish(ctx, navigation.OrderCreatedEvent{
		EventHeader: navigation.EventHeader{Ship: ship.ID(), Tick: now},
		Kind:        cmd.Order.Kind(),
		Order:       cmd.Order.String(),
		Index:       index,
	})

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Order queued", map[string]interface{}{
		"ship_id": ship.ID(),
		"order":   cmd.Order.String(),
		"index":   index,
	})

	slot := ship.Orders().Orders()[index]
	return &OrderShipResponse{Index: index, Start: slot.Start, QueueLength: ship.Orders().Len()}, nil
}

func (h *OrderShipHandler) validate(ctx context.Context, ship *navigation.Ship, order navigation.Order) error {
	switch o := order.(type) {
	case navigation.MoveOrder:
		return navigation.ValidateMove(o, ship.MaxSpeed())
	case navigation.MineOrder:
		if o.Duration <= 0 {
			return navigation.ValidateMine(o, nil)
		}
		site, err := h.siteRepo.FindByID(ctx, o.SiteID)
		if errors.Is(err, shared.ErrSiteNotFound) {
			return navigation.ValidateMine(o, nil)
		}
		if err != nil {
			return fmt.Errorf("failed to load site %d: %w", o.SiteID, err)
		}
		return navigation.ValidateMine(o, site)
	default:
		return shared.NewInvalidOrderError(fmt.Sprintf("unsupported order type %T", order))
	}
}
