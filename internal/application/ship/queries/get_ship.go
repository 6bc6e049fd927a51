package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

// GetShipQuery reads a ship as stored, without settling it
type GetShipQuery struct {
	ShipID uint32
}

// GetShipResponse carries the ship and its state digest
type GetShipResponse struct {
	Ship   *navigation.Ship
	Digest string
}

// GetShipHandler handles the GetShip query
type GetShipHandler struct {
	shipRepo navigation.ShipRepository
}

func NewGetShipHandler(shipRepo navigation.ShipRepository) *GetShipHandler {
	return &GetShipHandler{shipRepo: shipRepo}
}

// Handle executes the GetShip query
func (h *GetShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetShipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShipQuery")
	}

	ship, err := h.shipRepo.FindByID(ctx, query.ShipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}

	return &GetShipResponse{Ship: ship, Digest: ship.Digest()}, nil
}
