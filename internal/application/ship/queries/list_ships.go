package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// ListShipsQuery lists ships in spawn order
type ListShipsQuery struct {
	Owner *shared.Identity // Optional: only ships owned by this identity
}

// ListShipsResponse represents the result of listing ships
type ListShipsResponse struct {
	Ships []*navigation.Ship
}

// ListShipsHandler handles the ListShips query
type ListShipsHandler struct {
	shipRepo navigation.ShipRepository
}

func NewListShipsHandler(shipRepo navigation.ShipRepository) *ListShipsHandler {
	return &ListShipsHandler{shipRepo: shipRepo}
}

// Handle executes the ListShips query
func (h *ListShipsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListShipsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListShipsQuery")
	}

	ids, err := h.shipRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	ships := make([]*navigation.Ship, 0, len(ids))
	for _, id := range ids {
		ship, err := h.shipRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list ships: %w", err)
		}
		if query.Owner != nil && !ship.IsOwnedBy(*query.Owner) {
			continue
		}
		ships = append(ships, ship)
	}

	return &ListShipsResponse{Ships: ships}, nil
}
