package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/ship"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

func loadShip(ctx context.Context, repo navigation.ShipRepository, id uint32) (*navigation.Ship, error) {
	s, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ship %d: %w", id, err)
	}
	return s, nil
}

func loadOwnedShip(ctx context.Context, repo navigation.ShipRepository, id uint32, caller shared.Identity) (*navigation.Ship, error) {
	s, err := loadShip(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !s.IsOwnedBy(caller) {
		return nil, shared.NewNotOwnerError(id, caller)
	}
	return s, nil
}

func publisherOrNoOp(p navigation.EventPublisher) navigation.EventPublisher {
	if p == nil {
		return ship.NoOpPublisher{}
	}
	return p
}

func lockerOrNew(l *common.ShipLocker) *common.ShipLocker {
	if l == nil {
		return common.NewShipLocker()
	}
	return l
}
