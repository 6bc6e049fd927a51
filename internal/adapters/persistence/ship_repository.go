package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// GormShipRepository implements navigation.ShipRepository on GORM
type GormShipRepository struct {
	db *gorm.DB
}

var _ navigation.ShipRepository = (*GormShipRepository)(nil)

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(db *gorm.DB) *GormShipRepository {
	return &GormShipRepository{db: db}
}

// FindByID loads a ship. Returns shared.ErrShipNotFound if it does not exist.
func (r *GormShipRepository) FindByID(ctx context.Context, id uint32) (*navigation.Ship, error) {
	var model ShipModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewShipNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find ship: %w", result.Error)
	}

	return modelToShip(&model)
}

// Add inserts a new ship. Returns shared.ErrAlreadyExists for a taken id.
func (r *GormShipRepository) Add(ctx context.Context, ship *navigation.Ship) error {
	model, err := shipToModel(ship)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ShipModel{}).Where("id = ?", ship.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check ship: %w", err)
		}
		if count > 0 {
			return shared.NewShipAlreadyExistsError(ship.ID())
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add ship: %w", err)
		}
		return nil
	})
}

// Save writes the dynamic state of an existing ship
func (r *GormShipRepository) Save(ctx context.Context, ship *navigation.Ship) error {
	model, err := shipToModel(ship)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ShipModel{}).
		Where("id = ?", ship.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save ship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewShipNotFoundError(ship.ID())
	}
	return nil
}

// ListIDs returns every ship id in spawn order
func (r *GormShipRepository) ListIDs(ctx context.Context) ([]uint32, error) {
	var ids []uint32
	result := r.db.WithContext(ctx).
		Model(&ShipModel{}).
		Order("created_at ASC, id ASC").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships: %w", result.Error)
	}
	return ids, nil
}

func shipToModel(ship *navigation.Ship) (*ShipModel, error) {
	inv, err := encodeInventory(ship.Inventory())
	if err != nil {
		return nil, err
	}
	cargo, err := encodeInventory(ship.Cargo())
	if err != nil {
		return nil, err
	}
	orders, err := encodeOrders(ship.Orders())
	if err != nil {
		return nil, err
	}

	spec := ship.Spec()
	return &ShipModel{
		ID:               ship.ID(),
		Name:             ship.Name(),
		Owner:            ship.Owner().Value(),
		MaxSpeed:         spec.MaxSpeed,
		MaxInventorySize: spec.MaxInventorySize,
		MaxCargoSize:     spec.MaxCargoSize,
		MaxEnergy:        spec.MaxEnergy,
		MaxHealth:        spec.MaxHealth,
		RechargeRate:     spec.RechargeRate,
		X:                ship.Position().X,
		Y:                ship.Position().Y,
		Energy:           ship.Energy(),
		Health:           ship.Health(),
		Inventory:        inv,
		Cargo:            cargo,
		Orders:           orders,
		LastRecharge:     int64(ship.LastRecharge()),
	}, nil
}

func modelToShip(model *ShipModel) (*navigation.Ship, error) {
	owner, err := shared.NewIdentity(model.Owner)
	if err != nil {
		return nil, fmt.Errorf("ship %d: invalid owner: %w", model.ID, err)
	}

	spec := navigation.ShipSpec{
		MaxSpeed:         model.MaxSpeed,
		MaxInventorySize: model.MaxInventorySize,
		MaxCargoSize:     model.MaxCargoSize,
		MaxEnergy:        model.MaxEnergy,
		MaxHealth:        model.MaxHealth,
		RechargeRate:     model.RechargeRate,
	}

	inv, err := decodeInventory(model.Inventory, spec.MaxInventorySize)
	if err != nil {
		return nil, fmt.Errorf("ship %d: %w", model.ID, err)
	}
	cargo, err := decodeInventory(model.Cargo, spec.MaxCargoSize)
	if err != nil {
		return nil, fmt.Errorf("ship %d: %w", model.ID, err)
	}
	orders, err := decodeOrders(model.Orders)
	if err != nil {
		return nil, fmt.Errorf("ship %d: %w", model.ID, err)
	}

	return navigation.ReconstructShip(model.ID, model.Name, owner, spec, navigation.ShipState{
		Position:     hexgrid.Position{X: model.X, Y: model.Y},
		Energy:       model.Energy,
		Health:       model.Health,
		Inventory:    inv,
		Cargo:        cargo,
		Orders:       orders,
		LastRecharge: shared.Tick(model.LastRecharge),
	}), nil
}
