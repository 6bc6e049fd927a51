package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// GormSiteRepository implements planet.SiteRepository on GORM
type GormSiteRepository struct {
	db *gorm.DB
}

var _ planet.SiteRepository = (*GormSiteRepository)(nil)

func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// FindByID loads a site. Returns shared.ErrSiteNotFound if it does not exist.
func (r *GormSiteRepository) FindByID(ctx context.Context, id uint32) (*planet.ResourceSite, error) {
	var model SiteModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewSiteNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find site: %w", result.Error)
	}
	return modelToSite(&model)
}

// Add inserts a newly minted site. Returns shared.ErrAlreadyExists for a taken id.
func (r *GormSiteRepository) Add(ctx context.Context, site *planet.ResourceSite) error {
	model, err := siteToModel(site)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SiteModel{}).Where("id = ?", site.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check site: %w", err)
		}
		if count > 0 {
			return shared.NewSiteAlreadyExistsError(site.ID())
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add site: %w", err)
		}
		return nil
	})
}

func siteToModel(site *planet.ResourceSite) (*SiteModel, error) {
	spec := site.Spec()
	rates, err := json.Marshal(spec.Rates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode site rates: %w", err)
	}
	stock, err := encodeInventory(site.Stock())
	if err != nil {
		return nil, err
	}

	model := &SiteModel{
		ID:      site.ID(),
		Level:   site.Level().String(),
		X:       site.Position().X,
		Y:       site.Position().Y,
		Rates:   string(rates),
		Storage: spec.Storage,
		Stock:   stock,
	}
	if owner, ok := site.Owner(); ok {
		value := owner.Value()
		model.Owner = &value
	}
	return model, nil
}

func modelToSite(model *SiteModel) (*planet.ResourceSite, error) {
	level, err := planet.ParseLevel(model.Level)
	if err != nil {
		return nil, fmt.Errorf("site %d: %w", model.ID, err)
	}

	var rates map[inventory.ResourceType]int
	if err := json.Unmarshal([]byte(model.Rates), &rates); err != nil {
		return nil, fmt.Errorf("site %d: failed to decode rates: %w", model.ID, err)
	}
	stock, err := decodeInventory(model.Stock, model.Storage)
	if err != nil {
		return nil, fmt.Errorf("site %d: %w", model.ID, err)
	}

	var owner *shared.Identity
	if model.Owner != nil {
		id, err := shared.NewIdentity(*model.Owner)
		if err != nil {
			return nil, fmt.Errorf("site %d: invalid owner: %w", model.ID, err)
		}
		owner = &id
	}

	spec := planet.LevelSpec{Rates: rates, Storage: model.Storage}
	return planet.ReconstructSite(model.ID, level, spec, hexgrid.Position{X: model.X, Y: model.Y}, owner, stock)
}
