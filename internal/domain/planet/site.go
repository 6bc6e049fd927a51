package planet

import (
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// ResourceSite is a minable location on the grid.
//
// The level's catalogue is copied into the site when it is minted and never
// changes afterwards, even if the catalog file is edited later.
type ResourceSite struct {
	id       uint32
	level    Level
	spec     LevelSpec
	position hexgrid.Position
	owner    *shared.Identity
	stock    *inventory.Inventory
}

// MintSite creates a new unclaimed site (or a claimed one when owner is non-nil)
func MintSite(id uint32, level Level, catalog *Catalog, position hexgrid.Position, owner *shared.Identity) (*ResourceSite, error) {
	spec, err := catalog.Spec(level)
	if err != nil {
		return nil, err
	}
	return &ResourceSite{
		id:       id,
		level:    level,
		spec:     spec,
		position: position,
		owner:    copyOwner(owner),
		stock:    inventory.New(spec.Storage),
	}, nil
}

// ReconstructSite rebuilds a site from persistence
func ReconstructSite(id uint32, level Level, spec LevelSpec, position hexgrid.Position, owner *shared.Identity, stock *inventory.Inventory) (*ResourceSite, error) {
	if err := spec.validate(level); err != nil {
		return nil, fmt.Errorf("site %d: %w", id, err)
	}
	if stock == nil {
		stock = inventory.New(spec.Storage)
	}
	return &ResourceSite{
		id:       id,
		level:    level,
		spec:     spec.clone(),
		position: position,
		owner:    copyOwner(owner),
		stock:    stock,
	}, nil
}

func (s *ResourceSite) ID() uint32                  { return s.id }
func (s *ResourceSite) Level() Level                { return s.level }
func (s *ResourceSite) Position() hexgrid.Position  { return s.position }
func (s *ResourceSite) Stock() *inventory.Inventory { return s.stock }
func (s *ResourceSite) Spec() LevelSpec             { return s.spec.clone() }

// Owner returns the owner, or false if the site is unclaimed
func (s *ResourceSite) Owner() (shared.Identity, bool) {
	if s.owner == nil {
		return shared.Identity{}, false
	}
	return *s.owner, true
}

// Offers reports whether the site's catalogue includes the resource
func (s *ResourceSite) Offers(resource inventory.ResourceType) bool {
	return s.spec.Offers(resource)
}

// Rate returns units extracted per tick of mining, 0 if not offered
func (s *ResourceSite) Rate(resource inventory.ResourceType) int {
	return s.spec.Rates[resource]
}

// IsAt reports whether the site sits on the given tile
func (s *ResourceSite) IsAt(p hexgrid.Position) bool {
	return s.position == p
}

// CanBeMinedBy checks owner gating: unclaimed sites are open to everyone
func (s *ResourceSite) CanBeMinedBy(who shared.Identity) bool {
	return s.owner == nil || s.owner.Equals(who)
}

func (s *ResourceSite) String() string {
	return fmt.Sprintf("Site(%d, %s, %s)", s.id, s.level, s.position)
}

func copyOwner(owner *shared.Identity) *shared.Identity {
	if owner == nil || owner.IsZero() {
		return nil
	}
	o := *owner
	return &o
}
