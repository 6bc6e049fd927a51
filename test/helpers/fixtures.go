package helpers

import (
	"context"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// TestCatalog returns a small catalogue with easy-to-check numbers:
// BASIC mines IRON at 2, ADVANCED adds GOLD, FORTRESS offers URANIUM.
func TestCatalog() *planet.Catalog {
	cat, err := planet.NewCatalog(map[planet.Level]planet.LevelSpec{
		planet.Basic:    {Rates: map[inventory.ResourceType]int{inventory.Iron: 2}, Storage: 4},
		planet.Advanced: {Rates: map[inventory.ResourceType]int{inventory.Iron: 3, inventory.Gold: 1}, Storage: 8},
		planet.Fortress: {Rates: map[inventory.ResourceType]int{inventory.Uranium: 1, inventory.Iron: 4}, Storage: 16},
	})
	if err != nil {
		panic(err)
	}
	return cat
}

// TestGrid returns a 100x100 grid
func TestGrid() *hexgrid.Grid {
	grid, err := hexgrid.NewGrid(100, 100)
	if err != nil {
		panic(err)
	}
	return grid
}

// NewTestShip spawns a default-spec ship with full energy
func NewTestShip(id uint32, owner string, position hexgrid.Position, now shared.Tick) *navigation.Ship {
	spec := navigation.DefaultShipSpec()
	ship, err := navigation.SpawnShip(id, "", shared.MustNewIdentity(owner), spec, position, spec.MaxEnergy, spec.MaxHealth, now)
	if err != nil {
		panic(err)
	}
	return ship
}

// NewTestSite mints a site; an empty owner leaves it unclaimed
func NewTestSite(id uint32, level planet.Level, position hexgrid.Position, owner string) *planet.ResourceSite {
	var who *shared.Identity
	if owner != "" {
		identity := shared.MustNewIdentity(owner)
		who = &identity
	}
	site, err := planet.MintSite(id, level, TestCatalog(), position, who)
	if err != nil {
		panic(err)
	}
	return site
}

// AsCaller returns a context acting as the named identity
func AsCaller(ctx context.Context, who string) context.Context {
	return auth.WithCaller(ctx, shared.MustNewIdentity(who))
}
