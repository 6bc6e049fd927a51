package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/application/ship"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// MintSiteCommand creates a resource site. Only the world admin may mint.
type MintSiteCommand struct {
	SiteID   uint32
	Level    planet.Level
	Position hexgrid.Position
	// Owner nil leaves the site unclaimed, minable by anyone
	Owner *shared.Identity
}

func (*MintSiteCommand) RequiresCaller() {}

type MintSiteResponse struct {
	Site *planet.ResourceSite
}

// MintSiteHandler handles MintSiteCommand
type MintSiteHandler struct {
	siteRepo  planet.SiteRepository
	catalog   *planet.Catalog
	grid      *hexgrid.Grid
	admin     shared.Identity
	ticks     shared.TickSource
	publisher navigation.EventPublisher
}

func NewMintSiteHandler(
	siteRepo planet.SiteRepository,
	catalog *planet.Catalog,
	grid *hexgrid.Grid,
	admin shared.Identity,
	ticks shared.TickSource,
	publisher navigation.EventPublisher,
) *MintSiteHandler {
	if publisher == nil {
		publisher = ship.NoOpPublisher{}
	}
	return &MintSiteHandler{
		siteRepo:  siteRepo,
		catalog:   catalog,
		grid:      grid,
		admin:     admin,
		ticks:     ticks,
		publisher: publisher,
	}
}

func (h *MintSiteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*MintSiteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MintSiteCommand")
	}

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if h.admin.IsZero() || !caller.Equals(h.admin) {
		return nil, shared.NewNotAuthorizedError(fmt.Sprintf("%s may not mint sites", caller))
	}

	position := h.grid.Wrap(cmd.Position)
	site, err := planet.MintSite(cmd.SiteID, cmd.Level, h.catalog, position, cmd.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to mint site %d: %w", cmd.SiteID, err)
	}

	if err := h.siteRepo.Add(ctx, site); err != nil {
		return nil, fmt.Errorf("failed to mint site %d: %w", cmd.SiteID, err)
	}

	h.publisher.Publish(ctx, navigation.SiteMintedEvent{
		EventHeader: navigation.EventHeader{Tick: h.ticks.CurrentTick()},
		SiteID:      site.ID(),
		Level:       site.Level().String(),
		Position:    site.Position(),
	})

	metadata := map[string]interface{}{
		"site_id":  site.ID(),
		"level":    site.Level().String(),
		"position": site.Position().String(),
	}
	if owner, ok := site.Owner(); ok {
		metadata["owner"] = owner.Value()
	}
	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Site minted", metadata)

	return &MintSiteResponse{Site: site}, nil
}
