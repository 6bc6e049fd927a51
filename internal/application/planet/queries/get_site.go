package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
)

// GetSiteQuery reads a resource site by id
type GetSiteQuery struct {
	SiteID uint32
}

type GetSiteResponse struct {
	Site *planet.ResourceSite
}

// GetSiteHandler handles the GetSite query
type GetSiteHandler struct {
	siteRepo planet.SiteRepository
}

func NewGetSiteHandler(siteRepo planet.SiteRepository) *GetSiteHandler {
	return &GetSiteHandler{siteRepo: siteRepo}
}

func (h *GetSiteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSiteQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSiteQuery")
	}

	site, err := h.siteRepo.FindByID(ctx, query.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	return &GetSiteResponse{Site: site}, nil
}
