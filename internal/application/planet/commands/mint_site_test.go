package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/application/planet/commands"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/test/helpers"
)

func newHandler(sites *helpers.MockSiteRepository, publisher *helpers.MockPublisher) *commands.MintSiteHandler {
	return commands.NewMintSiteHandler(
		sites,
		helpers.TestCatalog(),
		helpers.TestGrid(),
		shared.MustNewIdentity("overseer"),
		shared.NewMockTickSource(12),
		publisher,
	)
}

func TestMintSite_AdminMints(t *testing.T) {
	sites := helpers.NewMockSiteRepository()
	publisher := helpers.NewMockPublisher()
	owner := shared.MustNewIdentity("alice")

	resp, err := newHandler(sites, publisher).Handle(helpers.AsCaller(context.Background(), "overseer"), &commands.MintSiteCommand{
		SiteID:   3,
		Level:    planet.Advanced,
		Position: hexgrid.Position{X: 105, Y: -1},
		Owner:    &owner,
	})
	require.NoError(t, err)

	site := resp.(*commands.MintSiteResponse).Site
	assert.Equal(t, hexgrid.Position{X: 5, Y: 99}, site.Position())
	got, ok := site.Owner()
	require.True(t, ok)
	assert.Equal(t, owner, got)
	assert.Equal(t, 1, sites.Count())

	events := publisher.Events()
	require.Len(t, events, 1)
	minted := events[0].(navigation.SiteMintedEvent)
	assert.Equal(t, uint32(3), minted.SiteID)
	assert.Equal(t, "ADVANCED", minted.Level)
	assert.Equal(t, shared.Tick(12), minted.At())
}

func TestMintSite_OnlyAdmin(t *testing.T) {
	sites := helpers.NewMockSiteRepository()

	_, err := newHandler(sites, helpers.NewMockPublisher()).Handle(helpers.AsCaller(context.Background(), "alice"), &commands.MintSiteCommand{
		SiteID: 3,
		Level:  planet.Basic,
	})

	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
	assert.Zero(t, sites.Count())
}

func TestMintSite_NoAdminConfiguredMeansNobody(t *testing.T) {
	h := commands.NewMintSiteHandler(helpers.NewMockSiteRepository(), helpers.TestCatalog(), helpers.TestGrid(), shared.Identity{}, shared.NewMockTickSource(0), nil)

	_, err := h.Handle(helpers.AsCaller(context.Background(), "overseer"), &commands.MintSiteCommand{SiteID: 1, Level: planet.Basic})

	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
}

func TestMintSite_DuplicateID(t *testing.T) {
	sites := helpers.NewMockSiteRepository()
	h := newHandler(sites, helpers.NewMockPublisher())
	ctx := helpers.AsCaller(context.Background(), "overseer")

	_, err := h.Handle(ctx, &commands.MintSiteCommand{SiteID: 1, Level: planet.Basic})
	require.NoError(t, err)
	_, err = h.Handle(ctx, &commands.MintSiteCommand{SiteID: 1, Level: planet.Fortress})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}
