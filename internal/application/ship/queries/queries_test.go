package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/test/helpers"
)

func seed(t *testing.T) *helpers.MockShipRepository {
	t.Helper()
	repo := helpers.NewMockShipRepository()
	for id, owner := range []string{"alice", "bob", "alice"} {
		require.NoError(t, repo.Add(context.Background(), helpers.NewTestShip(uint32(id+1), owner, hexgrid.Position{X: id, Y: 0}, 0)))
	}
	return repo
}

func TestGetShip(t *testing.T) {
	repo := seed(t)
	h := queries.NewGetShipHandler(repo)

	resp, err := h.Handle(context.Background(), &queries.GetShipQuery{ShipID: 2})
	require.NoError(t, err)
	got := resp.(*queries.GetShipResponse)
	assert.Equal(t, uint32(2), got.Ship.ID())
	assert.Equal(t, got.Ship.Digest(), got.Digest)

	_, err = h.Handle(context.Background(), &queries.GetShipQuery{ShipID: 99})
	assert.ErrorIs(t, err, shared.ErrShipNotFound)
}

func TestListShips_SpawnOrderAndOwnerFilter(t *testing.T) {
	repo := seed(t)
	h := queries.NewListShipsHandler(repo)

	resp, err := h.Handle(context.Background(), &queries.ListShipsQuery{})
	require.NoError(t, err)
	all := resp.(*queries.ListShipsResponse).Ships
	require.Len(t, all, 3)
	assert.Equal(t, uint32(1), all[0].ID())
	assert.Equal(t, uint32(3), all[2].ID())

	alice := shared.MustNewIdentity("alice")
	resp, err = h.Handle(context.Background(), &queries.ListShipsQuery{Owner: &alice})
	require.NoError(t, err)
	mine := resp.(*queries.ListShipsResponse).Ships
	require.Len(t, mine, 2)
	assert.Equal(t, uint32(3), mine[1].ID())
}

type fakeEventLog struct {
	filter common.EventFilter
}

func (f *fakeEventLog) List(_ context.Context, filter common.EventFilter) ([]common.EventRecord, error) {
	f.filter = filter
	return []common.EventRecord{{ID: "e1", Type: "SHIP_SPAWNED"}}, nil
}

func TestListEvents_PassesFilter(t *testing.T) {
	log := &fakeEventLog{}
	h := queries.NewListEventsHandler(log)
	ship := uint32(4)

	resp, err := h.Handle(context.Background(), &queries.ListEventsQuery{ShipID: &ship, Type: "SHIP_MOVED", Limit: 5})
	require.NoError(t, err)

	assert.Len(t, resp.(*queries.ListEventsResponse).Events, 1)
	require.NotNil(t, log.filter.ShipID)
	assert.Equal(t, uint32(4), *log.filter.ShipID)
	assert.Equal(t, "SHIP_MOVED", log.filter.Type)
	assert.Equal(t, 5, log.filter.Limit)

	_, err = h.Handle(context.Background(), &queries.ListEventsQuery{Limit: -1})
	assert.Error(t, err)
}
