package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

func spawn(t *testing.T) *navigation.Ship {
	t.Helper()
	ship, err := navigation.SpawnShip(1, "scout", shared.MustNewIdentity("alice"),
		navigation.DefaultShipSpec(), hexgrid.Position{X: 5000, Y: 5000}, 100, 100, 0)
	require.NoError(t, err)
	return ship
}

func TestSpawnShip_Defaults(t *testing.T) {
	ship := spawn(t)

	assert.Equal(t, uint32(1), ship.ID())
	assert.Equal(t, "scout", ship.Name())
	assert.Equal(t, 100, ship.Energy())
	assert.Equal(t, 4, ship.Inventory().MaxSize())
	assert.Equal(t, 4, ship.Cargo().MaxSize())
	assert.True(t, ship.Orders().IsEmpty())
	assert.True(t, ship.IsOwnedBy(shared.MustNewIdentity("alice")))
	assert.False(t, ship.IsOwnedBy(shared.MustNewIdentity("bob")))
}

func TestSpawnShip_ClampsEnergy(t *testing.T) {
	ship, err := navigation.SpawnShip(1, "", shared.MustNewIdentity("alice"),
		navigation.DefaultShipSpec(), hexgrid.Position{}, 500, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, ship.Energy())
}

func TestSpawnShip_RejectsMissingOwner(t *testing.T) {
	_, err := navigation.SpawnShip(1, "", shared.Identity{}, navigation.DefaultShipSpec(), hexgrid.Position{}, 100, 100, 0)
	assert.Error(t, err)
}

func TestSpawnShip_RejectsZeroMaxSpeed(t *testing.T) {
	spec := navigation.DefaultShipSpec()
	spec.MaxSpeed = 0
	_, err := navigation.SpawnShip(1, "", shared.MustNewIdentity("alice"), spec, hexgrid.Position{}, 100, 100, 0)
	assert.Error(t, err)
}

func TestSpendEnergy(t *testing.T) {
	ship := spawn(t)

	require.NoError(t, ship.SpendEnergy(30))
	assert.Equal(t, 70, ship.Energy())

	err := ship.SpendEnergy(71)
	assert.ErrorIs(t, err, shared.ErrInsufficientEnergy)
	assert.Equal(t, 70, ship.Energy())
}

func TestDropOrder_RestampOption(t *testing.T) {
	for _, restamp := range []bool{false, true} {
		ship := spawn(t)
		ship.PlaceOrder(move(1), 0)
		ship.PlaceOrder(move(2), 0)

		_, err := ship.DropOrder(0, restamp, 7)
		require.NoError(t, err)

		head, _ := ship.Orders().Head()
		assert.Equal(t, restamp, head.Started())
	}
}

func TestDigest_TracksState(t *testing.T) {
	a := spawn(t)
	b := spawn(t)
	assert.Equal(t, a.Digest(), b.Digest())

	require.NoError(t, b.ReceiveCargo(inventory.NewResource(inventory.Iron, 1)))
	assert.NotEqual(t, a.Digest(), b.Digest())

	c := spawn(t)
	c.PlaceOrder(move(3), 0)
	assert.NotEqual(t, a.Digest(), c.Digest())
}
