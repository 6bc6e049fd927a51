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

func move(distance int) navigation.MoveOrder {
	return navigation.MoveOrder{Direction: hexgrid.East, Speed: 1000, Distance: distance}
}

func TestEnqueue_StampsOnlyOnEmptyQueue(t *testing.T) {
	q := navigation.NewOrderQueue()

	q.Enqueue(move(1), 5)
	q.Enqueue(move(2), 6)

	orders := q.Orders()
	require.Len(t, orders, 2)
	require.NotNil(t, orders[0].Start)
	assert.Equal(t, shared.Tick(5), *orders[0].Start)
	assert.Nil(t, orders[1].Start)
}

func TestPopAndRestamp_StartsNextOrder(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(1), 0)
	q.Enqueue(move(2), 0)

	done := q.PopAndRestamp(9)

	assert.Equal(t, move(1), done)
	head, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, move(2), head.Order)
	assert.Equal(t, shared.Tick(9), *head.Start)
}

func TestPopAndRestamp_EmptiesQueue(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(1), 0)

	q.PopAndRestamp(3)

	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.PopAndRestamp(4))
}

func TestReplaceHead(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(5), 0)

	q.ReplaceHead(move(2), 3)

	head, _ := q.Head()
	assert.Equal(t, move(2), head.Order)
	assert.Equal(t, shared.Tick(3), *head.Start)
}

func TestRemove_HeadLeavesSuccessorUnstamped(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(1), 0)
	q.Enqueue(move(2), 0)

	_, err := q.Remove(0)
	require.NoError(t, err)

	head, ok := q.Head()
	require.True(t, ok)
	assert.False(t, head.Started())

	assert.True(t, q.RestampHead(4))
	head, _ = q.Head()
	assert.Equal(t, shared.Tick(4), *head.Start)
	assert.False(t, q.RestampHead(5), "already stamped")
}

func TestRemove_OutOfRange(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(1), 0)

	_, err := q.Remove(1)
	assert.ErrorIs(t, err, shared.ErrInvalidOrder)
	_, err = q.Remove(-1)
	assert.ErrorIs(t, err, shared.ErrInvalidOrder)
	assert.Equal(t, 1, q.Len())
}

func TestOrders_ReturnsCopies(t *testing.T) {
	q := navigation.NewOrderQueue()
	q.Enqueue(move(1), 2)

	orders := q.Orders()
	*orders[0].Start = 99

	head, _ := q.Head()
	assert.Equal(t, shared.Tick(2), *head.Start)
}

type fakeCatalogue map[inventory.ResourceType]bool

func (f fakeCatalogue) Offers(r inventory.ResourceType) bool { return f[r] }

func TestValidateMove(t *testing.T) {
	tests := []struct {
		name  string
		order navigation.MoveOrder
		ok    bool
	}{
		{"valid", navigation.MoveOrder{Direction: hexgrid.West, Speed: 500, Distance: 3}, true},
		{"zero speed allowed", navigation.MoveOrder{Direction: hexgrid.West, Speed: 0, Distance: 3}, true},
		{"max speed allowed", navigation.MoveOrder{Direction: hexgrid.West, Speed: 1000, Distance: 1}, true},
		{"negative speed", navigation.MoveOrder{Direction: hexgrid.West, Speed: -1, Distance: 3}, false},
		{"too fast", navigation.MoveOrder{Direction: hexgrid.West, Speed: 1001, Distance: 3}, false},
		{"zero distance", navigation.MoveOrder{Direction: hexgrid.West, Speed: 100, Distance: 0}, false},
		{"bad direction", navigation.MoveOrder{Direction: hexgrid.Direction(42), Speed: 100, Distance: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := navigation.ValidateMove(tt.order, 1000)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, shared.ErrInvalidOrder)
			}
		})
	}
}

func TestValidateMine(t *testing.T) {
	site := fakeCatalogue{inventory.Iron: true}

	assert.NoError(t, navigation.ValidateMine(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 3}, site))
	assert.ErrorIs(t, navigation.ValidateMine(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 0}, site), shared.ErrInvalidOrder)
	assert.ErrorIs(t, navigation.ValidateMine(navigation.MineOrder{SiteID: 1, Resource: inventory.Gold, Duration: 3}, site), shared.ErrInvalidOrder)
	assert.ErrorIs(t, navigation.ValidateMine(navigation.MineOrder{SiteID: 1, Resource: inventory.Iron, Duration: 3}, nil), shared.ErrSiteNotFound)
}
