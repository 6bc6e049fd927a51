package ship_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/application/ship"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
)

func moved(shipID uint32) navigation.Event {
	return navigation.ShipMovedEvent{EventHeader: navigation.EventHeader{Ship: shipID, Tick: 1}, Tiles: 1}
}

func TestShipEventBus_DeliversToShipAndFirehose(t *testing.T) {
	bus := ship.NewShipEventBus(4)
	own := bus.Subscribe(1)
	other := bus.Subscribe(2)
	all := bus.SubscribeAll()

	bus.Publish(context.Background(), moved(1))

	require.Len(t, own, 1)
	assert.Len(t, other, 0)
	require.Len(t, all, 1)
	ev := <-own
	assert.Equal(t, navigation.EventShipMoved, ev.Type())
}

func TestShipEventBus_ShipZeroGetsOnlyItsOwnEvents(t *testing.T) {
	bus := ship.NewShipEventBus(4)
	zero := bus.Subscribe(0)
	all := bus.SubscribeAll()

	bus.Publish(context.Background(),
		moved(0),
		moved(5),
		navigation.SiteMintedEvent{EventHeader: navigation.EventHeader{Tick: 2}, SiteID: 1, Level: "BASIC"},
	)

	require.Len(t, zero, 1)
	assert.Equal(t, navigation.EventShipMoved, (<-zero).Type())
	assert.Len(t, all, 3)
}

func TestShipEventBus_UnsubscribeAll(t *testing.T) {
	bus := ship.NewShipEventBus(1)
	ch := bus.SubscribeAll()

	bus.UnsubscribeAll(ch)
	bus.Publish(context.Background(), moved(1))

	_, open := <-ch
	assert.False(t, open)
}

func TestShipEventBus_DropsWhenSubscriberIsFull(t *testing.T) {
	bus := ship.NewShipEventBus(1)
	ch := bus.Subscribe(1)

	bus.Publish(context.Background(), moved(1), moved(1), moved(1))

	assert.Len(t, ch, 1)
}

func TestShipEventBus_Unsubscribe(t *testing.T) {
	bus := ship.NewShipEventBus(1)
	ch := bus.Subscribe(3)

	bus.Unsubscribe(3, ch)

	assert.Equal(t, 0, bus.SubscriberCount(3))
	_, open := <-ch
	assert.False(t, open)
}

type collectingPublisher struct{ events []navigation.Event }

func (c *collectingPublisher) Publish(_ context.Context, events ...navigation.Event) {
	c.events = append(c.events, events...)
}

func TestMultiPublisher_FansOut(t *testing.T) {
	a, b := &collectingPublisher{}, &collectingPublisher{}
	pub := ship.MultiPublisher{a, nil, b}

	pub.Publish(context.Background(), moved(1), moved(2))

	assert.Len(t, a.events, 2)
	assert.Len(t, b.events, 2)
}
