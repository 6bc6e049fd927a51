package navigation

import (
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// OrderQueue is the FIFO of a ship's pending orders.
//
// Only the head carries a start tick. A newly enqueued order is stamped only
// when it lands on an empty queue; otherwise it is stamped when the order in
// front of it completes (PopAndRestamp).
type OrderQueue struct {
	orders []QueuedOrder
}

func NewOrderQueue() *OrderQueue {
	return &OrderQueue{}
}

// RestoreOrderQueue rebuilds a queue from persisted slots
func RestoreOrderQueue(orders []QueuedOrder) *OrderQueue {
	q := &OrderQueue{orders: make([]QueuedOrder, 0, len(orders))}
	for _, o := range orders {
		q.orders = append(q.orders, copySlot(o))
	}
	return q
}

// Enqueue appends an order, stamping it with now if the queue was empty
func (q *OrderQueue) Enqueue(order Order, now shared.Tick) {
	slot := QueuedOrder{Order: order}
	if len(q.orders) == 0 {
		slot.Start = stamp(now)
	}
	q.orders = append(q.orders, slot)
}

// Head returns the first slot, or false on an empty queue
func (q *OrderQueue) Head() (QueuedOrder, bool) {
	if len(q.orders) == 0 {
		return QueuedOrder{}, false
	}
	return copySlot(q.orders[0]), true
}

// PopAndRestamp removes the head and starts the next order at now
func (q *OrderQueue) PopAndRestamp(now shared.Tick) Order {
	if len(q.orders) == 0 {
		return nil
	}
	done := q.orders[0].Order
	q.orders = q.orders[1:]
	if len(q.orders) > 0 {
		q.orders[0].Start = stamp(now)
	}
	return done
}

// ReplaceHead swaps the head for a remainder order that starts at now
func (q *OrderQueue) ReplaceHead(order Order, now shared.Tick) {
	if len(q.orders) == 0 {
		return
	}
	q.orders[0] = QueuedOrder{Order: order, Start: stamp(now)}
}

// RestampHead gives an unstamped head the start tick now
func (q *OrderQueue) RestampHead(now shared.Tick) bool {
	if len(q.orders) == 0 || q.orders[0].Start != nil {
		return false
	}
	q.orders[0].Start = stamp(now)
	return true
}

// Remove deletes the order at index.
//
// Removing the head does not stamp the order that takes its place; the
// caller decides whether to call RestampHead.
func (q *OrderQueue) Remove(index int) (Order, error) {
	if index < 0 || index >= len(q.orders) {
		return nil, shared.NewInvalidOrderError(fmt.Sprintf("index %d out of range (queue has %d orders)", index, len(q.orders)))
	}
	removed := q.orders[index].Order
	q.orders = append(q.orders[:index], q.orders[index+1:]...)
	return removed, nil
}

func (q *OrderQueue) Len() int {
	return len(q.orders)
}

func (q *OrderQueue) IsEmpty() bool {
	return len(q.orders) == 0
}

// Orders returns a copy of all slots, head first
func (q *OrderQueue) Orders() []QueuedOrder {
	out := make([]QueuedOrder, len(q.orders))
	for i, o := range q.orders {
		out[i] = copySlot(o)
	}
	return out
}

func copySlot(o QueuedOrder) QueuedOrder {
	if o.Start != nil {
		o.Start = stamp(*o.Start)
	}
	return o
}
