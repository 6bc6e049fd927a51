package inventory

import (
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// MaxStack is the largest quantity a single resource stack can hold
const MaxStack = 64

// Inventory is a bounded, order-preserving container of items.
//
// Invariants:
//   - Capacity is counted in slots (stacks), not units
//   - A resource stack never holds more than MaxStack units
//   - AddItem checks capacity BEFORE considering merges: a full inventory
//     rejects every item, even one that would have merged into an existing
//     stack. Callers rely on this ordering; do not move the check.
//   - Overflow spilled out of a merge is appended without a second capacity
//     check, so a spill may take the slot count past MaxSize
type Inventory struct {
	items   []Item
	maxSize int
}

// New creates an empty inventory with maxSize slots
func New(maxSize int) *Inventory {
	return &Inventory{items: make([]Item, 0, maxSize), maxSize: maxSize}
}

// Restore rebuilds an inventory from persisted state (used by repositories)
func Restore(maxSize int, items []Item) *Inventory {
	inv := New(maxSize)
	for _, item := range items {
		inv.items = append(inv.items, cloneItem(item))
	}
	return inv
}

// AddItem adds the item, stacking resources of the same type where possible
func (inv *Inventory) AddItem(item Item) error {
	if len(inv.items) >= inv.maxSize {
		return shared.NewInventoryFullError(len(inv.items), inv.maxSize)
	}

	switch it := item.(type) {
	case *Resource:
		inv.addResource(*it)
	case *Weapon, *Armor:
		inv.items = append(inv.items, cloneItem(it))
	default:
		return fmt.Errorf("unsupported item type %T", item)
	}
	return nil
}

// addResource merges into existing stacks in insertion order, carrying any
// overflow forward to the next stack of the same type
func (inv *Inventory) addResource(incoming Resource) {
	for _, existing := range inv.items {
		stack, ok := existing.(*Resource)
		if !ok || stack.Type != incoming.Type {
			continue
		}
		stack.Quantity += incoming.Quantity
		if stack.Quantity <= MaxStack {
			return
		}
		incoming.Quantity = stack.Quantity - MaxStack
		stack.Quantity = MaxStack
	}

	// Remaining units start new stacks, each capped at MaxStack
	for {
		chunk := min(incoming.Quantity, MaxStack)
		inv.items = append(inv.items, NewResource(incoming.Type, chunk))
		incoming.Quantity -= chunk
		if incoming.Quantity <= 0 {
			return
		}
	}
}

// Items returns a copy of the items in insertion order
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	for i, item := range inv.items {
		out[i] = cloneItem(item)
	}
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

func (inv *Inventory) MaxSize() int {
	return inv.maxSize
}

// IsFull checks if every slot is taken
func (inv *Inventory) IsFull() bool {
	return len(inv.items) >= inv.maxSize
}

// Quantity sums the units of a resource type across all stacks
func (inv *Inventory) Quantity(resourceType ResourceType) int {
	total := 0
	for _, item := range inv.items {
		if r, ok := item.(*Resource); ok && r.Type == resourceType {
			total += r.Quantity
		}
	}
	return total
}

func (inv *Inventory) String() string {
	return fmt.Sprintf("Inventory(%d/%d)", len(inv.items), inv.maxSize)
}

func cloneItem(item Item) Item {
	switch it := item.(type) {
	case *Resource:
		c := *it
		return &c
	case *Weapon:
		c := *it
		return &c
	case *Armor:
		c := *it
		return &c
	default:
		return item
	}
}
