package navigation

import (
	"encoding/hex"
	"fmt"
	"io"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
)

// Digest fingerprints the ship's full state with BLAKE3.
// Two ships with the same digest are indistinguishable to settlement.
func (s *Ship) Digest() string {
	h := blake3.New(32, nil)
	fmt.Fprintf(h, "ship|%d|%s|%s|%+v\n", s.id, s.name, s.owner, s.spec)
	fmt.Fprintf(h, "state|%d|%d|%d|%d|%d\n", s.position.X, s.position.Y, s.energy, s.health, s.lastRecharge)
	writeItems(h, "inventory", s.inventory.Items())
	writeItems(h, "cargo", s.cargo.Items())
	for i, slot := range s.orders.Orders() {
		start := "-"
		if slot.Start != nil {
			start = fmt.Sprint(uint64(*slot.Start))
		}
		fmt.Fprintf(h, "order|%d|%s|%s\n", i, slot.Order, start)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeItems(w io.Writer, label string, items []inventory.Item) {
	for i, item := range items {
		fmt.Fprintf(w, "%s|%d|%T|%+v\n", label, i, item, item)
	}
}
