package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

const (
	itemKindWeapon   = "WEAPON"
	itemKindArmor    = "ARMOR"
	itemKindResource = "RESOURCE"
)

// itemRecord is the stored shape of one inventory slot
type itemRecord struct {
	Kind       string                  `json:"kind"`
	ID         uint32                  `json:"id,omitempty"`
	Damage     int                     `json:"damage,omitempty"`
	Range      int                     `json:"range,omitempty"`
	EnergyCost int                     `json:"energy_cost,omitempty"`
	Defense    int                     `json:"defense,omitempty"`
	Resource   *inventory.ResourceType `json:"resource,omitempty"`
	Quantity   int                     `json:"quantity,omitempty"`
}

// orderRecord is the stored shape of one queue slot
type orderRecord struct {
	Kind      navigation.OrderKind    `json:"kind"`
	Direction *hexgrid.Direction      `json:"direction,omitempty"`
	Speed     int                     `json:"speed,omitempty"`
	Distance  int                     `json:"distance,omitempty"`
	SiteID    uint32                  `json:"site_id,omitempty"`
	Resource  *inventory.ResourceType `json:"resource,omitempty"`
	Duration  int                     `json:"duration,omitempty"`
	Start     *uint64                 `json:"start,omitempty"`
}

func encodeInventory(inv *inventory.Inventory) (string, error) {
	records := make([]itemRecord, 0, inv.Len())
	for _, item := range inv.Items() {
		switch it := item.(type) {
		case *inventory.Weapon:
			records = append(records, itemRecord{Kind: itemKindWeapon, ID: uint32(it.ItemID), Damage: it.Damage, Range: it.Range, EnergyCost: it.EnergyCost})
		case *inventory.Armor:
			records = append(records, itemRecord{Kind: itemKindArmor, ID: uint32(it.ItemID), Defense: it.Defense})
		case *inventory.Resource:
			rt := it.Type
			records = append(records, itemRecord{Kind: itemKindResource, Resource: &rt, Quantity: it.Quantity})
		default:
			return "", fmt.Errorf("unsupported item type %T", item)
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode inventory: %w", err)
	}
	return string(data), nil
}

func decodeInventory(data string, maxSize int) (*inventory.Inventory, error) {
	if data == "" {
		return inventory.New(maxSize), nil
	}
	var records []itemRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}

	items := make([]inventory.Item, 0, len(records))
	for _, r := range records {
		switch r.Kind {
		case itemKindWeapon:
			items = append(items, &inventory.Weapon{ItemID: inventory.ItemID(r.ID), Damage: r.Damage, Range: r.Range, EnergyCost: r.EnergyCost})
		case itemKindArmor:
			items = append(items, &inventory.Armor{ItemID: inventory.ItemID(r.ID), Defense: r.Defense})
		case itemKindResource:
			if r.Resource == nil {
				return nil, fmt.Errorf("resource item without resource type")
			}
			items = append(items, inventory.NewResource(*r.Resource, r.Quantity))
		default:
			return nil, fmt.Errorf("unknown item kind %q", r.Kind)
		}
	}
	return inventory.Restore(maxSize, items), nil
}

func encodeOrders(queue *navigation.OrderQueue) (string, error) {
	slots := queue.Orders()
	records := make([]orderRecord, 0, len(slots))
	for _, slot := range slots {
		var record orderRecord
		switch o := slot.Order.(type) {
		case navigation.MoveOrder:
			dir := o.Direction
			record = orderRecord{Kind: navigation.OrderKindMove, Direction: &dir, Speed: o.Speed, Distance: o.Distance}
		case navigation.MineOrder:
			rt := o.Resource
			record = orderRecord{Kind: navigation.OrderKindMine, SiteID: o.SiteID, Resource: &rt, Duration: o.Duration}
		default:
			return "", fmt.Errorf("unsupported order type %T", slot.Order)
		}
		if slot.Start != nil {
			start := uint64(*slot.Start)
			record.Start = &start
		}
		records = append(records, record)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode orders: %w", err)
	}
	return string(data), nil
}

func decodeOrders(data string) (*navigation.OrderQueue, error) {
	if data == "" {
		return navigation.NewOrderQueue(), nil
	}
	var records []orderRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	slots := make([]navigation.QueuedOrder, 0, len(records))
	for _, r := range records {
		var slot navigation.QueuedOrder
		switch r.Kind {
		case navigation.OrderKindMove:
			if r.Direction == nil {
				return nil, fmt.Errorf("move order without direction")
			}
			slot.Order = navigation.MoveOrder{Direction: *r.Direction, Speed: r.Speed, Distance: r.Distance}
		case navigation.OrderKindMine:
			if r.Resource == nil {
				return nil, fmt.Errorf("mine order without resource")
			}
			slot.Order = navigation.MineOrder{SiteID: r.SiteID, Resource: *r.Resource, Duration: r.Duration}
		default:
			return nil, fmt.Errorf("unknown order kind %q", r.Kind)
		}
		if r.Start != nil {
			start := shared.Tick(*r.Start)
			slot.Start = &start
		}
		slots = append(slots, slot)
	}
	return navigation.RestoreOrderQueue(slots), nil
}
