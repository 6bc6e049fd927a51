package inventory

import "fmt"

// ItemID is the opaque identifier of an atomic item
type ItemID uint32

// ResourceType is a closed enumeration of extractable resources
type ResourceType int

const (
	Iron ResourceType = iota
	Copper
	Silver
	Gold
	Uranium
)

var resourceNames = [...]string{
	Iron:    "IRON",
	Copper:  "COPPER",
	Silver:  "SILVER",
	Gold:    "GOLD",
	Uranium: "URANIUM",
}

// ResourceTypes lists all resource types in declaration order
var ResourceTypes = []ResourceType{Iron, Copper, Silver, Gold, Uranium}

func (r ResourceType) IsValid() bool {
	return r >= Iron && r <= Uranium
}

func (r ResourceType) String() string {
	if r.IsValid() {
		return resourceNames[r]
	}
	return fmt.Sprintf("ResourceType(%d)", int(r))
}

// ParseResourceType converts a name such as "IRON" into a ResourceType
func ParseResourceType(s string) (ResourceType, error) {
	for i, name := range resourceNames {
		if name == s {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

// MarshalText implements encoding.TextMarshaler so resource types read as names in YAML and JSON
func (r ResourceType) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid resource type %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Item is a closed sum type: Weapon, Armor or Resource.
// The unexported marker keeps other packages from adding variants, so every
// type switch over Item only has to handle these three.
type Item interface {
	ID() ItemID
	isItem()
}

// Weapon is an atomic, non-stackable item
type Weapon struct {
	ItemID     ItemID
	Damage     int
	Range      int
	EnergyCost int
}

// Armor is an atomic, non-stackable item
type Armor struct {
	ItemID  ItemID
	Defense int
}

// Resource is a stack of one resource type. The stack is its identity.
type Resource struct {
	Type     ResourceType
	Quantity int
}

func (w *Weapon) ID() ItemID { return w.ItemID }
func (a *Armor) ID() ItemID  { return a.ItemID }

// ID is always zero for resources
func (r *Resource) ID() ItemID { return 0 }

func (*Weapon) isItem()   {}
func (*Armor) isItem()    {}
func (*Resource) isItem() {}

// NewResource creates a resource stack
func NewResource(resourceType ResourceType, quantity int) *Resource {
	return &Resource{Type: resourceType, Quantity: quantity}
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s x%d", r.Type, r.Quantity)
}
