package planet

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
)

// Level is the tier of a resource site
type Level int

const (
	Basic Level = iota
	Advanced
	Fortress
)

var levelNames = [...]string{
	Basic:    "BASIC",
	Advanced: "ADVANCED",
	Fortress: "FORTRESS",
}

// Levels lists all levels in ascending order
var Levels = []Level{Basic, Advanced, Fortress}

func (l Level) IsValid() bool {
	return l >= Basic && l <= Fortress
}

func (l Level) String() string {
	if l.IsValid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a name such as "FORTRESS" into a Level
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown site level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid site level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LevelSpec is what a level grants a site: per-resource extraction rates
// (units per tick of mining) and the number of stock slots
type LevelSpec struct {
	Rates   map[inventory.ResourceType]int
	Storage int
}

// Offers reports whether the resource is in the catalogue
func (s LevelSpec) Offers(resource inventory.ResourceType) bool {
	_, ok := s.Rates[resource]
	return ok
}

// Resources returns the catalogue in resource declaration order
func (s LevelSpec) Resources() []inventory.ResourceType {
	out := make([]inventory.ResourceType, 0, len(s.Rates))
	for rt := range s.Rates {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s LevelSpec) clone() LevelSpec {
	rates := make(map[inventory.ResourceType]int, len(s.Rates))
	for rt, rate := range s.Rates {
		rates[rt] = rate
	}
	return LevelSpec{Rates: rates, Storage: s.Storage}
}

func (s LevelSpec) validate(level Level) error {
	if len(s.Rates) == 0 {
		return fmt.Errorf("level %s offers no resources", level)
	}
	for rt, rate := range s.Rates {
		if !rt.IsValid() {
			return fmt.Errorf("level %s lists invalid resource %d", level, int(rt))
		}
		if rate <= 0 {
			return fmt.Errorf("level %s: rate for %s must be positive", level, rt)
		}
	}
	if s.Storage <= 0 {
		return fmt.Errorf("level %s: storage must be positive", level)
	}
	return nil
}

// Catalog maps every level to its spec
type Catalog struct {
	specs map[Level]LevelSpec
}

// NewCatalog validates that every level is described exactly once
func NewCatalog(specs map[Level]LevelSpec) (*Catalog, error) {
	c := &Catalog{specs: make(map[Level]LevelSpec, len(Levels))}
	for _, level := range Levels {
		spec, ok := specs[level]
		if !ok {
			return nil, fmt.Errorf("catalog is missing level %s", level)
		}
		if err := spec.validate(level); err != nil {
			return nil, err
		}
		c.specs[level] = spec.clone()
	}
	return c, nil
}

// Spec returns a copy of the level's spec
func (c *Catalog) Spec(level Level) (LevelSpec, error) {
	spec, ok := c.specs[level]
	if !ok {
		return LevelSpec{}, fmt.Errorf("unknown site level %s", level)
	}
	return spec.clone(), nil
}
