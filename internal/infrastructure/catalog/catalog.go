// Package catalog loads the resource site level catalogue from YAML
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type file struct {
	Levels map[planet.Level]levelEntry `yaml:"levels"`
}

type levelEntry struct {
	Storage int                            `yaml:"storage"`
	Rates   map[inventory.ResourceType]int `yaml:"rates"`
}

// Default returns the built-in catalogue
func Default() (*planet.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalogue file. An empty path returns the built-in catalogue.
func Load(path string) (*planet.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes catalogue YAML. Every level must be present.
func Parse(data []byte) (*planet.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	specs := make(map[planet.Level]planet.LevelSpec, len(f.Levels))
	for level, entry := range f.Levels {
		specs[level] = planet.LevelSpec{Rates: entry.Rates, Storage: entry.Storage}
	}
	return planet.NewCatalog(specs)
}
