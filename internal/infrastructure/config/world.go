package config

import (
	"fmt"
	"time"
)

// WorldConfig describes the map and the clock ships are settled against
type WorldConfig struct {
	MaxX int `mapstructure:"max_x" validate:"min=1"`
	MaxY int `mapstructure:"max_y" validate:"min=1"`

	// Tick 0 starts at Genesis (RFC 3339); one tick passes every TickInterval
	Genesis      string        `mapstructure:"genesis" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"gt=0"`

	// Admin is the only identity allowed to mint sites. Empty disables minting.
	Admin string `mapstructure:"admin"`
}

// DefaultGenesis is used when world.genesis is not set
const DefaultGenesis = "2025-01-01T00:00:00Z"

// GenesisTime parses Genesis
func (w WorldConfig) GenesisTime() (time.Time, error) {
	genesis := w.Genesis
	if genesis == "" {
		genesis = DefaultGenesis
	}
	t, err := time.Parse(time.RFC3339, genesis)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid world.genesis %q: %w", w.Genesis, err)
	}
	return t, nil
}
