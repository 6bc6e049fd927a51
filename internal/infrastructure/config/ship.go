package config

// ShipConfig holds the stats every spawned ship starts with
type ShipConfig struct {
	MaxSpeed         int `mapstructure:"max_speed" validate:"min=1"`
	MaxInventorySize int `mapstructure:"max_inventory_size" validate:"min=0"`
	MaxCargoSize     int `mapstructure:"max_cargo_size" validate:"min=0"`
	MaxEnergy        int `mapstructure:"max_energy" validate:"min=0"`
	MaxHealth        int `mapstructure:"max_health" validate:"min=0"`
	RechargeRate     int `mapstructure:"recharge_rate" validate:"min=0"`

	// Starting values, clamped to the maxima; nil means full
	StartEnergy *int `mapstructure:"start_energy"`
	StartHealth *int `mapstructure:"start_health"`
}

// SettlementConfig tunes settlement behaviour
type SettlementConfig struct {
	// Give the new head a start tick when the head order is dropped
	RestampHeadOnDrop bool `mapstructure:"restamp_head_on_drop"`

	// Fleet sweep throttle, ships per second and burst
	FleetRate  float64 `mapstructure:"fleet_rate" validate:"gt=0"`
	FleetBurst int     `mapstructure:"fleet_burst" validate:"min=1"`
}
