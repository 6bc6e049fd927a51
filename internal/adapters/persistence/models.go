package persistence

import (
	"time"
)

// ShipModel represents the ships table.
// Holds and the order queue are stored as JSON text (see codec.go).
type ShipModel struct {
	ID    uint32 `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name  string `gorm:"column:name;not null;default:''"`
	Owner string `gorm:"column:owner;not null;index"`

	MaxSpeed         int `gorm:"column:max_speed;not null"`
	MaxInventorySize int `gorm:"column:max_inventory_size;not null"`
	MaxCargoSize     int `gorm:"column:max_cargo_size;not null"`
	MaxEnergy        int `gorm:"column:max_energy;not null"`
	MaxHealth        int `gorm:"column:max_health;not null"`
	RechargeRate     int `gorm:"column:recharge_rate;not null"`

	X            int    `gorm:"column:x;not null"`
	Y            int    `gorm:"column:y;not null"`
	Energy       int    `gorm:"column:energy;not null"`
	Health       int    `gorm:"column:health;not null"`
	Inventory    string `gorm:"column:inventory;type:text"` // JSON array as text
	Cargo        string `gorm:"column:cargo;type:text"`     // JSON array as text
	Orders       string `gorm:"column:orders;type:text"`    // JSON array as text
	LastRecharge int64  `gorm:"column:last_recharge;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// SiteModel represents the resource_sites table
type SiteModel struct {
	ID    uint32  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Level string  `gorm:"column:level;not null"`
	X     int     `gorm:"column:x;not null"`
	Y     int     `gorm:"column:y;not null"`
	Owner *string `gorm:"column:owner"`
	// Catalogue entry captured at mint time
	Rates   string `gorm:"column:rates;type:text;not null"` // JSON object as text
	Storage int    `gorm:"column:storage;not null"`
	Stock   string `gorm:"column:stock;type:text"` // JSON array as text

	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (SiteModel) TableName() string {
	return "resource_sites"
}

// ShipEventModel represents the ship_events table (append-only)
type ShipEventModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Seq       int64     `gorm:"column:seq;not null;index"`
	ShipID    *uint32   `gorm:"column:ship_id;index"` // NULL for site events
	Type      string    `gorm:"column:type;not null;index"`
	Tick      int64     `gorm:"column:tick;not null"`
	Payload   string    `gorm:"column:payload;type:text"` // JSON as text
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ShipEventModel) TableName() string {
	return "ship_events"
}
