package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "rareships"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "rareships"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// World defaults
	if cfg.World.MaxX == 0 {
		cfg.World.MaxX = 10000
	}
	if cfg.World.MaxY == 0 {
		cfg.World.MaxY = 10000
	}
	if cfg.World.Genesis == "" {
		cfg.World.Genesis = DefaultGenesis
	}
	if cfg.World.TickInterval == 0 {
		cfg.World.TickInterval = time.Second
	}

	// Ship defaults
	if cfg.Ship.MaxSpeed == 0 {
		cfg.Ship.MaxSpeed = 1000
	}
	if cfg.Ship.MaxInventorySize == 0 {
		cfg.Ship.MaxInventorySize = 4
	}
	if cfg.Ship.MaxCargoSize == 0 {
		cfg.Ship.MaxCargoSize = 4
	}
	if cfg.Ship.MaxEnergy == 0 {
		cfg.Ship.MaxEnergy = 100
	}
	if cfg.Ship.MaxHealth == 0 {
		cfg.Ship.MaxHealth = 100
	}
	if cfg.Ship.RechargeRate == 0 {
		cfg.Ship.RechargeRate = 10
	}

	// Settlement defaults
	if cfg.Settlement.FleetRate == 0 {
		cfg.Settlement.FleetRate = 50
	}
	if cfg.Settlement.FleetBurst == 0 {
		cfg.Settlement.FleetBurst = 10
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/rareships-daemon.pid"
	}
	if cfg.Daemon.SweepInterval == 0 {
		cfg.Daemon.SweepInterval = 10 * time.Second
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}
}
