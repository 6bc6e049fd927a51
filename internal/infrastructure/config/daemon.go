package config

import "time"

// DaemonConfig holds fleet sweep daemon configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// How often every ship is settled
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"required,gt=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
