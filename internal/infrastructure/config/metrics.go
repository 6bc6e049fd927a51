package config

import (
	"net"
	"strconv"
)

// MetricsConfig controls the sweeper daemon's Prometheus endpoint.
// The CLI never serves metrics.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Bind address; localhost unless scraped from another host
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Scrape path, e.g. /metrics
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Addr returns the host:port the endpoint listens on
func (c MetricsConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
