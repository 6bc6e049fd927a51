package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_MatchesSpawnStats(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 1000, cfg.Ship.MaxSpeed)
	assert.Equal(t, 4, cfg.Ship.MaxInventorySize)
	assert.Equal(t, 4, cfg.Ship.MaxCargoSize)
	assert.Equal(t, 100, cfg.Ship.MaxEnergy)
	assert.Equal(t, 100, cfg.Ship.MaxHealth)
	assert.Equal(t, 10, cfg.Ship.RechargeRate)
	assert.Equal(t, 10000, cfg.World.MaxX)
	assert.Equal(t, time.Second, cfg.World.TickInterval)
	assert.False(t, cfg.Settlement.RestampHeadOnDrop)
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
database:
  type: sqlite
  path: ":memory:"
world:
  max_x: 50
  max_y: 40
  admin: overseer
  genesis: "2024-06-01T00:00:00Z"
  tick_interval: 2s
ship:
  recharge_rate: 3
  start_energy: 20
settlement:
  restamp_head_on_drop: true
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 50, cfg.World.MaxX)
	assert.Equal(t, 40, cfg.World.MaxY)
	assert.Equal(t, "overseer", cfg.World.Admin)
	assert.Equal(t, 2*time.Second, cfg.World.TickInterval)
	assert.Equal(t, 3, cfg.Ship.RechargeRate)
	require.NotNil(t, cfg.Ship.StartEnergy)
	assert.Equal(t, 20, *cfg.Ship.StartEnergy)
	assert.Nil(t, cfg.Ship.StartHealth)
	assert.True(t, cfg.Settlement.RestampHeadOnDrop)

	genesis, err := cfg.World.GenesisTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), genesis)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "database:\n  type: sqlite\nworld:\n  admin: overseer\n")
	t.Setenv("RS_WORLD_ADMIN", "someone-else")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", cfg.World.Admin)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"database type": "database:\n  type: mysql\n",
		"log level":     "database:\n  type: sqlite\nlogging:\n  level: loud\n",
		"genesis":       "database:\n  type: sqlite\nworld:\n  genesis: yesterday\n",
		"file output":   "database:\n  type: sqlite\nlogging:\n  output: file\n",
		"idle pool":     "database:\n  type: sqlite\n  pool:\n    max_open: 2\n    max_idle: 3\n",
		"metrics path":  "database:\n  type: sqlite\nmetrics:\n  path: metrics\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	handler := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultIdentity)

	require.NoError(t, handler.SetDefaultIdentity("pilot-7"))
	loaded, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "pilot-7", loaded.DefaultIdentity)

	require.NoError(t, handler.ClearDefaultIdentity())
	loaded, err = handler.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.DefaultIdentity)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "rareships", Password: "pw", Name: "rareships", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=rareships password=pw dbname=rareships sslmode=disable", cfg.DSN())

	cfg.URL = "postgresql://rareships@db/rareships"
	assert.Equal(t, cfg.URL, cfg.DSN())
}

func TestDatabaseConfig_SQLitePath(t *testing.T) {
	memory := config.DatabaseConfig{Type: "sqlite"}
	assert.Equal(t, config.MemoryDatabase, memory.SQLitePath())
	assert.True(t, memory.IsEphemeral())

	file := config.DatabaseConfig{Type: "sqlite", Path: "world.db"}
	assert.Equal(t, "world.db", file.SQLitePath())
	assert.False(t, file.IsEphemeral())

	assert.False(t, (&config.DatabaseConfig{Type: "postgres"}).IsEphemeral())
}

func TestMetricsConfig_Addr(t *testing.T) {
	assert.Equal(t, "localhost:9100", config.MetricsConfig{Host: "localhost", Port: 9100}.Addr())
	assert.Equal(t, "[::1]:9100", config.MetricsConfig{Host: "::1", Port: 9100}.Addr())
}
