package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/rareships-go/internal/domain/economy"
)

func TestMoveCostPerTile(t *testing.T) {
	tests := []struct {
		name     string
		speed    int
		maxSpeed int
		expected int
	}{
		{"full speed", 1000, 1000, 100},
		{"half speed", 500, 1000, 50},
		{"truncates", 333, 1000, 33},
		{"stopped", 0, 1000, 0},
		{"no max speed", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, economy.MoveCostPerTile(tt.speed, tt.maxSpeed))
		})
	}
}

func TestMineCost(t *testing.T) {
	assert.Equal(t, 1000, economy.MineCost(10))
	assert.Equal(t, economy.MineCostPerTick, economy.MineCost(1))
}

func TestRecharge_ClampsToMax(t *testing.T) {
	assert.Equal(t, 100, economy.Recharge(95, 100, 3, 10))
	assert.Equal(t, 100, economy.Recharge(0, 100, 1<<62, 10))
}

func TestRecharge_Linear(t *testing.T) {
	assert.Equal(t, 50, economy.Recharge(20, 100, 3, 10))
}

func TestRecharge_NoChange(t *testing.T) {
	assert.Equal(t, 40, economy.Recharge(40, 100, 0, 10), "no elapsed time")
	assert.Equal(t, 100, economy.Recharge(100, 100, 5, 10), "already full")
}

func TestRecharge_StrictlyIncreasesBelowMax(t *testing.T) {
	for energy := 0; energy < 100; energy += 7 {
		for elapsed := uint64(1); elapsed < 20; elapsed++ {
			got := economy.Recharge(energy, 100, elapsed, 3)
			assert.Greater(t, got, energy)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestAffordableTiles(t *testing.T) {
	assert.Equal(t, 5, economy.AffordableTiles(5, 100, 500))
	assert.Equal(t, 3, economy.AffordableTiles(5, 100, 350))
	assert.Equal(t, 0, economy.AffordableTiles(5, 100, 99))
	assert.Equal(t, 5, economy.AffordableTiles(5, 0, 0))
}
