package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskPassword(t *testing.T) {
	masked := maskPassword("postgresql://rs:hunter2@db:5432/rareships")
	assert.NotContains(t, masked, "hunter2")
	assert.Contains(t, masked, "@db:5432/rareships")
	assert.Equal(t, "postgresql://db:5432/rareships", maskPassword("postgresql://db:5432/rareships"))
}

func TestValidationError_NamesFlags(t *testing.T) {
	err := validate.Struct(moveFlags{ShipID: 1, Direction: "UP", Speed: 0, Distance: 3})
	require.Error(t, err)

	msg := validationError(err).Error()
	assert.Contains(t, msg, "--direction")
	assert.Contains(t, msg, "--speed")
	assert.NotContains(t, msg, "--distance")
}

func TestMineFlags_AcceptKnownResource(t *testing.T) {
	assert.NoError(t, validate.Struct(mineFlags{ShipID: 1, SiteID: 2, Resource: "GOLD", Duration: 4}))
	assert.Error(t, validate.Struct(mineFlags{ShipID: 1, SiteID: 2, Resource: "gold", Duration: 4}))
}

func TestRootCommand_HasCommandGroups(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"ship", "spawn"}, {"ship", "order", "move"}, {"ship", "order", "mine"},
		{"ship", "drop"}, {"ship", "settle"}, {"ship", "recharge"},
		{"site", "mint"}, {"site", "info"}, {"events"},
		{"config", "set-identity"}, {"daemon", "status"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
