package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/catalog"
)

func TestDefault_CoversEveryLevel(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	for _, level := range planet.Levels {
		spec, err := cat.Spec(level)
		require.NoError(t, err, level.String())
		assert.Positive(t, spec.Storage, level.String())
		assert.NotEmpty(t, spec.Rates, level.String())
	}

	fortress, err := cat.Spec(planet.Fortress)
	require.NoError(t, err)
	assert.Equal(t, 1, fortress.Rates[inventory.Uranium])
	assert.Equal(t, 16, fortress.Storage)

	basic, err := cat.Spec(planet.Basic)
	require.NoError(t, err)
	assert.False(t, basic.Offers(inventory.Gold))
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	cat, err := catalog.Load("")
	require.NoError(t, err)

	spec, err := cat.Spec(planet.Advanced)
	require.NoError(t, err)
	assert.Equal(t, 8, spec.Storage)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `
levels:
  BASIC:    {storage: 1, rates: {IRON: 9}}
  ADVANCED: {storage: 2, rates: {GOLD: 5}}
  FORTRESS: {storage: 3, rates: {URANIUM: 7}}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cat, err := catalog.Load(path)
	require.NoError(t, err)

	basic, err := cat.Spec(planet.Basic)
	require.NoError(t, err)
	assert.Equal(t, map[inventory.ResourceType]int{inventory.Iron: 9}, basic.Rates)
	assert.Equal(t, 1, basic.Storage)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing level":  "levels:\n  BASIC: {storage: 1, rates: {IRON: 1}}\n",
		"unknown level":  "levels:\n  MEGA: {storage: 1, rates: {IRON: 1}}\n",
		"unknown ore":    "levels:\n  BASIC: {storage: 1, rates: {MITHRIL: 1}}\n",
		"malformed yaml": "levels: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
