package hexgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
)

func TestToCube_RoundTrip(t *testing.T) {
	for x := 0; x < 24; x++ {
		for y := 0; y < 24; y++ {
			p := hexgrid.Position{X: x, Y: y}
			c := hexgrid.ToCube(p)

			assert.Equal(t, 0, c.Q+c.R+c.S, "cube invariant for %v", p)
			assert.Equal(t, p, hexgrid.ToOffset(c), "round trip for %v", p)
		}
	}
}

func TestToCube_RoundTripNegativeRows(t *testing.T) {
	cases := []hexgrid.Position{{X: -1, Y: -1}, {X: 3, Y: -4}, {X: -7, Y: 5}}
	for _, p := range cases {
		assert.Equal(t, p, hexgrid.ToOffset(hexgrid.ToCube(p)))
	}
}

func TestStep_UnitVectorsSumToZero(t *testing.T) {
	for _, d := range hexgrid.Directions {
		v := d.Vector()
		assert.Equal(t, 0, v.Q+v.R+v.S, d.String())
	}
}

func TestStep_MovesNTiles(t *testing.T) {
	origin := hexgrid.ToCube(hexgrid.Position{X: 10, Y: 10})

	for _, d := range hexgrid.Directions {
		moved := hexgrid.Step(origin, d, 4)
		assert.Equal(t, 4, hexgrid.Distance(origin, moved), d.String())
		assert.Equal(t, 0, moved.Q+moved.R+moved.S)
	}
}

func TestGridMove_Offsets(t *testing.T) {
	grid := hexgrid.DefaultGrid()
	start := hexgrid.Position{X: 0, Y: 0}

	assert.Equal(t, hexgrid.Position{X: 1, Y: 0}, grid.Move(start, hexgrid.East, 1))
	assert.Equal(t, hexgrid.Position{X: 0, Y: 1}, grid.Move(start, hexgrid.SouthEast, 1))
	assert.Equal(t, hexgrid.Position{X: 3, Y: 0}, grid.Move(start, hexgrid.East, 3))
}

func TestGridMove_WrapsNegative(t *testing.T) {
	grid, err := hexgrid.NewGrid(10, 10)
	require.NoError(t, err)

	assert.Equal(t, hexgrid.Position{X: 9, Y: 0}, grid.Move(hexgrid.Position{X: 0, Y: 0}, hexgrid.West, 1))
	assert.Equal(t, hexgrid.Position{X: 9, Y: 9}, grid.Move(hexgrid.Position{X: 0, Y: 0}, hexgrid.NorthWest, 1))
}

func TestGridMove_WrapsPastBound(t *testing.T) {
	grid, err := hexgrid.NewGrid(10, 10)
	require.NoError(t, err)

	assert.Equal(t, hexgrid.Position{X: 1, Y: 0}, grid.Move(hexgrid.Position{X: 8, Y: 0}, hexgrid.East, 3))
}

func TestGridWrap_AlwaysInBounds(t *testing.T) {
	grid, err := hexgrid.NewGrid(10, 8)
	require.NoError(t, err)

	for _, p := range []hexgrid.Position{{X: -1, Y: -1}, {X: -25, Y: 17}, {X: 10, Y: 8}, {X: 123, Y: -64}} {
		assert.True(t, grid.Contains(grid.Wrap(p)), "wrap %v", p)
	}
}

func TestNewGrid_RejectsNonPositiveBounds(t *testing.T) {
	_, err := hexgrid.NewGrid(0, 10)
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := hexgrid.ParseDirection("SOUTH_WEST")
	require.NoError(t, err)
	assert.Equal(t, hexgrid.SouthWest, d)

	_, err = hexgrid.ParseDirection("UP")
	assert.Error(t, err)
}

func TestDirection_TextRoundTrip(t *testing.T) {
	for _, d := range hexgrid.Directions {
		text, err := d.MarshalText()
		require.NoError(t, err)

		var parsed hexgrid.Direction
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, d, parsed)
	}

	_, err := hexgrid.Direction(42).MarshalText()
	assert.Error(t, err)
}
