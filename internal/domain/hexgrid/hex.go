// Package hexgrid provides coordinate arithmetic for the wrapped hex map.
// Positions are stored in odd-row offset coordinates; movement happens in
// cube coordinates (q, r, s) with q + r + s == 0.
package hexgrid

import "fmt"

const (
	// DefaultMaxX is the default map width in tiles
	DefaultMaxX = 10000
	// DefaultMaxY is the default map height in tiles
	DefaultMaxY = 10000
)

// Position is an offset coordinate (column, row) on the map
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cube is a cube coordinate. S is stored so that callers can check the
// q + r + s == 0 invariant.
type Cube struct {
	Q int
	R int
	S int
}

// Direction is one of the six hex neighbor directions
type Direction int

const (
	NorthWest Direction = iota
	NorthEast
	East
	SouthEast
	SouthWest
	West
)

var directionNames = map[Direction]string{
	NorthWest: "NORTH_WEST",
	NorthEast: "NORTH_EAST",
	East:      "EAST",
	SouthEast: "SOUTH_EAST",
	SouthWest: "SOUTH_WEST",
	West:      "WEST",
}

// unit vectors in cube space, each summing to zero
var directionVectors = [6]Cube{
	NorthWest: {Q: 0, R: -1, S: 1},
	NorthEast: {Q: 1, R: -1, S: 0},
	East:      {Q: 1, R: 0, S: -1},
	SouthEast: {Q: 0, R: 1, S: -1},
	SouthWest: {Q: -1, R: 1, S: 0},
	West:      {Q: -1, R: 0, S: 1},
}

// Directions lists all directions in declaration order
var Directions = [6]Direction{NorthWest, NorthEast, East, SouthEast, SouthWest, West}

// IsValid checks that d is one of the six directions
func (d Direction) IsValid() bool {
	return d >= NorthWest && d <= West
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a direction name (e.g. "EAST", "NORTH_WEST") into a Direction
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Vector returns the cube unit vector for d
func (d Direction) Vector() Cube {
	return directionVectors[d]
}

// ToCube converts an odd-row offset position to cube coordinates
func ToCube(p Position) Cube {
	q := p.X - (p.Y-(p.Y&1))/2
	r := p.Y
	return Cube{Q: q, R: r, S: -q - r}
}

// ToOffset converts cube coordinates back to an odd-row offset position
func ToOffset(c Cube) Position {
	col := c.Q + (c.R-(c.R&1))/2
	return Position{X: col, Y: c.R}
}

// Step moves c by n unit vectors in direction d
func Step(c Cube, d Direction, n int) Cube {
	v := d.Vector()
	return Cube{
		Q: c.Q + v.Q*n,
		R: c.R + v.R*n,
		S: c.S + v.S*n,
	}
}

// Distance returns the hex distance between two cube coordinates
func Distance(a, b Cube) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S - b.S)
	return max(dq, dr, ds)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
