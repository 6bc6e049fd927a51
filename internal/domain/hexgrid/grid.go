package hexgrid

import "fmt"

// Grid is the torus the ships move on. All positions written through a Grid
// satisfy 0 <= X < MaxX and 0 <= Y < MaxY.
type Grid struct {
	maxX int
	maxY int
}

// NewGrid creates a grid with the given bounds
func NewGrid(maxX, maxY int) (*Grid, error) {
	if maxX <= 0 || maxY <= 0 {
		return nil, fmt.Errorf("grid bounds must be positive, got %dx%d", maxX, maxY)
	}
	return &Grid{maxX: maxX, maxY: maxY}, nil
}

// DefaultGrid returns the 10000x10000 grid
func DefaultGrid() *Grid {
	return &Grid{maxX: DefaultMaxX, maxY: DefaultMaxY}
}

func (g *Grid) MaxX() int { return g.maxX }
func (g *Grid) MaxY() int { return g.maxY }

// Center returns the spawn point in the middle of the map
func (g *Grid) Center() Position {
	return Position{X: g.maxX / 2, Y: g.maxY / 2}
}

// Contains reports whether p is inside the grid bounds
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.maxX && p.Y >= 0 && p.Y < g.maxY
}

// Wrap folds p into [0, MaxX) x [0, MaxY).
// A single negative overshoot is corrected by adding the bound once; larger
// overshoots are folded by the modulus as well.
func (g *Grid) Wrap(p Position) Position {
	return Position{X: wrap(p.X, g.maxX), Y: wrap(p.Y, g.maxY)}
}

// Move steps n tiles from p in direction d and wraps the result
func (g *Grid) Move(p Position, d Direction, n int) Position {
	return g.Wrap(ToOffset(Step(ToCube(p), d, n)))
}

func wrap(v, bound int) int {
	if v < 0 {
		v += bound
	}
	v %= bound
	if v < 0 {
		v += bound
	}
	return v
}
