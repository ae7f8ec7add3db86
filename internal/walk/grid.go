// Package walk holds the random-walk state: the visit grid, the stepper
// that advances the walk, and session statistics.
package walk

// Point is a cell coordinate on the grid.
type Point struct {
	X, Y int
}

// maxVisits is where a cell's counter saturates instead of wrapping.
const maxVisits = 255

// Grid stores visit counts in a dense row-major matrix. Reads outside the
// bounds return zero and writes outside are dropped; neither is an error.
type Grid struct {
	width  int
	height int
	visits []uint8
}

// NewGrid allocates a zeroed grid. Dimensions are clamped to at least 1.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Resize reallocates the grid at the new dimensions and clears every
// counter. Visit history does not survive a resize.
func (g *Grid) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g.width = width
	g.height = height
	g.visits = make([]uint8, width*height)
}

// Visit increments the counter at (x, y), saturating at maxVisits.
func (g *Grid) Visit(x, y int) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	i := y*g.width + x
	if g.visits[i] < maxVisits {
		g.visits[i]++
	}
}

// Visits returns the counter at (x, y), zero when out of bounds.
func (g *Grid) Visits(x, y int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.visits[y*g.width+x]
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Center returns the middle cell, where a fresh walk starts.
func (g *Grid) Center() Point {
	return Point{X: g.width / 2, Y: g.height / 2}
}
