// Package maze holds the wall grid of a rectangular maze and the randomized
// depth-first generator that carves it into a perfect maze.
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Direction names one of the four walls of a cell.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

// Directions lists every direction in wall-flag order.
var Directions = [4]Direction{Top, Bottom, Left, Right}

// Opposite returns the direction of the same wall as seen from the neighbor.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the cell offset of a step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// NoNeighbor is returned by neighbor lookups that fall outside the grid.
const NoNeighbor = -1

// ErrInvalidDimensions is returned when a grid is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("maze: grid dimensions must be positive")

// Cell is one square of the maze.
type Cell struct {
	Walls   [4]bool // indexed by Direction: top, bottom, left, right
	Visited bool    // generation-time bookkeeping only
}

// Grid is a fixed-size rectangular array of cells stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a width x height grid with every wall closed.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	g.Reset()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Reset closes every wall and clears every visited flag.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{Walls: [4]bool{true, true, true, true}}
	}
}

// Index returns the row-major index of (x, y), or NoNeighbor when the
// coordinate lies outside the grid.
func (g *Grid) Index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return NoNeighbor
	}
	return x + y*g.width
}

// Coords returns the (x, y) of a cell index.
func (g *Grid) Coords(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// Neighbor returns the index of the cell adjacent to idx in direction d,
// or NoNeighbor at the grid edge.
func (g *Grid) Neighbor(idx int, d Direction) int {
	x, y := g.Coords(idx)
	dx, dy := d.Delta()
	return g.Index(x+dx, y+dy)
}

// HasWall reports whether the wall of cell idx in direction d is closed.
func (g *Grid) HasWall(idx int, d Direction) bool {
	return g.cells[idx].Walls[d]
}

// SetWall sets a single wall flag. Callers carving passages should use
// OpenPassage so both sides of the boundary stay in sync.
func (g *Grid) SetWall(idx int, d Direction, closed bool) {
	g.cells[idx].Walls[d] = closed
}

// Visited reports the generation-time visited flag.
func (g *Grid) Visited(idx int) bool {
	return g.cells[idx].Visited
}

// MarkVisited sets the visited flag of cell idx.
func (g *Grid) MarkVisited(idx int) {
	g.cells[idx].Visited = true
}

// OpenPassage removes the wall pair between idx and its neighbor in
// direction d. It returns the neighbor index, or NoNeighbor (and changes
// nothing) when there is no neighbor.
func (g *Grid) OpenPassage(idx int, d Direction) int {
	n := g.Neighbor(idx, d)
	if n == NoNeighbor {
		return NoNeighbor
	}
	g.SetWall(idx, d, false)
	g.SetWall(n, d.Opposite(), false)
	return n
}

// OpenConnections counts open wall pairs between adjacent cells.
func (g *Grid) OpenConnections() int {
	count := 0
	for idx := range g.cells {
		// Count each boundary once, from its top/left side.
		for _, d := range [2]Direction{Bottom, Right} {
			if g.Neighbor(idx, d) != NoNeighbor && !g.cells[idx].Walls[d] {
				count++
			}
		}
	}
	return count
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Cell, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// String renders the maze as ASCII art, three columns per cell.
func (g *Grid) String() string {
	var b strings.Builder

	b.WriteString("+")
	for x := 0; x < g.width; x++ {
		if g.HasWall(g.Index(x, 0), Top) {
			b.WriteString("--+")
		} else {
			b.WriteString("  +")
		}
	}
	b.WriteString("\n")

	for y := 0; y < g.height; y++ {
		if g.HasWall(g.Index(0, y), Left) {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := 0; x < g.width; x++ {
			b.WriteString("  ")
			if g.HasWall(g.Index(x, y), Right) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < g.width; x++ {
			if g.HasWall(g.Index(x, y), Bottom) {
				b.WriteString("--+")
			} else {
				b.WriteString("  +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
