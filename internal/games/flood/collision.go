package flood

import (
	"math"

	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

// Intent is the directional input held during one tick. Opposite
// directions cancel out; both axes may be set at once.
type Intent struct {
	Up, Down, Left, Right bool
}

// Axis returns the per-axis direction of the intent, each component in
// {-1, 0, 1}.
func (i Intent) Axis() core.Vec {
	var v core.Vec
	if i.Up {
		v.Y--
	}
	if i.Down {
		v.Y++
	}
	if i.Left {
		v.X--
	}
	if i.Right {
		v.X++
	}
	return v
}

// Player is the continuous-position body moving through the maze.
type Player struct {
	Pos    core.Vec
	Speed  float64 // pixels per second on each axis
	Radius float64 // half the collision size
}

// Mover resolves player displacement against the maze walls and the
// play-field bounds.
type Mover struct {
	grid     *maze.Grid
	cellSize float64
	radius   float64
}

// NewMover returns a mover for a body of the given radius.
func NewMover(grid *maze.Grid, cellSize, radius float64) *Mover {
	return &Mover{grid: grid, cellSize: cellSize, radius: radius}
}

// CanOccupy reports whether the body center may rest at p.
func (m *Mover) CanOccupy(p core.Vec) bool {
	return m.withinBounds(p) && m.clearOfWalls(p)
}

func (m *Mover) withinBounds(p core.Vec) bool {
	maxX := float64(m.grid.Width()) * m.cellSize
	maxY := float64(m.grid.Height()) * m.cellSize
	if p.X < m.radius || p.X > maxX-m.radius {
		return false
	}
	if p.Y < m.radius || p.Y > maxY-m.radius {
		return false
	}
	return true
}

func (m *Mover) clearOfWalls(p core.Vec) bool {
	gx := int(math.Floor(p.X / m.cellSize))
	gy := int(math.Floor(p.Y / m.cellSize))
	idx := m.grid.Index(gx, gy)
	if idx == maze.NoNeighbor {
		return false
	}

	offX := p.X - float64(gx)*m.cellSize
	offY := p.Y - float64(gy)*m.cellSize

	// A wall only blocks inside a band one radius wide along its edge.
	if m.grid.HasWall(idx, maze.Top) && offY < m.radius {
		return false
	}
	if m.grid.HasWall(idx, maze.Bottom) && offY > m.cellSize-m.radius {
		return false
	}
	if m.grid.HasWall(idx, maze.Left) && offX < m.radius {
		return false
	}
	if m.grid.HasWall(idx, maze.Right) && offX > m.cellSize-m.radius {
		return false
	}
	return true
}

// Move returns where a body at from ends up after trying to travel by
// delta. Blocked diagonal moves slide along whichever single axis is free,
// horizontal first; fully blocked moves leave the body in place.
//
// Displacements longer than the radius are split into sub-steps so that a
// long tick can never carry the body across a closed wall pair.
func (m *Mover) Move(from, delta core.Vec) core.Vec {
	longest := math.Max(math.Abs(delta.X), math.Abs(delta.Y))
	if longest == 0 {
		return from
	}

	steps := 1
	if m.radius > 0 && longest > m.radius {
		steps = int(math.Ceil(longest / m.radius))
	}
	step := delta.Scale(1 / float64(steps))

	pos := from
	for i := 0; i < steps; i++ {
		pos = m.slide(pos, step)
	}
	return pos
}

func (m *Mover) slide(from, step core.Vec) core.Vec {
	if diag := from.Add(step); m.CanOccupy(diag) {
		return diag
	}
	if step.X != 0 {
		if h := (core.Vec{X: from.X + step.X, Y: from.Y}); m.CanOccupy(h) {
			return h
		}
	}
	if step.Y != 0 {
		if v := (core.Vec{X: from.X, Y: from.Y + step.Y}); m.CanOccupy(v) {
			return v
		}
	}
	return from
}
