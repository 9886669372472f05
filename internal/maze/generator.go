package maze

import (
	"errors"
	"math/rand"

	"github.com/zyedidia/generic/stack"
)

// ErrNilRandom is returned when a generator is built without a random source.
var ErrNilRandom = errors.New("maze: random source is required")

// Random is the slice of *rand.Rand the generator needs. Tests can inject a
// seeded *rand.Rand or a scripted source.
type Random interface {
	Intn(n int) int
}

// Generator carves perfect mazes with a randomized iterative depth-first
// search. The carving path stack is internal state of the generator.
type Generator struct {
	rng  Random
	path *stack.Stack[int]
}

// NewGenerator returns a generator drawing choices from rng. A nil
// *rand.Rand is rejected like a nil interface; other typed nils are the
// caller's responsibility.
func NewGenerator(rng Random) (*Generator, error) {
	if rng == nil {
		return nil, ErrNilRandom
	}
	if r, ok := rng.(*rand.Rand); ok && r == nil {
		return nil, ErrNilRandom
	}
	return &Generator{rng: rng}, nil
}

// Generate resets g and carves it into a spanning tree starting at (0, 0).
// Every cell is visited exactly once and exactly Len()-1 wall pairs are
// opened.
func (gen *Generator) Generate(g *Grid) {
	g.Reset()
	gen.path = stack.New[int]()

	current := g.Index(0, 0)
	g.MarkVisited(current)
	gen.path.Push(current)

	candidates := make([]Direction, 0, 4)
	for gen.path.Size() > 0 {
		candidates = candidates[:0]
		for _, d := range [4]Direction{Top, Left, Bottom, Right} {
			n := g.Neighbor(current, d)
			if n != NoNeighbor && !g.Visited(n) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) > 0 {
			d := candidates[gen.rng.Intn(len(candidates))]
			current = g.OpenPassage(current, d)
			g.MarkVisited(current)
			gen.path.Push(current)
			continue
		}

		gen.path.Pop()
		if gen.path.Size() > 0 {
			current = gen.path.Peek()
		}
	}
}
