package flood

import (
	"time"

	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

// Snapshot is a read-only copy of everything needed to draw a session.
// Mutating it never affects the session it came from.
type Snapshot struct {
	State    State
	Outcome  Outcome
	Won      bool
	Lost     bool
	Elapsed  time.Duration
	Grid     *maze.Grid
	GridW    int
	GridH    int
	CellSize float64

	Player     core.Vec
	Radius     float64
	Underwater bool

	WaterLevel    float64
	MaxWaterLevel float64
	WaterPercent  float64
	SurfaceY      float64
	Oxygen        float64
	LowOxygen     bool

	Bubbles []AirBubble
	Drains  []DrainSwitch
	Exit    core.Vec
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:         s.state,
		Outcome:       s.Outcome(),
		Won:           s.won,
		Lost:          s.lost,
		Elapsed:       s.elapsed,
		Grid:          s.grid.Clone(),
		GridW:         s.grid.Width(),
		GridH:         s.grid.Height(),
		CellSize:      s.cfg.Grid.CellSize,
		Player:        s.player.Pos,
		Radius:        s.player.Radius,
		Underwater:    s.water.Underwater(),
		WaterLevel:    s.water.Level(),
		MaxWaterLevel: s.water.MaxLevel(),
		WaterPercent:  s.water.Percent(),
		SurfaceY:      s.water.SurfaceY(),
		Oxygen:        s.water.Oxygen(),
		LowOxygen:     s.water.LowOxygen(),
		Bubbles:       s.water.Bubbles(),
		Drains:        s.water.Drains(),
		Exit:          s.exit,
	}
}
