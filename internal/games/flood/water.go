package flood

import (
	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

const maxOxygen = 100

// AirBubble is a one-time oxygen pickup.
type AirBubble struct {
	Pos       core.Vec
	Collected bool
}

// DrainSwitch permanently changes the flood rate once the player reaches it.
type DrainSwitch struct {
	Pos       core.Vec
	Radius    float64
	Activated bool
}

// Water owns the flood level, the player's oxygen and the pickups that
// affect them. It is reset at the start of every episode.
type Water struct {
	cfg      config.FloodConfig
	maxLevel float64

	level      float64
	oxygen     float64
	underwater bool

	bubbles []AirBubble
	drains  []DrainSwitch
}

// NewWater creates a simulation sized for cfg. Call Reset before ticking.
func NewWater(cfg config.FloodConfig) *Water {
	return &Water{
		cfg:      cfg,
		maxLevel: cfg.MaxWaterLevel(),
		oxygen:   maxOxygen,
	}
}

// Reset drains the field, refills oxygen, scatters bubbles over random cell
// centers and re-arms every drain switch.
func (w *Water) Reset(rng maze.Random) {
	w.level = 0
	w.oxygen = maxOxygen
	w.underwater = false

	size := w.cfg.Grid.CellSize
	w.bubbles = make([]AirBubble, w.cfg.Pickups.Count)
	for i := range w.bubbles {
		x := float64(rng.Intn(w.cfg.Grid.Width))*size + size/2
		y := float64(rng.Intn(w.cfg.Grid.Height))*size + size/2
		w.bubbles[i] = AirBubble{Pos: core.Vec{X: x, Y: y}}
	}

	positions := w.cfg.DrainPositions()
	w.drains = make([]DrainSwitch, len(positions))
	for i, p := range positions {
		w.drains[i] = DrainSwitch{
			Pos:    core.Vec{X: p.X * size, Y: p.Y * size},
			Radius: w.cfg.Drains.Radius,
		}
	}
}

// Clear empties the flood: no water, full oxygen, no bubbles or drains.
func (w *Water) Clear() {
	w.level = 0
	w.oxygen = maxOxygen
	w.underwater = false
	w.bubbles = nil
	w.drains = nil
}

// ActiveDrains counts the activated drain switches.
func (w *Water) ActiveDrains() int {
	n := 0
	for _, d := range w.drains {
		if d.Activated {
			n++
		}
	}
	return n
}

// CollectedBubbles counts the bubbles picked up this episode.
func (w *Water) CollectedBubbles() int {
	n := 0
	for _, b := range w.bubbles {
		if b.Collected {
			n++
		}
	}
	return n
}

// LevelRate returns the signed change of the water level per second for the
// current drain activation count.
func (w *Water) LevelRate() float64 {
	rise := w.cfg.Water.RiseRate
	active, total := w.ActiveDrains(), len(w.drains)
	switch {
	case active == 0:
		return rise
	case active == total && total > 1:
		return -rise * w.cfg.Water.FastDrain
	case active == 1:
		return rise * w.cfg.Water.SlowedRise
	default:
		return -rise * w.cfg.Water.SlowDrain
	}
}

// Tick advances the flood by dt seconds with the player centered at pos.
func (w *Water) Tick(pos core.Vec, dt float64) {
	w.level = core.ClampF(w.level+w.LevelRate()*dt, 0, w.maxLevel)

	w.underwater = pos.Y > w.SurfaceY()
	if w.underwater {
		w.oxygen -= w.cfg.Water.OxygenDepletion * dt
	} else {
		w.oxygen += w.cfg.Water.OxygenRecovery * dt
	}
	w.oxygen = core.ClampF(w.oxygen, 0, maxOxygen)

	for i := range w.bubbles {
		b := &w.bubbles[i]
		if !b.Collected && pos.Dist(b.Pos) < w.cfg.Pickups.Radius {
			b.Collected = true
			w.oxygen = min(w.oxygen+w.cfg.Pickups.OxygenBonus, maxOxygen)
		}
	}

	for i := range w.drains {
		d := &w.drains[i]
		if !d.Activated && pos.Dist(d.Pos) < d.Radius {
			d.Activated = true
		}
	}
}

// Level returns the current water height measured from the bottom.
func (w *Water) Level() float64 { return w.level }

// MaxLevel returns the water height that floods the whole field.
func (w *Water) MaxLevel() float64 { return w.maxLevel }

// SurfaceY is the y coordinate of the water surface; y grows downward.
func (w *Water) SurfaceY() float64 { return w.maxLevel - w.level }

// Percent returns how much of the field is flooded, 0..100.
func (w *Water) Percent() float64 {
	if w.maxLevel == 0 {
		return 0
	}
	return w.level / w.maxLevel * 100
}

// Oxygen returns the remaining oxygen, 0..100.
func (w *Water) Oxygen() float64 { return w.oxygen }

// Underwater reports whether the player was below the surface last tick.
func (w *Water) Underwater() bool { return w.underwater }

// LowOxygen reports whether the warning threshold has been crossed.
func (w *Water) LowOxygen() bool { return w.oxygen < w.cfg.Water.LowOxygen }

// Depleted reports whether the player has run out of oxygen.
func (w *Water) Depleted() bool { return w.oxygen <= 0 }

// Bubbles returns a copy of the air bubbles.
func (w *Water) Bubbles() []AirBubble {
	out := make([]AirBubble, len(w.bubbles))
	copy(out, w.bubbles)
	return out
}

// Drains returns a copy of the drain switches.
func (w *Water) Drains() []DrainSwitch {
	out := make([]DrainSwitch, len(w.drains))
	copy(out, w.drains)
	return out
}
