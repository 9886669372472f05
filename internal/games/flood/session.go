package flood

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

// State is the top-level screen of a session.
type State int

const (
	StateMainMenu State = iota
	StatePlaying
	StateAbout
	StateExited
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StatePlaying:
		return "playing"
	case StateAbout:
		return "about"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Command is a discrete request fed into the session state machine.
type Command int

const (
	CmdStartNewGame Command = iota
	CmdRetryOrNewMaze
	CmdReturnToMenu
	CmdShowAbout
	CmdExit
)

func (c Command) String() string {
	switch c {
	case CmdStartNewGame:
		return "start_new_game"
	case CmdRetryOrNewMaze:
		return "retry_or_new_maze"
	case CmdReturnToMenu:
		return "return_to_menu"
	case CmdShowAbout:
		return "show_about"
	case CmdExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Outcome is the result of the current episode.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// EpisodeResult summarizes an episode on the tick it ends.
type EpisodeResult struct {
	Outcome Outcome
	Elapsed time.Duration
	Bubbles int
	Drains  int
}

// Session drives one player's games: the menu state machine and the active
// episode (maze, player, water) it owns.
type Session struct {
	cfg   config.FloodConfig
	rng   maze.Random
	state State

	grid   *maze.Grid
	gen    *maze.Generator
	mover  *Mover
	water  *Water
	player Player
	exit   core.Vec

	elapsed time.Duration
	won     bool
	lost    bool
}

// NewSession validates cfg and returns a session sitting in the main menu.
func NewSession(cfg config.FloodConfig, rng maze.Random) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := maze.NewGenerator(rng)
	if err != nil {
		return nil, fmt.Errorf("flood: %w", err)
	}
	grid, err := maze.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return nil, fmt.Errorf("flood: %w", err)
	}

	size := cfg.Grid.CellSize
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		state: StateMainMenu,
		grid:  grid,
		gen:   gen,
		mover: NewMover(grid, size, cfg.Player.Size/2),
		water: NewWater(cfg),
		exit: core.Vec{
			X: float64(cfg.Grid.Width-1)*size + size/2,
			Y: float64(cfg.Grid.Height-1)*size + size/2,
		},
	}
	s.player = s.startPlayer()
	return s, nil
}

// State returns the current state machine state.
func (s *Session) State() State { return s.state }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.FloodConfig { return s.cfg }

// Handle applies cmd and reports whether it was valid in the current state.
// Rejected commands leave the session untouched.
func (s *Session) Handle(cmd Command) bool {
	switch {
	case s.state == StateMainMenu && cmd == CmdStartNewGame:
		s.startEpisode()
	case s.state == StateMainMenu && cmd == CmdShowAbout:
		s.state = StateAbout
	case s.state == StateMainMenu && cmd == CmdExit:
		s.state = StateExited
	case s.state == StateAbout && cmd == CmdReturnToMenu:
		s.state = StateMainMenu
	case s.state == StatePlaying && cmd == CmdRetryOrNewMaze && s.Terminal():
		s.startEpisode()
	case s.state == StatePlaying && cmd == CmdReturnToMenu:
		s.discardEpisode()
		s.state = StateMainMenu
	default:
		return false
	}
	return true
}

// Terminal reports whether the active episode has been won or lost.
func (s *Session) Terminal() bool { return s.won || s.lost }

// Outcome derives the episode result from the win and loss flags.
func (s *Session) Outcome() Outcome {
	switch {
	case s.lost:
		return OutcomeLost
	case s.won:
		return OutcomeWon
	default:
		return OutcomeInProgress
	}
}

// Tick advances an active episode by dt: movement, then water, then the
// win and loss checks. It returns a result only on the tick the episode
// ends. Ticks outside an active episode do nothing.
func (s *Session) Tick(in Intent, dt time.Duration) *EpisodeResult {
	if s.state != StatePlaying || s.Terminal() || dt <= 0 {
		return nil
	}
	s.elapsed += dt
	secs := dt.Seconds()

	delta := in.Axis().Scale(s.player.Speed * secs)
	s.player.Pos = s.mover.Move(s.player.Pos, delta)

	s.water.Tick(s.player.Pos, secs)

	// Drowning wins over escaping on the same tick.
	if s.water.Depleted() {
		s.lost = true
	} else if s.player.Pos.Dist(s.exit) < s.cfg.Exit.Threshold {
		s.won = true
	}

	if !s.Terminal() {
		return nil
	}
	return &EpisodeResult{
		Outcome: s.Outcome(),
		Elapsed: s.elapsed,
		Bubbles: s.water.CollectedBubbles(),
		Drains:  s.water.ActiveDrains(),
	}
}

// startEpisode rebuilds the maze and every piece of per-episode state.
func (s *Session) startEpisode() {
	s.gen.Generate(s.grid)
	s.player = s.startPlayer()
	s.water.Reset(s.rng)
	s.won, s.lost = false, false
	s.elapsed = 0
	s.state = StatePlaying
}

// discardEpisode drops every trace of the current episode. The menu shows
// no maze, player or water until the next StartNewGame.
func (s *Session) discardEpisode() {
	s.grid.Reset()
	s.player = s.startPlayer()
	s.water.Clear()
	s.won, s.lost = false, false
	s.elapsed = 0
}

func (s *Session) startPlayer() Player {
	size := s.cfg.Grid.CellSize
	return Player{
		Pos:    core.Vec{X: size / 2, Y: size / 2},
		Speed:  s.cfg.Player.Speed,
		Radius: s.cfg.Player.Size / 2,
	}
}
