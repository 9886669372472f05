// Package flood implements Flood Escape: a procedurally generated maze that
// slowly fills with water while the player races for the exit.
//
// The simulation (Session, Mover, Water) is pure and deterministic for a
// given random source. Game adapts a Session to the registry.Game interface
// used by the terminal platform.
package flood

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/registry"
)

// Package-level config path, set by the CLI before games are created.
var configPath string

// SetConfigPath sets the config file path used by newly reset games.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(string(config.VariantClassic), func() registry.Game {
		return New(config.VariantClassic)
	})
	registry.Register(string(config.VariantCompact), func() registry.Game {
		return New(config.VariantCompact)
	})
}

// menuItem is one entry of the main menu.
type menuItem struct {
	label string
	cmd   Command
}

var menuItems = []menuItem{
	{label: "Start Game", cmd: CmdStartNewGame},
	{label: "About", cmd: CmdShowAbout},
	{label: "Exit", cmd: CmdExit},
}

// stateHandler pairs the input handling and drawing of one session state.
type stateHandler struct {
	update func(g *Game, in core.InputFrame) *EpisodeResult
	render func(g *Game, dst *core.Screen)
}

var handlers map[State]stateHandler

func init() {
	handlers = map[State]stateHandler{
		StateMainMenu: {update: (*Game).updateMenu, render: (*Game).renderMenu},
		StateAbout:    {update: (*Game).updateAbout, render: (*Game).renderAbout},
		StatePlaying:  {update: (*Game).updatePlaying, render: (*Game).renderPlaying},
		StateExited:   {update: (*Game).updateExited, render: (*Game).renderExited},
	}
}

// Game adapts a Session to the platform.
type Game struct {
	variant config.Variant
	cfg     config.FloodConfig
	session *Session
	seed    int64
	tick    uint64
	dt      time.Duration

	cursor   int
	prevDirs Intent // directions held on the previous tick
	loadErr  error  // config problem shown on the menu, defaults in use
}

// New creates a game for the given variant. Reset must be called before use.
func New(v config.Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == config.VariantCompact {
		return "Flood Escape (Compact)"
	}
	return "Flood Escape"
}

// Reset loads the configuration and starts a fresh session in the main menu.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := variantConfig(g.variant)
	g.loadErr = err
	g.cfg = cfg
	g.seed = rc.Seed
	g.dt = rc.TickDuration()
	g.tick = 0
	g.cursor = 0
	g.prevDirs = Intent{}

	session, err := NewSession(cfg, rand.New(rand.NewSource(rc.Seed)))
	if err != nil {
		// Defaults always validate; only a bad variant table gets here.
		panic(err)
	}
	g.session = session
}

// variantConfig loads the configuration of v. On a load error it returns the
// built-in defaults for v together with the error.
func variantConfig(v config.Variant) (config.FloodConfig, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		cfg = config.DefaultFloodConfig()
		//nolint:errcheck // unknown variants keep the classic defaults
		config.ApplyVariant(&cfg, v)
	}
	return cfg, err
}

func loadConfig(v config.Variant) (config.FloodConfig, error) {
	cfg, err := config.LoadFlood(configPath)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyVariant(&cfg, v); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ConfigError returns the error hit while loading the configuration, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Session exposes the underlying session, mainly for tests and tooling.
func (g *Game) Session() *Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	var res *EpisodeResult
	if h, ok := handlers[g.session.State()]; ok {
		res = h.update(g, in)
	}
	g.prevDirs = intentFrom(in)

	out := core.StepResult{State: g.State()}
	if res != nil {
		out.Finished = &core.RunSummary{
			Outcome: res.Outcome.String(),
			Elapsed: res.Elapsed,
			Seed:    g.seed,
			Bubbles: res.Bubbles,
			Drains:  res.Drains,
			Variant: g.ID(),
		}
	}
	return out
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Playing:  s.State() == StatePlaying,
		Terminal: s.State() == StatePlaying && s.Terminal(),
		Won:      s.State() == StatePlaying && s.Outcome() == OutcomeWon,
		Exited:   s.State() == StateExited,
	}
}

// Snapshot returns a copy of the session state.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

func intentFrom(in core.InputFrame) Intent {
	return Intent{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}
}

func (g *Game) updateMenu(in core.InputFrame) *EpisodeResult {
	dirs := intentFrom(in)
	// Held keys repeat every tick; move the cursor on presses only.
	if dirs.Up && !g.prevDirs.Up {
		g.cursor = (g.cursor + len(menuItems) - 1) % len(menuItems)
	}
	if dirs.Down && !g.prevDirs.Down {
		g.cursor = (g.cursor + 1) % len(menuItems)
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.session.Handle(menuItems[g.cursor].cmd)
	case in.Has(core.ActionAbout):
		g.session.Handle(CmdShowAbout)
	}
	return nil
}

func (g *Game) updateAbout(in core.InputFrame) *EpisodeResult {
	if in.Has(core.ActionBack) || in.Has(core.ActionConfirm) {
		g.session.Handle(CmdReturnToMenu)
	}
	return nil
}

func (g *Game) updatePlaying(in core.InputFrame) *EpisodeResult {
	if in.Has(core.ActionBack) {
		g.session.Handle(CmdReturnToMenu)
		g.cursor = 0
		return nil
	}
	if g.session.Terminal() {
		if in.Has(core.ActionConfirm) {
			g.session.Handle(CmdRetryOrNewMaze)
		}
		return nil
	}
	return g.session.Tick(intentFrom(in), g.dt)
}

func (g *Game) updateExited(core.InputFrame) *EpisodeResult {
	return nil
}

// FitVariant returns the first variant, largest first, whose maze fits a
// w x h terminal. Sizes come from the configuration set with SetConfigPath.
// The compact variant is the fallback.
func FitVariant(w, h int) config.Variant {
	for _, v := range config.Variants() {
		cfg, _ := variantConfig(v)
		bw, bh := boardSize(cfg.Grid.Width, cfg.Grid.Height)
		if w >= bw && h >= bh+hudHeight {
			return v
		}
	}
	return config.VariantCompact
}
