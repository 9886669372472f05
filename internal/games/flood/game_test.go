package flood

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/registry"
)

func newTestGame(t *testing.T, v config.Variant, seed int64) *Game {
	t.Helper()
	g := New(v)
	rc := core.DefaultConfig()
	rc.Seed = seed
	g.Reset(rc)
	require.NoError(t, g.ConfigError())
	return g
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range config.Variants() {
		require.True(t, registry.Exists(string(v)), "variant %s", v)
		g, err := registry.Create(string(v))
		require.NoError(t, err)
		assert.Equal(t, string(v), g.ID())
	}
	assert.Equal(t, "Flood Escape", New(config.VariantClassic).Title())
	assert.Equal(t, "Flood Escape (Compact)", New(config.VariantCompact).Title())
}

func TestGameResetUsesVariant(t *testing.T) {
	g := newTestGame(t, config.VariantCompact, 1)
	snap := g.Snapshot()
	assert.Equal(t, StateMainMenu, snap.State)
	assert.Equal(t, 10, snap.GridW)
	assert.Equal(t, 10, snap.GridH)
}

func TestGameMenuNavigation(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 1)

	// Holding down moves the cursor once.
	g.Step(press(core.ActionDown))
	g.Step(press(core.ActionDown))
	g.Step(press(core.ActionDown))
	assert.Equal(t, 1, g.cursor)

	g.Step(press())
	g.Step(press(core.ActionDown))
	assert.Equal(t, 2, g.cursor)

	g.Step(press())
	g.Step(press(core.ActionDown))
	assert.Equal(t, 0, g.cursor, "cursor wraps")

	g.Step(press())
	g.Step(press(core.ActionUp))
	assert.Equal(t, 2, g.cursor, "cursor wraps upward")
}

func TestGameMenuCommands(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 1)

	g.Step(press(core.ActionAbout))
	assert.Equal(t, StateAbout, g.Session().State())
	g.Step(press(core.ActionBack))
	assert.Equal(t, StateMainMenu, g.Session().State())

	res := g.Step(press(core.ActionConfirm))
	assert.Equal(t, StatePlaying, g.Session().State())
	assert.True(t, res.State.Playing)
	assert.False(t, res.State.Terminal)

	g.Step(press(core.ActionBack))
	assert.Equal(t, StateMainMenu, g.Session().State())

	g.Step(press(core.ActionUp)) // cursor to Exit
	res = g.Step(press(core.ActionConfirm))
	assert.Equal(t, StateExited, g.Session().State())
	assert.True(t, res.State.Exited)
}

func TestGamePlayingMovesPlayer(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 2)
	g.Step(press(core.ActionConfirm))
	start := g.Snapshot().Player

	for iter := 0; iter < 30; iter++ {
		g.Step(press(core.ActionDown, core.ActionRight))
	}
	snap := g.Snapshot()
	assert.NotEqual(t, start, snap.Player)
	assert.Equal(t, 30*core.DefaultConfig().TickDuration(), snap.Elapsed)
}

func TestGameReportsFinishedRun(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 3)
	g.Step(press(core.ActionConfirm))

	s := g.Session()
	s.player.Pos = s.exit
	res := g.Step(press())
	require.NotNil(t, res.Finished)
	assert.Equal(t, "won", res.Finished.Outcome)
	assert.Equal(t, int64(3), res.Finished.Seed)
	assert.Equal(t, "classic", res.Finished.Variant)
	assert.Equal(t, time.Second/60, res.Finished.Elapsed)
	assert.True(t, res.State.Terminal)
	assert.True(t, res.State.Won)

	// The summary is reported once.
	res = g.Step(press())
	assert.Nil(t, res.Finished)

	res = g.Step(press(core.ActionConfirm))
	assert.False(t, res.State.Terminal)
	assert.Equal(t, OutcomeInProgress, g.Snapshot().Outcome)
}

func TestGameRenderMenuAndAbout(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "F L O O D   E S C A P E")
	assert.Contains(t, out, "> Start Game <")
	assert.Contains(t, out, "About")

	g.Step(press(core.ActionAbout))
	g.Render(screen)
	out = screen.String()
	assert.Contains(t, out, "HOW TO PLAY")
	assert.Contains(t, out, "Learn the maze layout before water rises")
}

func TestGameRenderPlayingCompact(t *testing.T) {
	g := newTestGame(t, config.VariantCompact, 4)
	g.Step(press(core.ActionConfirm))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "FLOOD ESCAPE")
	assert.Contains(t, out, "O2 [")
	assert.Equal(t, 1, strings.Count(out, "@"))

	// Board is 31 columns wide, centered; cell (0,0) starts at column 24.
	assert.Equal(t, '+', screen.Get(24, 2))
	assert.Equal(t, '@', screen.Get(26, 3))
	drain := screen.Get(32, 7) // first drain at cell (2,2)
	assert.Contains(t, []rune{'D', 'o'}, drain)
	assert.Contains(t, out, footerHint)
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, 4)
	g.Step(press(core.ActionConfirm))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Window too small")
	assert.Contains(t, out, "compact")
}

func TestGameRenderOverlays(t *testing.T) {
	g := newTestGame(t, config.VariantCompact, 5)
	g.Step(press(core.ActionConfirm))
	s := g.Session()
	s.player.Pos = s.exit
	g.Step(press())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "YOU ESCAPED!")

	g.Step(press(core.ActionConfirm))
	s.water.bubbles = nil
	s.water.level = s.water.maxLevel
	s.water.oxygen = 0.01
	g.Step(press())
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "You drowned!")
}

func TestCellToScreen(t *testing.T) {
	x, y := cellToScreen(core.Vec{X: 10, Y: 10}, 20, 10, 10, 0, 2)
	assert.Equal(t, 2, x)
	assert.Equal(t, 3, y)

	x, y = cellToScreen(core.Vec{X: 21, Y: 39}, 20, 10, 10, 0, 2)
	assert.Equal(t, 4, x)
	assert.Equal(t, 5, y)
}

func TestFitVariant(t *testing.T) {
	assert.Equal(t, config.VariantCompact, FitVariant(80, 24))
	assert.Equal(t, config.VariantClassic, FitVariant(80, 50))
	assert.Equal(t, config.VariantCompact, FitVariant(10, 10))
}

func TestFitVariantUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flood.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  width: 12\n  height: 10\n"), 0o600))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	// 12x10 cells need 37x21 plus the HUD, so classic now fits 80x24.
	assert.Equal(t, config.VariantClassic, FitVariant(80, 24))
	assert.Equal(t, config.VariantCompact, FitVariant(30, 24))

	g := New(config.VariantClassic)
	g.Reset(core.DefaultConfig())
	require.NoError(t, g.ConfigError())
	assert.Equal(t, 12, g.Session().Config().Grid.Width)
}
