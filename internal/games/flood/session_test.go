package flood

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

const frame = time.Second / 60

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(config.DefaultFloodConfig(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

func playingSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s := newTestSession(t, seed)
	require.True(t, s.Handle(CmdStartNewGame))
	return s
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(config.DefaultFloodConfig(), nil)
	require.ErrorIs(t, err, maze.ErrNilRandom)

	bad := config.DefaultFloodConfig()
	bad.Grid.Width = 0
	_, err = NewSession(bad, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSessionStartsInMenu(t *testing.T) {
	s := newTestSession(t, 1)
	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, OutcomeInProgress, s.Outcome())
	assert.False(t, s.Terminal())
}

func TestSessionTransitions(t *testing.T) {
	s := newTestSession(t, 1)

	require.True(t, s.Handle(CmdShowAbout))
	assert.Equal(t, StateAbout, s.State())
	require.True(t, s.Handle(CmdReturnToMenu))
	assert.Equal(t, StateMainMenu, s.State())

	require.True(t, s.Handle(CmdStartNewGame))
	assert.Equal(t, StatePlaying, s.State())
	require.True(t, s.Handle(CmdReturnToMenu))
	assert.Equal(t, StateMainMenu, s.State())

	require.True(t, s.Handle(CmdExit))
	assert.Equal(t, StateExited, s.State())
}

func TestSessionRejectsInvalidCommands(t *testing.T) {
	tests := []struct {
		name  string
		setup []Command
		cmd   Command
	}{
		{"menu retry", nil, CmdRetryOrNewMaze},
		{"menu return", nil, CmdReturnToMenu},
		{"about start", []Command{CmdShowAbout}, CmdStartNewGame},
		{"about exit", []Command{CmdShowAbout}, CmdExit},
		{"about retry", []Command{CmdShowAbout}, CmdRetryOrNewMaze},
		{"playing start", []Command{CmdStartNewGame}, CmdStartNewGame},
		{"playing retry before end", []Command{CmdStartNewGame}, CmdRetryOrNewMaze},
		{"playing about", []Command{CmdStartNewGame}, CmdShowAbout},
		{"playing exit", []Command{CmdStartNewGame}, CmdExit},
		{"exited start", []Command{CmdExit}, CmdStartNewGame},
		{"exited return", []Command{CmdExit}, CmdReturnToMenu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 5)
			for _, c := range tt.setup {
				require.True(t, s.Handle(c))
			}
			before := s.Snapshot()
			assert.False(t, s.Handle(tt.cmd))
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestSessionEpisodeStart(t *testing.T) {
	s := playingSession(t, 3)
	snap := s.Snapshot()
	cfg := config.DefaultFloodConfig()

	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, snap.GridW*snap.GridH-1, snap.Grid.OpenConnections())
	assert.Equal(t, core.Vec{X: 10, Y: 10}, snap.Player)
	assert.Equal(t, core.Vec{X: 390, Y: 390}, snap.Exit)
	assert.Zero(t, snap.WaterLevel)
	assert.Equal(t, float64(maxOxygen), snap.Oxygen)
	assert.Zero(t, snap.Elapsed)
	assert.Len(t, snap.Bubbles, cfg.Pickups.Count)
	assert.Len(t, snap.Drains, 3)
	assert.False(t, snap.Won)
	assert.False(t, snap.Lost)
}

func TestSessionTickAdvancesEpisode(t *testing.T) {
	s := playingSession(t, 3)
	s.water.bubbles = nil

	for iter := 0; iter < 60; iter++ {
		require.Nil(t, s.Tick(Intent{}, frame))
	}
	snap := s.Snapshot()
	assert.Equal(t, 60*frame, snap.Elapsed)
	assert.InDelta(t, 18, snap.WaterLevel, 1e-4)
}

func TestSessionTickIgnoredOutsidePlaying(t *testing.T) {
	s := newTestSession(t, 1)
	before := s.Snapshot()
	assert.Nil(t, s.Tick(Intent{Right: true}, time.Second))
	assert.Equal(t, before, s.Snapshot())

	require.True(t, s.Handle(CmdShowAbout))
	before = s.Snapshot()
	assert.Nil(t, s.Tick(Intent{Right: true}, time.Second))
	assert.Equal(t, before, s.Snapshot())
}

func TestSessionLossWhenOxygenRunsOut(t *testing.T) {
	s := playingSession(t, 4)
	s.water.bubbles = nil
	s.water.level = s.water.maxLevel

	var res *EpisodeResult
	for i := 0; i < 100 && res == nil; i++ {
		res = s.Tick(Intent{}, time.Second)
	}
	require.NotNil(t, res)
	assert.Equal(t, OutcomeLost, res.Outcome)
	assert.Equal(t, 12*time.Second, res.Elapsed)
	assert.True(t, s.Terminal())
	assert.Zero(t, s.Snapshot().Oxygen)

	// A finished episode is frozen until the player decides.
	before := s.Snapshot()
	assert.Nil(t, s.Tick(Intent{Right: true}, time.Second))
	assert.Equal(t, before, s.Snapshot())
}

func TestSessionLossIgnoresWaterLevel(t *testing.T) {
	s := playingSession(t, 4)
	s.water.bubbles = nil
	// Half flooded, player just below the surface with half a second of air.
	s.water.level = s.water.maxLevel / 2
	s.player.Pos = core.Vec{X: 10, Y: s.water.SurfaceY() + 1}
	s.water.oxygen = s.cfg.Water.OxygenDepletion * 0.5
	res := s.Tick(Intent{}, time.Second)
	require.NotNil(t, res)
	assert.Equal(t, OutcomeLost, res.Outcome)
	assert.Less(t, s.Snapshot().WaterLevel, s.Snapshot().MaxWaterLevel)
}

func TestSessionWinNearExit(t *testing.T) {
	s := playingSession(t, 6)
	s.water.bubbles = nil
	s.player.Pos = s.exit.Add(core.Vec{X: -3})

	res := s.Tick(Intent{}, frame)
	require.NotNil(t, res)
	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, frame, res.Elapsed)
	assert.True(t, s.Snapshot().Won)
	assert.Equal(t, OutcomeWon, s.Outcome())
}

func TestSessionLossBeatsWinOnSameTick(t *testing.T) {
	s := playingSession(t, 6)
	s.water.bubbles = nil
	s.water.level = s.water.maxLevel
	s.water.oxygen = 0.01
	s.player.Pos = s.exit

	res := s.Tick(Intent{}, frame)
	require.NotNil(t, res)
	assert.Equal(t, OutcomeLost, res.Outcome)
	assert.False(t, s.Snapshot().Won)
}

func TestSessionRetryStartsFreshEpisode(t *testing.T) {
	s := playingSession(t, 7)
	first := s.Snapshot()
	s.player.Pos = s.exit
	require.NotNil(t, s.Tick(Intent{}, frame))

	require.True(t, s.Handle(CmdRetryOrNewMaze))
	snap := s.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, OutcomeInProgress, snap.Outcome)
	assert.Zero(t, snap.Elapsed)
	assert.Equal(t, core.Vec{X: 10, Y: 10}, snap.Player)
	assert.Equal(t, snap.GridW*snap.GridH-1, snap.Grid.OpenConnections())
	assert.NotEqual(t, first.Grid, snap.Grid, "a new maze is carved")
}

func TestSessionReturnToMenuDiscardsEpisode(t *testing.T) {
	s := playingSession(t, 8)
	s.player.Pos = s.exit
	require.NotNil(t, s.Tick(Intent{}, frame))

	require.True(t, s.Handle(CmdReturnToMenu))
	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, OutcomeInProgress, s.Outcome())
	assert.Zero(t, s.Snapshot().Elapsed)
}

func TestSessionReturnToMenuMidEpisodeClearsState(t *testing.T) {
	s := playingSession(t, 8)
	for iter := 0; iter < 120; iter++ {
		s.Tick(Intent{Right: true}, frame)
	}
	mid := s.Snapshot()
	require.False(t, s.Terminal())
	require.Greater(t, mid.WaterLevel, 0.0)
	require.NotZero(t, mid.Elapsed)

	require.True(t, s.Handle(CmdReturnToMenu))
	snap := s.Snapshot()
	assert.Equal(t, StateMainMenu, snap.State)
	assert.Zero(t, snap.Elapsed)
	assert.Zero(t, snap.WaterLevel)
	assert.Zero(t, snap.WaterPercent)
	assert.InDelta(t, 100.0, snap.Oxygen, 1e-9)
	assert.False(t, snap.Underwater)
	assert.Equal(t, core.Vec{X: 10, Y: 10}, snap.Player)
	assert.Empty(t, snap.Bubbles)
	assert.Empty(t, snap.Drains)
	assert.Zero(t, snap.Grid.OpenConnections(), "maze is discarded")

	require.True(t, s.Handle(CmdStartNewGame))
	fresh := s.Snapshot()
	assert.Len(t, fresh.Bubbles, 8)
	assert.Equal(t, fresh.GridW*fresh.GridH-1, fresh.Grid.OpenConnections())
}

func TestSessionMovementRespectsWalls(t *testing.T) {
	s := playingSession(t, 9)
	s.water.bubbles = nil
	start := s.Snapshot().Player
	idx := s.grid.Index(0, 0)

	for iter := 0; iter < 120; iter++ {
		s.Tick(Intent{Right: true}, frame)
	}
	p := s.Snapshot().Player
	if s.grid.HasWall(idx, maze.Right) {
		assert.LessOrEqual(t, p.X, start.X+4, "stops at the closed right wall")
		assert.Greater(t, p.X, start.X+3)
	} else {
		assert.Greater(t, p.X, start.X+4)
	}
	assert.Equal(t, start.Y, p.Y)
}

func TestSessionDeterminism(t *testing.T) {
	script := func(s *Session) Snapshot {
		require.True(t, s.Handle(CmdStartNewGame))
		rng := rand.New(rand.NewSource(99))
		for iter := 0; iter < 600; iter++ {
			in := Intent{
				Up:    rng.Intn(3) == 0,
				Down:  rng.Intn(3) == 0,
				Left:  rng.Intn(3) == 0,
				Right: rng.Intn(3) == 0,
			}
			s.Tick(in, frame)
		}
		return s.Snapshot()
	}

	a := script(newTestSession(t, 42))
	b := script(newTestSession(t, 42))
	assert.Equal(t, a, b)

	c := script(newTestSession(t, 43))
	assert.NotEqual(t, a.Grid, c.Grid)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := playingSession(t, 10)
	snap := s.Snapshot()

	snap.Grid.OpenPassage(0, maze.Right)
	snap.Grid.OpenPassage(0, maze.Bottom)
	snap.Bubbles[0].Collected = true
	snap.Drains[0].Activated = true

	again := s.Snapshot()
	assert.Equal(t, again.GridW*again.GridH-1, again.Grid.OpenConnections())
	assert.False(t, again.Bubbles[0].Collected)
	assert.False(t, again.Drains[0].Activated)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "about", StateAbout.String())
	assert.Equal(t, "retry_or_new_maze", CmdRetryOrNewMaze.String())
	assert.Equal(t, "won", OutcomeWon.String())
	assert.Equal(t, "lost", OutcomeLost.String())
	assert.Equal(t, "in_progress", OutcomeInProgress.String())
}
