package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one tick.
// Non-positive tick rates fall back to 60 ticks per second.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Playing  bool // An episode is active (possibly finished)
	Terminal bool // The active episode has ended (won or lost)
	Won      bool // The active episode ended with an escape
	Exited   bool // The player chose to leave the game entirely
}

// RunSummary describes an episode that just finished.
type RunSummary struct {
	Outcome  string        // "won" or "lost"
	Elapsed  time.Duration // Simulated time from episode start to the end
	Seed     int64         // Seed the session was created with
	Bubbles  int           // Air bubbles collected
	Drains   int           // Drain switches activated
	Variant  string        // Game ID the episode was played on
	Finished time.Time     // Wall-clock time the platform observed the end
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished is non-nil only on the tick an episode ended.
	Finished *RunSummary
}
