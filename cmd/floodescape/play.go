package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/games/flood"
	"github.com/vovakirdan/flood-escape/internal/platform/tui"
	"github.com/vovakirdan/flood-escape/internal/registry"
	"github.com/vovakirdan/flood-escape/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Flood Escape",
	Long: `Start the game in the given variant (default: the largest one that fits
your terminal).

Controls:
  WASD/Arrows  - Move
  Enter/Space  - Select, retry after an episode
  A/I          - About screen (from the menu)
  Tab/Esc      - Back to the menu
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Examples:
  floodescape play
  floodescape play compact
  floodescape play classic --seed 7
  floodescape play --config ./my-flood.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, err := newLogger("floodescape")
	if err != nil {
		return err
	}

	flood.SetConfigPath(flagConfig)
	width, height := terminalSize()

	variant := string(flood.FitVariant(width, height))
	if len(args) == 1 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q (run 'floodescape list')", variant)
	}

	game, err := registry.Create(variant)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works without records.
		logger.Warn("could not open records database", "path", flagDBPath, "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = width, height
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	logger.Debug("starting game", "variant", variant, "size", fmt.Sprintf("%dx%d", width, height), "seed", flagSeed)

	if err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
