// floodescape is a terminal maze game: escape before the water rises over
// your head.
//
// Usage:
//
//	floodescape play [variant]     - Play a variant (classic, compact)
//	floodescape list               - List available variants
//	floodescape records [variant]  - Show best escape times and stats
//	floodescape serve              - Start SSH server for remote play
//	floodescape maze               - Print a generated maze
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible mazes
//	--db <path>          - Set database path (default: ~/.floodescape/records.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the game variants
	_ "github.com/vovakirdan/flood-escape/internal/games/flood"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "floodescape",
	Short: "Flood Escape - find the exit before the maze floods",
	Long: `Flood Escape is a terminal maze game. The water rises from the bottom
of the maze; collect air bubbles, open drains and reach the exit in the
bottom-right corner before your oxygen runs out.

Available commands:
  play     - Play a variant directly
  list     - Show all available variants
  records  - View best escape times
  serve    - Start SSH server for remote play
  maze     - Print a generated maze

Examples:
  floodescape play
  floodescape play compact --seed 42
  floodescape records classic
  floodescape serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.floodescape/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mazeCmd)
}

// newLogger builds the process logger from the --log-level flag.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
