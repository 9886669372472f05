package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flood-escape/internal/maze"
)

var (
	flagMazeWidth  int
	flagMazeHeight int
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print a generated maze",
	Long: `Generate a perfect maze and print it as ASCII art. With --seed the
output is reproducible.

Examples:
  floodescape maze
  floodescape maze --width 10 --height 10 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runMaze,
}

func init() {
	mazeCmd.Flags().IntVar(&flagMazeWidth, "width", 16, "Maze width in cells")
	mazeCmd.Flags().IntVar(&flagMazeHeight, "height", 16, "Maze height in cells")
}

func runMaze(_ *cobra.Command, _ []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, err := maze.NewGrid(flagMazeWidth, flagMazeHeight)
	if err != nil {
		return err
	}
	gen, err := maze.NewGenerator(rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	gen.Generate(grid)

	fmt.Print(grid.String())
	fmt.Printf("seed %d, %dx%d, %d passages\n", seed, grid.Width(), grid.Height(), grid.OpenConnections())
	return nil
}
