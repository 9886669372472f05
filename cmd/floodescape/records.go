package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/platform/tui"
	"github.com/vovakirdan/flood-escape/internal/registry"
	"github.com/vovakirdan/flood-escape/internal/storage"
)

var (
	flagRecordsTUI bool
	flagRecent     bool
	flagClear      bool
	flagLimit      int
)

var recordsCmd = &cobra.Command{
	Use:   "records [variant]",
	Short: "Show best escape times",
	Long: `Display the fastest escapes and run statistics for a variant.
Without a variant every variant is listed.

Examples:
  floodescape records
  floodescape records compact
  floodescape records classic --recent
  floodescape records --tui
  floodescape records compact --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagRecordsTUI, "tui", false, "Browse records interactively")
	recordsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show most recent runs instead of best times")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete stored runs for the variant")
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runRecords(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q (run 'floodescape list')", variant)
		}
	}
	if flagClear && variant == "" {
		return errors.New("--clear needs a variant")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(variant); err != nil {
			return fmt.Errorf("clearing records: %w", err)
		}
		fmt.Printf("Records for %s cleared.\n", variant)
		return nil
	}

	if flagRecordsTUI {
		width, height := terminalSize()
		if variant == "" {
			variant = string(config.VariantClassic)
		}
		return tui.RunRecords(store, variant, width, height)
	}

	variants := []string{variant}
	if variant == "" {
		variants = variants[:0]
		for _, v := range config.Variants() {
			variants = append(variants, string(v))
		}
	}

	for i, v := range variants {
		if i > 0 {
			fmt.Println()
		}
		if err := printRecords(store, v); err != nil {
			return err
		}
	}
	return nil
}

func printRecords(store *storage.Store, variant string) error {
	title := variant
	if g, err := registry.Create(variant); err == nil {
		title = g.Title()
	}

	var (
		runs []storage.Run
		err  error
	)
	if flagRecent {
		fmt.Printf("Recent Runs - %s\n", title)
		runs, err = store.RecentRuns(variant, flagLimit)
	} else {
		fmt.Printf("Best Escapes - %s\n", title)
		runs, err = store.BestTimes(variant, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving records: %w", err)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("Play 'floodescape play %s' to set the first record!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-6s  %s\n", "Rank", "Time", "Outcome", "Air", "Drains", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-6s  %s\n", "----", "----", "-------", "---", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-7s  %-4d  %-6d  %s\n",
			i+1,
			fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
			r.Outcome,
			r.Bubbles,
			r.Drains,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats(variant)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Escaped: %d  Drowned: %d  Win rate: %.0f%%\n",
		stats.Runs, stats.Wins, stats.Losses, stats.WinRate()*100)
	if stats.BestTime > 0 {
		fmt.Printf("Best: %.1fs  Average escape: %.1fs\n",
			stats.BestTime.Seconds(), stats.AvgWinTime.Round(100*time.Millisecond).Seconds())
	}
	return nil
}
