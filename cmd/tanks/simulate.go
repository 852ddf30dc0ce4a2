package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagNoSave   bool
	flagParallel int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario]",
	Short: "Run headless matches between random commanders",
	Long: `Play matches without a terminal UI. Both sides are driven by a random
commander that selects, moves and fires at fixed intervals. Results are
saved to the match history unless --no-save is given.

Use --log-level debug to see every match event.

Examples:
  tanks simulate
  tanks simulate tanks_dense --runs 50 --parallel 8
  tanks simulate tanks --seed 7 --log-level debug
  tanks simulate tanks_open --difficulty hard --no-save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of matches to play")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Abort a match after this many ticks (0 = no limit)")
	simulateCmd.Flags().IntVar(&flagParallel, "parallel", 4, "Matches to run at the same time")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results in the match history")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(cmd *cobra.Command, args []string) {
	scenarioID := "tanks"
	if len(args) > 0 {
		scenarioID = args[0]
	}

	if err := applyScenarioSettings(scenarioID, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available scenarios.")
		os.Exit(1)
	}
	scenario, _ := tanks.LookupScenario(scenarioID)

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	if flagRuns < 1 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be at least 1")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Matches are independent, each with its own seed
	reports := make([]core.MatchReport, flagRuns)
	var g errgroup.Group
	g.SetLimit(max(flagParallel, 1))
	for run := range reports {
		g.Go(func() error {
			report, err := tanks.Simulate(scenario, tanks.SimulateOptions{
				Seed:     seed + int64(run),
				TickRate: flagFPS,
				MaxTicks: flagMaxTicks,
				Logger:   logger.With("run", run+1),
			})
			reports[run] = report
			return err
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var wins [3]int
	for run, report := range reports {
		wins[report.Winner]++
		fmt.Printf("  #%-3d seed %-20d %-9s %-10s left %d-%d  turns %-3d %.0fs\n",
			run+1, report.Seed, report.WinnerLabel(), report.EndReason,
			report.Survivors1, report.Survivors2, report.Turns, report.DurationSecs)

		if store != nil {
			if _, err := store.SaveMatch(report); err != nil {
				logger.Warn("cannot save match", "error", err)
			}
		}
	}

	if flagRuns > 1 {
		fmt.Println()
		fmt.Printf("Player 1: %d  Player 2: %d  Draws: %d\n",
			wins[core.WinnerPlayer1], wins[core.WinnerPlayer2], wins[core.WinnerDraw])
	}
}
