package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scenario picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a scenario, left/right to pick a difficulty
and Enter to start. After a match you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Start battle
  Tab             - Match history
  Q/Esc           - Quit

Examples:
  tanks menu
  tanks menu --fps 30
  tanks menu --db ./history.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := playLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	tanks.SetLogger(logger)

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		store = nil
	}

	cfg := terminalConfig()
	lastScenario := ""

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, lastScenario, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		scenarioID := menuResult.GameID
		if scenarioID == "" {
			break
		}
		lastScenario = scenarioID

		if err := applyScenarioSettings(scenarioID, string(menuResult.Difficulty)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		game, err := registry.Create(scenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scenario: %v\n", err)
			continue
		}

		// New seed for each battle unless one was fixed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, logger, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
