package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Play a scenario",
	Long: `Start a two-player battle in the specified scenario.
Both players share the keyboard and mouse and take turns.

Controls:
  Click / Arrows+Enter - Select a tank, pick a destination or target
  M                    - Move the selected tank
  F                    - Fire the selected tank
  U                    - Activate the pending power-up
  Esc/B                - Cancel a pending target
  P                    - Pause
  R                    - Restart (after the match ends)
  Q/Ctrl+C             - Quit
  Ctrl+S               - Save a screenshot

Difficulty options:
  easy   - Rare power-ups, long turns, gentle hits
  normal - Default settings
  hard   - Frequent power-ups, short turns, brutal hits
  fixed  - Use the config file exactly as written

Examples:
  tanks play tanks
  tanks play tanks_dense --difficulty hard
  tanks play tanks --config ./my-tanks.yaml
  tanks play tanks_open --seed 42 --log-file ./battle.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds the runtime config from the global flags and the
// current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyScenarioSettings hands config and difficulty to the tanks package
// and checks that they produce valid rules for the scenario.
func applyScenarioSettings(scenarioID, difficulty string) error {
	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(difficulty)

	s, ok := tanks.LookupScenario(scenarioID)
	if !ok {
		return fmt.Errorf("unknown scenario %q", scenarioID)
	}
	_, err := tanks.ScenarioRules(s)
	return err
}

// playLogger returns the logger used during a match. The screen belongs to
// the TUI, so logs are dropped unless a log file is given.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	return newLogger(io.Discard)
}

func runPlay(cmd *cobra.Command, args []string) {
	scenarioID := args[0]

	// Check if scenario exists
	if !registry.Exists(scenarioID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available scenarios.")
		os.Exit(1)
	}

	if err := applyScenarioSettings(scenarioID, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	tanks.SetLogger(logger)

	// Create game instance
	game, err := registry.Create(scenarioID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scenario: %v\n", err)
		os.Exit(1)
	}

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the battle still works
		store = nil
	}

	runErr := tui.Run(game, store, logger, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
