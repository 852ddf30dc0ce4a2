// tanks is a turn-based tank battle simulator played in the terminal.
//
// Usage:
//
//	tanks list                  - List available scenarios
//	tanks play <scenario>       - Play a scenario
//	tanks menu                  - Start menu to pick scenarios interactively
//	tanks simulate [scenario]   - Run headless matches with random commanders
//	tanks history [scenario]    - Show recorded match results
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible matches
//	--db <path>          - Set database path (default: ~/.tanks/history.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import scenarios to register them
	_ "github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "TUI Tanks - Turn-based tank battles in your terminal",
	Long: `TUI Tanks is a two-player, turn-based tank battle on a square grid.
Each side commands four tanks; bullets ricochet off walls and the board edge.

Available commands:
  list      - Show all available scenarios
  play      - Play a specific scenario directly
  menu      - Interactive scenario picker menu
  simulate  - Run headless matches between random commanders
  history   - View recorded match results

Examples:
  tanks list
  tanks play tanks
  tanks menu
  tanks simulate tanks_dense --runs 20
  tanks history tanks`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/history.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the logger selected by the global flags. Without a
// log file, output goes to fallback. The returned function closes the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		path := flagLogFile
		if strings.HasPrefix(path, "~/") {
			path = filepath.Join(os.Getenv("HOME"), path[2:])
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
		Level:           level,
	})
	return logger, closeFn, nil
}
