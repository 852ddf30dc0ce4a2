package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded match results",
	Long: `Display recent match results, for one scenario or for all of them.

Examples:
  tanks history
  tanks history tanks_dense --limit 20
  tanks history --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in the terminal UI")
}

func runHistory(cmd *cobra.Command, args []string) {
	scenarioID := ""
	if len(args) > 0 {
		scenarioID = args[0]
		if !registry.Exists(scenarioID) {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
			fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available scenarios.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		cfg := terminalConfig()
		if _, err := tui.RunHistory(store, scenarioID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	var matches []storage.MatchEntry
	if scenarioID == "" {
		matches, err = store.RecentMatches(flagLimit)
	} else {
		matches, err = store.MatchesByScenario(scenarioID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		return
	}

	title := "All scenarios"
	if scenarioID != "" {
		title = scenarioID
	}
	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tanks play tanks' or run 'tanks simulate' to record one!")
		return
	}

	fmt.Printf("  %-5s  %-12s  %-9s  %-10s  %-5s  %-5s  %s\n", "#", "Scenario", "Winner", "Reason", "Left", "Turns", "Date")
	fmt.Printf("  %-5s  %-12s  %-9s  %-10s  %-5s  %-5s  %s\n", "-", "--------", "------", "------", "----", "-----", "----")
	for _, e := range matches {
		fmt.Printf("  %-5d  %-12s  %-9s  %-10s  %-5s  %-5d  %s\n",
			e.ID, e.Scenario, e.WinnerLabel(), e.EndReason,
			fmt.Sprintf("%d-%d", e.Survivors1, e.Survivors2), e.Turns,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetAllScenarioStats()
	if err != nil {
		return
	}
	fmt.Println()
	for _, s := range registry.List() {
		st, ok := stats[s.ID]
		if !ok || (scenarioID != "" && s.ID != scenarioID) {
			continue
		}
		fmt.Printf("%s: %d matches, P1 %d, P2 %d, draws %d, avg %.0fs\n",
			s.ID, st.Matches, st.Player1Wins, st.Player2Wins, st.Draws, st.AvgDuration)
	}
}
