package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/skimr/internal/stats"
	"github.com/abhisek/skimr/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		recs, err := st.RecentSessions(ctx, 0)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No reading sessions yet.")
			return nil
		}

		totals := stats.Aggregate(recs)
		fmt.Printf("Sessions:    %d\n", totals.Sessions)
		fmt.Printf("Words read:  %d\n", totals.WordsRead)
		fmt.Printf("Time read:   %s\n", totals.ActiveTime.Round(time.Second))
		fmt.Printf("Average:     %d wpm\n", totals.AvgWPM)
		if c := stats.ComfortSpeed(recs); c > 0 {
			fmt.Printf("Comfort:     %d wpm\n", c)
		}

		fmt.Println("\nRecent sessions:")
		show := min(len(recs), 10)
		for _, rec := range recs[:show] {
			fmt.Printf("  %s  %-32s %6d words  %4d wpm\n",
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				rec.BookTitle, rec.WordsRead, rec.AvgWPM)
		}
		return nil
	},
}
