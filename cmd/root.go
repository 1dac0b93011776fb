package cmd

import (
	"os"

	"github.com/abhisek/skimr/internal/config"
	"github.com/abhisek/skimr/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skimr",
	Short: "RSVP speed reader for the terminal",
	Long:  "Skimr — terminal speed reader that flashes books one word at a time at a fixed focal point, with mouse-scrubbed pacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKIMR_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (overrides SKIMR_CONFIG env var)")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SKIMR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

// resolveConfig loads the config file using --config flag (highest
// priority), then SKIMR_CONFIG env var, then the default XDG path.
// A missing file is not an error; defaults fill the gaps.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("SKIMR_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
