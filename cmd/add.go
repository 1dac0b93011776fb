package cmd

import (
	"fmt"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Import plain-text files into the library",
	Args:  cobra.MinimumNArgs(1),
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

		for _, path := range args {
			b, words, err := book.FromFile(path)
			if err != nil {
				return err
			}
			created, err := st.AddBook(ctx, b, words)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			verb := "Imported"
			if !created {
				verb = "Re-imported"
			}
			fmt.Printf("%s %q (%d words)\n", verb, b.Title, b.WordCount)
		}
		return nil
	},
}
