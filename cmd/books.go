package cmd

import (
	"fmt"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/store"
	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the library",
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

		infos, err := st.Books(ctx)
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println(`No books yet. Import one with "skimr add <file>".`)
			return nil
		}

		for _, bi := range infos {
			pos := " new"
			if bi.WordIndex > 0 {
				pos = fmt.Sprintf("%3d%%", int(book.Progress(bi.WordIndex, bi.WordCount)*100))
			}
			fmt.Printf("%-40s  %7d words  %s  added %s\n",
				bi.Title, bi.WordCount, pos, bi.AddedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}
