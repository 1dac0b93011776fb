package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/skimr/internal/app"
	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/config"
	"github.com/abhisek/skimr/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads the config, and launches the TUI. When
// openQuery is non-empty the reader opens directly on the matching book
// instead of starting at the library.
func runApp(cmd *cobra.Command, openQuery string) error {
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

	cfg, err := resolveConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config not loaded:", err)
		fmt.Fprintln(os.Stderr, "Continuing with defaults.")
		cfg = config.Default()
	}

	opts := app.Options{
		Store:  st,
		Config: cfg,
	}

	if openQuery != "" {
		info, err := resolveBook(ctx, st, openQuery)
		if err != nil {
			return err
		}
		opts.OpenBook = info
	}

	return app.Run(opts)
}

// resolveBook turns a read argument into a library book. A path to an
// existing file is imported (or re-imported) first; anything else is
// matched against the library by ID or title.
func resolveBook(ctx context.Context, st *store.Store, query string) (*store.BookInfo, error) {
	if fi, err := os.Stat(query); err == nil && !fi.IsDir() {
		b, words, err := book.FromFile(query)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", query, err)
		}
		if _, err := st.AddBook(ctx, b, words); err != nil {
			return nil, fmt.Errorf("import %s: %w", query, err)
		}
		// AddBook rewrites b.ID to the stored one on re-import, so this
		// lookup picks up any previously saved position.
		return st.FindBook(ctx, b.ID)
	}
	return st.FindBook(ctx, query)
}
