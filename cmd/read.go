package cmd

import (
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <file or title>",
	Short: "Open a book in the reader",
	Long: "Opens the reader directly on a book. A path to an existing file is\n" +
		"imported (or re-imported) first; anything else matches a library book\n" +
		"by ID, exact title, or title substring.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
