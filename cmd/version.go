package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release build time; goreleaser fills all three.
var (
	version = "(devel)"
	commit  = ""
	date    = ""
)

// go install builds carry no ldflags but do embed the module version.
func init() {
	if version != "(devel)" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok &&
		info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("skimr", version)
		if commit != "" {
			fmt.Println("commit:", commit)
		}
		if date != "" {
			fmt.Println("built:", date)
		}
	},
}
