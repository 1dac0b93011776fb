package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/skimr/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateVersion string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update skimr to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  updateVersion,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			if updateVersion != "" {
				fmt.Printf("Version %s is already installed.\n", updateVersion)
			} else {
				fmt.Println("Already running the latest version.")
			}
			return nil
		case errors.Is(err, selfupdate.ErrChecksum):
			return fmt.Errorf("%w\n\nThe downloaded archive did not match the published checksum. Try again.", err)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo skimr update", err)
		default:
			return err
		}
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateVersion, "version", "",
		"Release tag to install instead of the latest (allows downgrades)")
}
