package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "jellyfin-tools/jellyctl"

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update jellyctl to the latest release",
	// No server connection needed, skip client initialization.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := semver.ParseTolerant(version); err != nil {
			return fmt.Errorf("cannot update a development build (version %q)", version)
		}

		ctx := context.Background()
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if !found {
			return fmt.Errorf("no release found for %s", updateRepo)
		}

		if latest.LessOrEqual(version) {
			fmt.Printf("✓ Already running the latest version (%s)\n", version)
			return nil
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}

		fmt.Printf("Updating %s → %s...\n", version, latest.Version())
		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("failed to update binary: %w", err)
		}

		fmt.Printf("✓ Updated to version %s\n", latest.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selfUpdateCmd)
}
