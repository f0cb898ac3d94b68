package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidosq/sozdyq/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("sozdyq", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		checker := selfupdate.NewChecker()
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s → %s (run: sozdyq update)\n",
				result.CurrentVersion, result.LatestVersion)
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
