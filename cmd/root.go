package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidosq/sozdyq/internal/store"
)

// defaultDailyGoal is how many words a session draws when the learner
// does not say otherwise. Three full batches.
const defaultDailyGoal = 9

var rootCmd = &cobra.Command{
	Use:   "sozdyq",
	Short: "Kazakh vocabulary trainer for the terminal",
	Long:  "Sözdıq — learn Kazakh vocabulary in batches of three: read, type, quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOZDYQ_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "Backend URL for remote mode (overrides SOZDYQ_SERVER_URL env var)")
	rootCmd.PersistentFlags().Int("daily-goal", 0, "Words per session, rounded down to full batches (overrides SOZDYQ_DAILY_GOAL)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SOZDYQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := os.Getenv("SOZDYQ_DB"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveServerURL returns the backend URL, or "" for offline mode.
func resolveServerURL(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("server"); u != "" {
		return u
	}
	return os.Getenv("SOZDYQ_SERVER_URL")
}

// resolveDailyGoal returns the per-session word budget.
func resolveDailyGoal(cmd *cobra.Command) int {
	if n, _ := cmd.Flags().GetInt("daily-goal"); n > 0 {
		return n
	}
	if v := os.Getenv("SOZDYQ_DAILY_GOAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultDailyGoal
}
