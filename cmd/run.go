package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidosq/sozdyq/internal/api"
	"github.com/aidosq/sozdyq/internal/app"
	"github.com/aidosq/sozdyq/internal/store"
)

// runApp resolves collaborators and launches the TUI. With a server URL
// configured the remote API backs both word pool and session recording;
// otherwise everything runs against the local SQLite catalog.
func runApp(cmd *cobra.Command) error {
	opts := app.Options{DailyGoal: resolveDailyGoal(cmd)}

	if serverURL := resolveServerURL(cmd); serverURL != "" {
		client := api.NewClient(serverURL)
		opts.Source = client
		opts.Gateway = client
		return app.Run(opts)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	events, err := st.Events()
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}

	opts.Source = st.Words()
	opts.Gateway = events
	opts.Store = st
	return app.Run(opts)
}

// openStore opens the local database for commands that always need it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
