package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/keyz/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored sessions for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		settings, err := resolveSettings(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if !yes {
			fmt.Printf("This deletes all sessions for profile %q. Re-run with --yes to confirm.\n", settings.User)
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.Sessions().DeleteAll(context.Background(), settings.User)
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		fmt.Printf("Deleted %d sessions for profile %q.\n", n, settings.User)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
