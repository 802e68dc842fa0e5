package cmd

import (
	"github.com/abhisek/keyz/internal/config"
	"github.com/abhisek/keyz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyz",
	Short: "Terminal typing trainer with adaptive practice",
	Long:  "Keyz — terminal typing trainer that analyzes your keystrokes and generates practice targeting your weakest letters and fingers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KEYZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides KEYZ_CONFIG env var)")
	rootCmd.PersistentFlags().String("user", "", "Profile to load sessions for (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KEYZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveSettings loads the config file and applies command-line overrides.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Settings{}, err
	}

	settings := config.Resolve(fileCfg)
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		settings.User = u
	}
	return settings, nil
}
