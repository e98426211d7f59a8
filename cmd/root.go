package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pugivik/sumas/internal/config"
	"github.com/pugivik/sumas/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sumas",
	Short: "Two-digit addition drills in the terminal",
	Long:  "Sumas is a terminal game for practicing two-digit addition against the clock.\nIt has four modes and keeps a local history of every session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "", config.Overrides{})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SUMAS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (overrides SUMAS_CONFIG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SUMAS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, config.EnsureDir(p)
	}
	return config.DefaultDBPath()
}

// loadConfig reads the config file named by --config, SUMAS_CONFIG or the
// default XDG path.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.LoadConfig(path)
}

// openStore opens the database for cmd.
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
