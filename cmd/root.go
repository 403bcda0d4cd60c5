package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bytetechedu/bytetech/internal/config"
	"github.com/bytetechedu/bytetech/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bytetech",
	Short: "Course platform client for your terminal",
	Long:  "ByteTechEdu terminal client: browse the catalog, work through lessons, discuss them, and manage your own courses.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-base", "", "Backend base URL (overrides BYTETECH_API_BASE env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite cache file (overrides BYTETECH_DB env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(supportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveConfig merges env configuration with command-line flags,
// flags winning.
func resolveConfig(cmd *cobra.Command) config.Config {
	cfg := config.FromEnv()
	if v, _ := cmd.Flags().GetString("api-base"); v != "" {
		cfg.APIBase = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	return cfg
}

// resolveDBPath returns the cache path from config, or the default XDG
// location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
