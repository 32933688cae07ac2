package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"incidentserver/internal/config"
)

var (
	dbPath     string
	reset      bool
	jsonOutput bool
)

// rootCmd seeds a sqlite incident database and reports what it holds.
var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the incident database with the demo dataset",
	Long: `Open (or create) the sqlite incident database, load the three demo
cameras and the day's incidents when it is empty, and print per-camera
statistics.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath(dbPath, config.Load)
		if err != nil {
			return err
		}
		return run(cmd.OutOrStdout(), path, reset, jsonOutput)
	},
}

func init() {
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path (default DATABASE_PATH, then data/incidents.db)")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Delete the database before seeding")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output statistics as JSON")
}

// resolveDBPath prefers the --db flag and otherwise asks the configuration.
func resolveDBPath(flagValue string, load func() (*config.Config, error)) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := load()
	if err != nil {
		return "", err
	}
	return cfg.DatabasePath, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
