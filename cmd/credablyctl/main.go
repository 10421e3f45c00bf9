package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:           "credablyctl",
		Short:         "Operator tooling for the Credably backend.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding config.yaml and .env")

	var seedCmd = &cobra.Command{
		Use:   "seed-user",
		Short: "Create a user or reset the password of an existing one",
		RunE:  runSeedUser,
	}
	seedCmd.Flags().String("email", os.Getenv("SEED_EMAIL"), "User email")
	seedCmd.Flags().String("password", os.Getenv("SEED_PASSWORD"), "User password")
	seedCmd.Flags().String("name", "", "Display name")
	rootCmd.AddCommand(seedCmd)

	var migrateCmd = &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE:      runMigrate,
	}
	migrateCmd.Flags().String("dir", "migrations", "Migrations directory")
	rootCmd.AddCommand(migrateCmd)

	var recalcCmd = &cobra.Command{
		Use:   "recalculate",
		Short: "Recalculate and print a user's credibility score",
		RunE:  runRecalculate,
	}
	recalcCmd.Flags().String("email", "", "User email")
	recalcCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(recalcCmd)

	var syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Sync one platform, or every connected platform, for a user",
		RunE:  runSync,
	}
	syncCmd.Flags().String("email", "", "User email")
	syncCmd.Flags().String("platform", "", "Platform to sync (all connected platforms when empty)")
	syncCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(syncCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
