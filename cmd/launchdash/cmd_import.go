package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"launchdash/internal/db"
	"launchdash/internal/logging"
)

var importFlags struct {
	dataset     string
	databaseURL string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a launch records CSV into Postgres, replacing existing rows",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.dataset, "dataset", "spacex_launch_dash.csv", "Path to the launch records CSV")
	f.StringVar(&importFlags.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importFlags.databaseURL == "" {
		return fmt.Errorf("--database-url or DATABASE_URL is required")
	}

	store, err := loadStore(importFlags.dataset)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.New(ctx, importFlags.databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(importFlags.databaseURL); err != nil {
		return err
	}

	n, err := database.ImportLaunchRecords(ctx, store.AllRecords())
	if err != nil {
		return err
	}

	logging.New("import").Info("launch records imported", "rows", n, "dataset", importFlags.dataset)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d launch records from %s\n", n, importFlags.dataset)
	return nil
}
