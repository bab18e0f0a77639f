package main

import (
	"fmt"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		if err := database.AutoMigrate(e.db, e.log); err != nil {
			return err
		}
		version, err := database.CurrentVersion(cmd.Context(), e.db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d\n", version)
		return nil
	},
}

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the first admin from ADMIN_* settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		if err := database.CheckSchema(ctx, e.db); err != nil {
			return err
		}
		if err := database.SeedDefaultData(ctx, e.db, &e.cfg.Admin, e.log); err != nil {
			return err
		}
		if seedDemo {
			return database.SeedDemoFeeds(ctx, e.db, e.log)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Also insert a demo feed catalogue")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
