package main

import (
	"fmt"
	"os"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/app"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/export"
	"github.com/spf13/cobra"
)

var importFile string

var feedsImportCmd = &cobra.Command{
	Use:   "feeds:import",
	Short: "Import the feed catalogue from an xlsx sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open sheet: %w", err)
		}
		defer f.Close()

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		if err := database.CheckSchema(ctx, e.db); err != nil {
			return err
		}
		services, err := app.NewServices(e.cfg, e.db, app.Options{Log: e.log})
		if err != nil {
			return err
		}

		res, err := services.Feeds.ImportFeeds(ctx, f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, rowErr := range res.Errors {
			fmt.Fprintf(out, "  [row %d] %s: %s\n", rowErr.Row, rowErr.Field, rowErr.Message)
		}
		fmt.Fprintf(out, "Rows: %d  Created: %d  Updated: %d  Failed: %d\n",
			res.TotalRows, res.Created, res.Updated, res.Failed)
		return nil
	},
}

var templateOut string

var feedsTemplateCmd = &cobra.Command{
	Use:   "feeds:template",
	Short: "Write an empty feed import sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := export.FeedSheetTemplate(nil)
		if err != nil {
			return err
		}
		if err := os.WriteFile(templateOut, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", templateOut)
		return nil
	},
}

func init() {
	feedsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "xlsx file path (required)")
	_ = feedsImportCmd.MarkFlagRequired("file")
	feedsTemplateCmd.Flags().StringVarP(&templateOut, "out", "o", "feeds-template.xlsx", "Output path")
	rootCmd.AddCommand(feedsImportCmd, feedsTemplateCmd)
}
