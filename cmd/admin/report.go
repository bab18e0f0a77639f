package main

import (
	"fmt"
	"os"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/app"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var (
	reportPeriod string
	reportOut    string
)

var salesPDFCmd = &cobra.Command{
	Use:   "report:sales-pdf",
	Short: "Render the sales report for a period to a PDF file",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := service.ParsePeriod(reportPeriod)
		if err != nil {
			return err
		}

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

		data, err := services.Reports.SalesReportPDF(ctx, period)
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = fmt.Sprintf("sales-%s.pdf", period)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
		return nil
	},
}

func init() {
	salesPDFCmd.Flags().StringVar(&reportPeriod, "period", "month", "today, month or year")
	salesPDFCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output path (default sales-<period>.pdf)")
	rootCmd.AddCommand(salesPDFCmd)
}
