package commands

import (
	"encoding/json"
	"os"

	"logistics-insights/internal/delivery"
	"logistics-insights/internal/insights"

	"github.com/spf13/cobra"
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Scan daily cancellation rates for statistical outliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := buildQuery()
		if err != nil {
			return err
		}

		ds, err := delivery.LoadDataset(cmd.Context(), cfg.DeliveriesFile, cfg.RankingFile, cfg.DistanceFile)
		if err != nil {
			return err
		}

		filtered := insights.FilterRecords(ds.Records, query.Window, query.Partner, query.City)
		report := insights.DetectAnomalies(filtered, cfg.ZThreshold)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}
