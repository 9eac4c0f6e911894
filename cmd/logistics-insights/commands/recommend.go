package commands

import (
	"encoding/json"
	"os"

	"logistics-insights/internal/delivery"
	"logistics-insights/internal/insights"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the best partner for long-distance deliveries",
	Long: `Compares the mean cancellation rate of every partner over the long-distance
bands (4-6km, 6-10km, 10km+) of the distance-performance rollup and picks
the lowest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := delivery.LoadDataset(cmd.Context(), cfg.DeliveriesFile, cfg.RankingFile, cfg.DistanceFile)
		if err != nil {
			return err
		}

		rec := insights.RecommendLongDistancePartner(ds.DistancePerformance)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}
