package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"logistics-insights/internal/delivery"
	"logistics-insights/internal/insights"

	"github.com/spf13/cobra"
)

var summaryFlag bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the full analytics report for a time window",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := buildQuery()
		if err != nil {
			return err
		}

		ds, err := delivery.LoadDataset(cmd.Context(), cfg.DeliveriesFile, cfg.RankingFile, cfg.DistanceFile)
		if err != nil {
			return err
		}

		report := insights.BuildReport(ds, query, insights.Options{ZThreshold: cfg.ZThreshold})

		if summaryFlag {
			fmt.Print(report.Summary())
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	reportCmd.Flags().StringVar(&fromFlag, "from", "", "window start date YYYY-MM-DD (default: 30 days ago)")
	reportCmd.Flags().StringVar(&toFlag, "to", "", "window end date YYYY-MM-DD, inclusive (default: today)")
	reportCmd.Flags().StringVar(&partnerFlag, "partner", insights.FilterAll, "restrict to a single partner")
	reportCmd.Flags().StringVar(&cityFlag, "city", insights.FilterAll, "restrict to a single city")
	reportCmd.Flags().BoolVar(&summaryFlag, "summary", false, "print a human-readable summary instead of JSON")

	anomaliesCmd.Flags().StringVar(&fromFlag, "from", "", "window start date YYYY-MM-DD (default: 30 days ago)")
	anomaliesCmd.Flags().StringVar(&toFlag, "to", "", "window end date YYYY-MM-DD, inclusive (default: today)")
	anomaliesCmd.Flags().StringVar(&partnerFlag, "partner", insights.FilterAll, "restrict to a single partner")
	anomaliesCmd.Flags().StringVar(&cityFlag, "city", insights.FilterAll, "restrict to a single city")
}

// buildQuery resolves the shared window/selector flags. The default window
// is the trailing 30 days ending today.
func buildQuery() (insights.Query, error) {
	from, err := parseDay(fromFlag)
	if err != nil {
		return insights.Query{}, err
	}
	to, err := parseDay(toFlag)
	if err != nil {
		return insights.Query{}, err
	}

	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	return insights.Query{
		Window:  insights.Window{Start: from, End: endOfDay(to)},
		Partner: partnerFlag,
		City:    cityFlag,
	}, nil
}
