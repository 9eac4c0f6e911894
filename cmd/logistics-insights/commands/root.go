package commands

import (
	"fmt"
	"time"

	"logistics-insights/internal/config"
	"logistics-insights/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	// Shared query flags.
	fromFlag    string
	toFlag      string
	partnerFlag string
	cityFlag    string

	// Input path overrides.
	deliveriesFlag string
	rankingFlag    string
	distanceFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "logistics-insights",
	Short: "Operational reporting for delivery logistics",
	Long: `Computes KPIs, city aggregates, time-series breakdowns, anomaly flags and
partner recommendations from per-delivery records and precomputed rollups.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		if deliveriesFlag != "" {
			cfg.DeliveriesFile = deliveriesFlag
		}
		if rankingFlag != "" {
			cfg.RankingFile = rankingFlag
		}
		if distanceFlag != "" {
			cfg.DistanceFile = distanceFlag
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("logistics-insights starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&deliveriesFlag, "deliveries", "", "path to the deliveries JSONL file")
	rootCmd.PersistentFlags().StringVar(&rankingFlag, "ranking", "", "path to the partner ranking JSONL file")
	rootCmd.PersistentFlags().StringVar(&distanceFlag, "distance", "", "path to the distance performance JSONL file")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(anomaliesCmd)
	rootCmd.AddCommand(recommendCmd)
}

// parseDay parses a YYYY-MM-DD flag value. An empty value yields the zero
// time so callers can apply their own default.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// endOfDay extends a date to its last nanosecond so the inclusive window
// bound covers the whole day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
