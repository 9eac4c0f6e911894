package insights

import (
	"math"
	"sort"

	"logistics-insights/internal/delivery"
)

// Anomaly report statuses.
const (
	AnomalyStatusOK           = "ok"
	AnomalyStatusInsufficient = "insufficient_data" // fewer than MinAnomalyDays distinct days
)

// MinAnomalyDays is the minimum number of distinct calendar dates required
// before anomaly detection runs. Below this the sample is too small for a
// meaningful z-score and the detector reports insufficient data instead.
const MinAnomalyDays = 3

// DefaultZThreshold is the |z-score| above which a day is flagged.
const DefaultZThreshold = 2.0

// RatePoint is one day of the cancellation-rate series.
type RatePoint struct {
	Date      string  `json:"date"`
	Rate      float64 `json:"rate"` // percent
	ZScore    float64 `json:"z_score"`
	Anomalous bool    `json:"anomalous"`
}

// AnomalyReport is the output of the per-day cancellation-rate outlier
// scan. "No anomalies found" and "insufficient data" are distinct states:
// the former carries a full series with zero flags, the latter carries no
// flags because detection never ran.
type AnomalyReport struct {
	Status         string      `json:"status"`
	Points         []RatePoint `json:"points,omitempty"` // ordered by date
	AnomalousDates []string    `json:"anomalous_dates,omitempty"`
	AnomalyCount   int         `json:"anomaly_count"`
	MeanRate       float64     `json:"mean_rate"`
	StdDev         float64     `json:"std_dev"`
}

// DetectAnomalies builds the per-date cancellation-rate series for the
// filtered set and flags days whose rate deviates from the series mean by
// more than zThreshold population standard deviations. A zero standard
// deviation (all days identical) short-circuits to zero flags. A
// zThreshold <= 0 falls back to DefaultZThreshold.
func DetectAnomalies(records []delivery.Record, zThreshold float64) AnomalyReport {
	if zThreshold <= 0 {
		zThreshold = DefaultZThreshold
	}

	byDate := groupBy(records, func(r delivery.Record) string {
		return r.Timestamp.Format(dateLayout)
	})

	if len(byDate) < MinAnomalyDays {
		return AnomalyReport{Status: AnomalyStatusInsufficient}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rates := make([]float64, len(dates))
	for i, d := range dates {
		recs := byDate[d]
		cancelled := 0
		for _, r := range recs {
			if r.Cancelled() {
				cancelled++
			}
		}
		rates[i] = float64(cancelled) / float64(len(recs)) * 100
	}

	mean := Mean(rates)
	stddev := PopulationStdDev(rates)

	report := AnomalyReport{
		Status:   AnomalyStatusOK,
		Points:   make([]RatePoint, len(dates)),
		MeanRate: mean,
		StdDev:   stddev,
	}

	for i, d := range dates {
		p := RatePoint{Date: d, Rate: rates[i]}
		if stddev > 0 {
			p.ZScore = (rates[i] - mean) / stddev
			p.Anomalous = math.Abs(p.ZScore) > zThreshold
		}
		if p.Anomalous {
			report.AnomalousDates = append(report.AnomalousDates, d)
			report.AnomalyCount++
		}
		report.Points[i] = p
	}

	return report
}
