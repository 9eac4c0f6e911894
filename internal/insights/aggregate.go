package insights

import (
	"sort"

	"logistics-insights/internal/delivery"
)

// dateLayout is the calendar-date key format used by every per-day series.
const dateLayout = "2006-01-02"

// Severity levels for a city's cancellation rate, used by the map layer
// to color markers.
const (
	SeverityLow      = "low"      // rate < 3%
	SeverityElevated = "elevated" // rate < 7%
	SeverityCritical = "critical"
)

// NoPartner is the sentinel reported when a grouping has no delivered
// records to pick a best performer from.
const NoPartner = "N/A"

// CityAggregate is one derived row per city over the query window.
type CityAggregate struct {
	City             string   `json:"city"`
	TotalDeliveries  int      `json:"total_deliveries"`
	Cancellations    int      `json:"cancellations"`
	CancellationRate float64  `json:"cancellation_rate"` // percent, 2-decimal rounded
	MeanDistanceKm   float64  `json:"mean_distance_km"`
	MeanSLAMinutes   float64  `json:"mean_sla_minutes"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	BestPartner      string   `json:"best_partner"`
	Severity         string   `json:"severity"`
}

// DatePoint is one per-calendar-date entry of a time series.
type DatePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourPoint is one per-hour-of-day entry of a time series.
type HourPoint struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// groupBy partitions records by an arbitrary key extractor. Every record
// lands in exactly one group, so per-group counts always sum back to the
// input size.
func groupBy[K comparable](records []delivery.Record, key func(delivery.Record) K) map[K][]delivery.Record {
	groups := make(map[K][]delivery.Record)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// AggregateByCity derives one CityAggregate per distinct city in the
// filtered set, sorted by city name. The best-performer column joins
// against BestPartnerByCity; a city with no delivered records gets the
// NoPartner sentinel rather than a missing-key failure.
func AggregateByCity(records []delivery.Record) []CityAggregate {
	groups := groupBy(records, func(r delivery.Record) string { return r.City })
	best := BestPartnerByCity(records)

	out := make([]CityAggregate, 0, len(groups))
	for city, recs := range groups {
		agg := CityAggregate{
			City:            city,
			TotalDeliveries: len(recs),
			BestPartner:     NoPartner,
		}

		distances := make([]float64, 0, len(recs))
		slaTargets := make([]float64, 0, len(recs))
		for _, r := range recs {
			if r.Cancelled() {
				agg.Cancellations++
			}
			distances = append(distances, r.DistanceKm)
			slaTargets = append(slaTargets, r.SLATargetMinutes)

			// Coordinates are constant per city; keep the first observed pair.
			if agg.Latitude == nil && r.Latitude != nil && r.Longitude != nil {
				agg.Latitude = r.Latitude
				agg.Longitude = r.Longitude
			}
		}

		// A group always holds at least one record, so the rate and means
		// are defined here.
		agg.CancellationRate = Round2(float64(agg.Cancellations) / float64(agg.TotalDeliveries) * 100)
		agg.MeanDistanceKm = Mean(distances)
		agg.MeanSLAMinutes = Mean(slaTargets)
		agg.Severity = classifySeverity(agg.CancellationRate)

		if partner, ok := best[city]; ok {
			agg.BestPartner = partner
		}

		out = append(out, agg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// TopCancellationCities returns the n cities with the highest cancellation
// rate, descending. Ties keep the alphabetical order of the input table.
func TopCancellationCities(cities []CityAggregate, n int) []CityAggregate {
	ranked := make([]CityAggregate, len(cities))
	copy(ranked, cities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CancellationRate > ranked[j].CancellationRate
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CancellationsByDate counts cancelled records per calendar date, sorted
// chronologically.
func CancellationsByDate(records []delivery.Record) []DatePoint {
	groups := groupBy(cancelledOnly(records), func(r delivery.Record) string {
		return r.Timestamp.Format(dateLayout)
	})

	out := make([]DatePoint, 0, len(groups))
	for date, recs := range groups {
		out = append(out, DatePoint{Date: date, Count: len(recs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CancellationsByHour counts cancelled records per hour of day, sorted by
// hour. Hours with no cancellations are absent rather than zero.
func CancellationsByHour(records []delivery.Record) []HourPoint {
	groups := groupBy(cancelledOnly(records), func(r delivery.Record) int {
		return r.Timestamp.Hour()
	})

	out := make([]HourPoint, 0, len(groups))
	for hour, recs := range groups {
		out = append(out, HourPoint{Hour: hour, Count: len(recs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func cancelledOnly(records []delivery.Record) []delivery.Record {
	var out []delivery.Record
	for _, r := range records {
		if r.Cancelled() {
			out = append(out, r)
		}
	}
	return out
}

func classifySeverity(cancellationRate float64) string {
	switch {
	case cancellationRate < 3:
		return SeverityLow
	case cancellationRate < 7:
		return SeverityElevated
	default:
		return SeverityCritical
	}
}
