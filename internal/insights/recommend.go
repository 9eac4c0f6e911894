package insights

import (
	"sort"

	"logistics-insights/internal/delivery"
)

// Recommendation statuses.
const (
	RecommendStatusOK           = "ok"
	RecommendStatusInsufficient = "insufficient_data"
)

// Recommendation is the long-distance partner recommendation derived from
// the distance-performance rollup.
type Recommendation struct {
	Status  string `json:"status"`
	Partner string `json:"partner,omitempty"`
	// MeanCancellationRates holds, per partner, the mean cancellation rate
	// over the long-distance bands. Partners with no rows in those bands
	// are absent and are never recommended.
	MeanCancellationRates map[string]float64 `json:"mean_cancellation_rates,omitempty"`
}

// RecommendLongDistancePartner compares all partners present in the
// distance-performance rollup over the long-distance bands (>= 4km) and
// recommends the one with the lowest mean cancellation rate. Ties resolve
// alphabetically. When no partner has any row in the restricted bands the
// comparison is undefined and the insufficient-data state is returned.
func RecommendLongDistancePartner(rollup []delivery.DistancePerformanceEntry) Recommendation {
	longBands := make(map[string]bool, len(delivery.LongDistanceBands))
	for _, b := range delivery.LongDistanceBands {
		longBands[b] = true
	}

	ratesByPartner := make(map[string][]float64)
	for _, row := range rollup {
		if !longBands[row.DistanceBand] {
			continue
		}
		ratesByPartner[row.Partner] = append(ratesByPartner[row.Partner], row.CancellationRate)
	}

	if len(ratesByPartner) == 0 {
		return Recommendation{Status: RecommendStatusInsufficient}
	}

	rec := Recommendation{
		Status:                RecommendStatusOK,
		MeanCancellationRates: make(map[string]float64, len(ratesByPartner)),
	}

	partners := make([]string, 0, len(ratesByPartner))
	for p := range ratesByPartner {
		partners = append(partners, p)
	}
	sort.Strings(partners)

	bestRate := 0.0
	for _, p := range partners {
		mean := Mean(ratesByPartner[p])
		rec.MeanCancellationRates[p] = mean
		if rec.Partner == "" || mean < bestRate {
			rec.Partner = p
			bestRate = mean
		}
	}

	return rec
}
