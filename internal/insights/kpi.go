package insights

import (
	"math"
	"sort"

	"logistics-insights/internal/delivery"
)

// Overview holds the global headline KPIs for one filtered window.
// Headline rates are zero-guarded (an empty window reads as 0%, not NaN);
// the means are nil when there is no data to average. All values carry
// full precision, rounding happens only when rendered.
type Overview struct {
	TotalDeliveries   int      `json:"total_deliveries"`
	Cancellations     int      `json:"cancellations"`
	CancellationRate  float64  `json:"cancellation_rate"`   // percent
	SLAComplianceRate float64  `json:"sla_compliance_rate"` // percent
	MeanSLAMinutes    *float64 `json:"mean_sla_minutes,omitempty"`
	MeanDistanceKm    *float64 `json:"mean_distance_km,omitempty"`
	BestPartner       string   `json:"best_partner"`
}

// ComputeOverview derives the global KPI set from the filtered record set.
func ComputeOverview(records []delivery.Record) Overview {
	ov := Overview{
		TotalDeliveries: len(records),
		BestPartner:     NoPartner,
	}

	slaMet := 0
	slaTargets := make([]float64, 0, len(records))
	distances := make([]float64, 0, len(records))
	deliveredByPartner := make(map[string]int)

	for _, r := range records {
		if r.Cancelled() {
			ov.Cancellations++
		}
		if r.SLAMet {
			slaMet++
		}
		if r.Delivered() {
			deliveredByPartner[r.Partner]++
		}
		slaTargets = append(slaTargets, r.SLATargetMinutes)
		distances = append(distances, r.DistanceKm)
	}

	if ov.TotalDeliveries > 0 {
		total := float64(ov.TotalDeliveries)
		ov.CancellationRate = float64(ov.Cancellations) / total * 100
		ov.SLAComplianceRate = float64(slaMet) / total * 100
	}

	ov.MeanSLAMinutes = finite(Mean(slaTargets))
	ov.MeanDistanceKm = finite(Mean(distances))

	if partner, ok := argmaxCount(deliveredByPartner); ok {
		ov.BestPartner = partner
	}

	return ov
}

// argmaxCount returns the key with the highest count, false when the map
// is empty. Ties resolve alphabetically for determinism.
func argmaxCount(counts map[string]int) (string, bool) {
	if len(counts) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	top, topCount := "", -1
	for _, k := range keys {
		if counts[k] > topCount {
			top, topCount = k, counts[k]
		}
	}
	return top, true
}

// finite converts the engine's NaN "no data" marker into an absent value
// so report serialization never sees a NaN.
func finite(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
