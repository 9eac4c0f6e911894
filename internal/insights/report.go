package insights

import (
	"fmt"
	"strings"

	"logistics-insights/internal/delivery"
)

// Query describes one report invocation: the time window plus the
// optional partner/city selectors (FilterAll or empty means no filter).
type Query struct {
	Window  Window `json:"window"`
	Partner string `json:"partner"`
	City    string `json:"city"`
}

// Options tunes the derived outputs. The zero value uses the defaults
// below.
type Options struct {
	TopCities  int     // size of the top-cancellation-city ranking
	TopRanking int     // ranking rollup entries surfaced in the report
	ZThreshold float64 // anomaly z-score threshold
}

const (
	defaultTopCities  = 5
	defaultTopRanking = 6
)

func (o Options) withDefaults() Options {
	if o.TopCities <= 0 {
		o.TopCities = defaultTopCities
	}
	if o.TopRanking <= 0 {
		o.TopRanking = defaultTopRanking
	}
	if o.ZThreshold <= 0 {
		o.ZThreshold = DefaultZThreshold
	}
	return o
}

// Report is the full derived output for one query window: everything the
// presentation layer renders. It is recomputed from scratch per query;
// nothing carries identity across windows.
type Report struct {
	Query               Query                          `json:"query"`
	HasData             bool                           `json:"has_data"`
	Overview            Overview                       `json:"overview"`
	Cities              []CityAggregate                `json:"cities,omitempty"`
	TopCancellation     []CityAggregate                `json:"top_cancellation_cities,omitempty"`
	CancellationsByDate []DatePoint                    `json:"cancellations_by_date,omitempty"`
	CancellationsByHour []HourPoint                    `json:"cancellations_by_hour,omitempty"`
	BestHour            *BestHourInsight               `json:"best_delivery_hour,omitempty"`
	Anomalies           AnomalyReport                  `json:"anomalies"`
	PartnerRanking      []delivery.PartnerRankingEntry `json:"partner_ranking,omitempty"`
	Recommendation      Recommendation                 `json:"recommendation"`
}

// BuildReport runs the whole analytics pass: filter, aggregate by the
// city/hour/date branches, derive KPIs, scan for anomalies and compute the
// rollup-based recommendation. Pure function of its inputs; the dataset is
// never mutated.
func BuildReport(ds *delivery.Dataset, q Query, opts Options) Report {
	opts = opts.withDefaults()

	filtered := FilterRecords(ds.Records, q.Window, q.Partner, q.City)

	report := Report{
		Query:          q,
		HasData:        len(filtered) > 0,
		Overview:       ComputeOverview(filtered),
		Anomalies:      DetectAnomalies(filtered, opts.ZThreshold),
		PartnerRanking: TopRanked(ds.PartnerRanking, opts.TopRanking),
		Recommendation: RecommendLongDistancePartner(ds.DistancePerformance),
	}

	if !report.HasData {
		return report
	}

	report.Cities = AggregateByCity(filtered)
	report.TopCancellation = TopCancellationCities(report.Cities, opts.TopCities)
	report.CancellationsByDate = CancellationsByDate(filtered)
	report.CancellationsByHour = CancellationsByHour(filtered)

	if best, ok := BestDeliveryHour(filtered); ok {
		report.BestHour = &best
	}

	return report
}

// Summary renders the report as short human-readable lines. This is the
// presentation boundary: rates are rounded to one decimal here, never
// inside the computations.
func (r Report) Summary() string {
	var b strings.Builder

	if !r.HasData {
		b.WriteString("No deliveries in the selected window.\n")
	} else {
		ov := r.Overview
		fmt.Fprintf(&b, "Deliveries: %d\n", ov.TotalDeliveries)
		fmt.Fprintf(&b, "Cancellation rate: %.1f%% (%d cancelled)\n", Round1(ov.CancellationRate), ov.Cancellations)
		fmt.Fprintf(&b, "SLA compliance: %.1f%%\n", Round1(ov.SLAComplianceRate))
		if ov.MeanSLAMinutes != nil {
			fmt.Fprintf(&b, "Mean SLA target: %.0f min\n", *ov.MeanSLAMinutes)
		}
		if ov.MeanDistanceKm != nil {
			fmt.Fprintf(&b, "Mean distance: %.1f km\n", *ov.MeanDistanceKm)
		}
		fmt.Fprintf(&b, "Best partner: %s\n", ov.BestPartner)
		if r.BestHour != nil {
			fmt.Fprintf(&b, "Best delivery hour: %02d:00 (%d delivered)\n", r.BestHour.Hour, r.BestHour.Deliveries)
		}
	}

	switch r.Anomalies.Status {
	case AnomalyStatusInsufficient:
		b.WriteString("Anomaly scan: insufficient data (need 3+ distinct days)\n")
	default:
		if r.Anomalies.AnomalyCount == 0 {
			b.WriteString("Anomaly scan: no anomalies detected\n")
		} else {
			fmt.Fprintf(&b, "Anomaly scan: %d day(s) with abnormal cancellation rate: %s\n",
				r.Anomalies.AnomalyCount, strings.Join(r.Anomalies.AnomalousDates, ", "))
		}
	}

	switch r.Recommendation.Status {
	case RecommendStatusOK:
		fmt.Fprintf(&b, "Recommendation: %s for long-distance deliveries (> 4km)\n", r.Recommendation.Partner)
	default:
		b.WriteString("Recommendation: insufficient distance-performance data\n")
	}

	return b.String()
}
