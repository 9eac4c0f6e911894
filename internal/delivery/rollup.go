package delivery

// PartnerRankingEntry is one row of the externally precomputed partner
// ranking rollup. Rank is a dense per-city ordering produced upstream;
// its tie-break rule is opaque and consumed as-is.
type PartnerRankingEntry struct {
	Rank              int     `json:"rank"`
	City              string  `json:"city"`
	Partner           string  `json:"partner"`
	SLAComplianceRate float64 `json:"sla_compliance_rate"`
	CancellationRate  float64 `json:"cancellation_rate"`
}

// DistancePerformanceEntry is one row of the externally precomputed
// distance-band performance rollup.
type DistancePerformanceEntry struct {
	Partner           string  `json:"partner"`
	DistanceBand      string  `json:"distance_band"`
	CancellationRate  float64 `json:"cancellation_rate"`
	SLAComplianceRate float64 `json:"sla_compliance_rate"`
}

// DistanceBands is the fixed ordered set of distance buckets used by the
// distance-performance rollup.
var DistanceBands = []string{"0-2km", "2-4km", "4-6km", "6-10km", "10km+"}

// LongDistanceBands are the three largest bands, used by the partner
// recommendation comparison (everything >= 4km).
var LongDistanceBands = []string{"4-6km", "6-10km", "10km+"}

// Dataset is the materialized input for one engine invocation: the raw
// record collection plus the two read-only rollup tables. The engine
// performs no I/O itself; a Dataset is always supplied wholesale.
type Dataset struct {
	Records             []Record
	PartnerRanking      []PartnerRankingEntry
	DistancePerformance []DistancePerformanceEntry
}
