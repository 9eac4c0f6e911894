package insights

import (
	"sort"

	"logistics-insights/internal/delivery"
)

// TopRanked returns the n best entries of the partner ranking rollup,
// ordered by rank. Rank is a dense per-city ordering produced upstream;
// equal ranks from different cities keep a stable city/partner order.
func TopRanked(entries []delivery.PartnerRankingEntry, n int) []delivery.PartnerRankingEntry {
	ranked := make([]delivery.PartnerRankingEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rank != ranked[j].Rank {
			return ranked[i].Rank < ranked[j].Rank
		}
		if ranked[i].City != ranked[j].City {
			return ranked[i].City < ranked[j].City
		}
		return ranked[i].Partner < ranked[j].Partner
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
