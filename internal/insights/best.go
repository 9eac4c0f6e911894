package insights

import (
	"sort"

	"logistics-insights/internal/delivery"
)

// BestPartnerByCity finds, per city, the partner with the most delivered
// records in the filtered set. A city with zero delivered records has no
// entry in the result; callers joining against the city table must handle
// the missing key.
//
// Ties between partners with equal delivered counts resolve to the first
// maximum encountered. Partner keys are iterated in sorted order, so the
// alphabetically-first partner wins.
func BestPartnerByCity(records []delivery.Record) map[string]string {
	type cityPartner struct {
		city    string
		partner string
	}

	counts := groupBy(deliveredOnly(records), func(r delivery.Record) cityPartner {
		return cityPartner{city: r.City, partner: r.Partner}
	})

	perCity := make(map[string]map[string]int)
	for key, recs := range counts {
		if perCity[key.city] == nil {
			perCity[key.city] = make(map[string]int)
		}
		perCity[key.city][key.partner] = len(recs)
	}

	best := make(map[string]string, len(perCity))
	for city, partners := range perCity {
		names := make([]string, 0, len(partners))
		for p := range partners {
			names = append(names, p)
		}
		sort.Strings(names)

		top, topCount := "", -1
		for _, p := range names {
			if partners[p] > topCount {
				top, topCount = p, partners[p]
			}
		}
		best[city] = top
	}
	return best
}

// BestHourInsight reports the hour of day with the most completed
// deliveries.
type BestHourInsight struct {
	Hour       int `json:"hour"`
	Deliveries int `json:"deliveries"`
}

// BestDeliveryHour finds the hour of day with the highest delivered count.
// The second return is false when the filtered set has no delivered
// records. Ties resolve to the earliest hour.
func BestDeliveryHour(records []delivery.Record) (BestHourInsight, bool) {
	groups := groupBy(deliveredOnly(records), func(r delivery.Record) int {
		return r.Timestamp.Hour()
	})
	if len(groups) == 0 {
		return BestHourInsight{}, false
	}

	best := BestHourInsight{Hour: -1}
	for hour := 0; hour < 24; hour++ {
		if n := len(groups[hour]); n > best.Deliveries {
			best = BestHourInsight{Hour: hour, Deliveries: n}
		}
	}
	return best, true
}

func deliveredOnly(records []delivery.Record) []delivery.Record {
	var out []delivery.Record
	for _, r := range records {
		if r.Delivered() {
			out = append(out, r)
		}
	}
	return out
}
