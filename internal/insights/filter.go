package insights

import (
	"time"

	"logistics-insights/internal/delivery"
)

// FilterAll is the reserved selector token meaning "no filter". It is not
// a valid partner or city name.
const FilterAll = "all"

// Window is a closed time interval: both bounds are inclusive, matching
// the upstream query semantics. A window with Start after End matches
// nothing.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// FilterRecords returns the subset of records inside the window whose
// partner and city match the given selectors. An empty selector behaves
// like FilterAll. Empty input or an inverted window yields an empty
// result, never an error.
func FilterRecords(records []delivery.Record, w Window, partner, city string) []delivery.Record {
	var out []delivery.Record
	for _, r := range records {
		if !w.Contains(r.Timestamp) {
			continue
		}
		if partner != "" && partner != FilterAll && r.Partner != partner {
			continue
		}
		if city != "" && city != FilterAll && r.City != city {
			continue
		}
		out = append(out, r)
	}
	return out
}
