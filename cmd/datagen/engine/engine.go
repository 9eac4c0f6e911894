package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"logistics-insights/internal/delivery"
)

// GeneratorConfig controls the synthetic dataset shape.
type GeneratorConfig struct {
	Scenario string // "steady" or "spike"
	Days     int
	PerDay   int
	Seed     int64
	Now      time.Time
}

type cityInfo struct {
	name     string
	lat, lon float64
}

// One fixed coordinate pair per city, matching the record invariant.
var cities = []cityInfo{
	{"Sao Paulo", -23.5505, -46.6333},
	{"Campinas", -22.9099, -47.0626},
	{"Santos", -23.9608, -46.3336},
	{"Guarulhos", -23.4538, -46.5333},
}

// Per-partner base cancellation probability. The spread keeps the ranking
// and recommendation outputs non-trivial.
var partners = map[string]float64{
	"Uber": 0.035,
	"99":   0.055,
}

// Generate builds a plausible delivery history plus the two rollup tables
// derived from it. The same seed always produces the same dataset.
func Generate(cfg GeneratorConfig) *delivery.Dataset {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days <= 0 {
		cfg.Days = 30
	}
	if cfg.PerDay <= 0 {
		cfg.PerDay = 40
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	firstDay := cfg.Now.AddDate(0, 0, -(cfg.Days - 1))

	partnerNames := make([]string, 0, len(partners))
	for p := range partners {
		partnerNames = append(partnerNames, p)
	}
	sort.Strings(partnerNames)

	// The spike scenario injects one badly-degraded day near the end of
	// the window so the anomaly detector has something to find.
	spikeDay := -1
	if cfg.Scenario == "spike" {
		spikeDay = cfg.Days - 3
	}

	var records []delivery.Record
	id := 0
	for d := 0; d < cfg.Days; d++ {
		count := cfg.PerDay/2 + rng.Intn(cfg.PerDay)
		for i := 0; i < count; i++ {
			id++
			city := cities[rng.Intn(len(cities))]
			partner := partnerNames[rng.Intn(len(partnerNames))]

			// Deliveries cluster around lunch and dinner hours.
			hour := 11 + rng.Intn(3)
			if rng.Float64() < 0.5 {
				hour = 18 + rng.Intn(4)
			}
			ts := time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), hour, rng.Intn(60), 0, 0, time.Local).AddDate(0, 0, d)

			distance := 0.5 + rng.Float64()*11.5
			slaTarget := 30 + distance*4

			cancelProb := partners[partner] * (1 + distance/12)
			if d == spikeDay {
				cancelProb = 0.5
			}

			rec := delivery.Record{
				ID:               fmt.Sprintf("DLV-%05d", id),
				Timestamp:        ts,
				Partner:          partner,
				City:             city.name,
				Status:           delivery.StatusDelivered,
				DistanceKm:       round2(distance),
				SLATargetMinutes: round2(slaTarget),
				Latitude:         ptr(city.lat),
				Longitude:        ptr(city.lon),
			}

			if rng.Float64() < cancelProb {
				rec.Status = delivery.StatusCancelled
				rec.CancellationReason = pickReason(rng)
			} else {
				duration := slaTarget * (0.6 + rng.Float64()*0.6)
				rec.DurationMinutes = ptr(round2(duration))
				rec.SLAMet = duration <= slaTarget
			}

			records = append(records, rec)
		}
	}

	return &delivery.Dataset{
		Records:             records,
		PartnerRanking:      buildRanking(records),
		DistancePerformance: buildDistanceRollup(records),
	}
}

func pickReason(rng *rand.Rand) string {
	reasons := []string{"no courier available", "restaurant closed", "customer unreachable", "courier timeout"}
	return reasons[rng.Intn(len(reasons))]
}

type tally struct {
	total     int
	cancelled int
	slaMet    int
}

func (t tally) cancelRate() float64 {
	if t.total == 0 {
		return 0
	}
	return round2(float64(t.cancelled) / float64(t.total) * 100)
}

func (t tally) slaRate() float64 {
	if t.total == 0 {
		return 0
	}
	return round2(float64(t.slaMet) / float64(t.total) * 100)
}

// buildRanking derives the per-city partner ranking rollup the upstream
// pipeline would precompute: dense rank per city, best SLA compliance
// first.
func buildRanking(records []delivery.Record) []delivery.PartnerRankingEntry {
	type key struct{ city, partner string }
	tallies := make(map[key]*tally)
	for _, r := range records {
		k := key{r.City, r.Partner}
		if tallies[k] == nil {
			tallies[k] = &tally{}
		}
		t := tallies[k]
		t.total++
		if r.Cancelled() {
			t.cancelled++
		}
		if r.SLAMet {
			t.slaMet++
		}
	}

	var entries []delivery.PartnerRankingEntry
	for k, t := range tallies {
		entries = append(entries, delivery.PartnerRankingEntry{
			City:              k.city,
			Partner:           k.partner,
			SLAComplianceRate: t.slaRate(),
			CancellationRate:  t.cancelRate(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].City != entries[j].City {
			return entries[i].City < entries[j].City
		}
		return entries[i].SLAComplianceRate > entries[j].SLAComplianceRate
	})

	rank := 0
	lastCity := ""
	for i := range entries {
		if entries[i].City != lastCity {
			rank = 0
			lastCity = entries[i].City
		}
		rank++
		entries[i].Rank = rank
	}
	return entries
}

func buildDistanceRollup(records []delivery.Record) []delivery.DistancePerformanceEntry {
	type key struct{ partner, band string }
	tallies := make(map[key]*tally)
	for _, r := range records {
		k := key{r.Partner, bandFor(r.DistanceKm)}
		if tallies[k] == nil {
			tallies[k] = &tally{}
		}
		t := tallies[k]
		t.total++
		if r.Cancelled() {
			t.cancelled++
		}
		if r.SLAMet {
			t.slaMet++
		}
	}

	var entries []delivery.DistancePerformanceEntry
	for k, t := range tallies {
		entries = append(entries, delivery.DistancePerformanceEntry{
			Partner:           k.partner,
			DistanceBand:      k.band,
			CancellationRate:  t.cancelRate(),
			SLAComplianceRate: t.slaRate(),
		})
	}

	bandIndex := make(map[string]int, len(delivery.DistanceBands))
	for i, b := range delivery.DistanceBands {
		bandIndex[b] = i
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Partner != entries[j].Partner {
			return entries[i].Partner < entries[j].Partner
		}
		return bandIndex[entries[i].DistanceBand] < bandIndex[entries[j].DistanceBand]
	})
	return entries
}

func bandFor(km float64) string {
	switch {
	case km < 2:
		return "0-2km"
	case km < 4:
		return "2-4km"
	case km < 6:
		return "4-6km"
	case km < 10:
		return "6-10km"
	default:
		return "10km+"
	}
}

// Save writes the dataset as the three JSONL files the report commands
// read.
func Save(outDir string, ds *delivery.Dataset) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := writeJSONL(filepath.Join(outDir, "deliveries.jsonl"), ds.Records); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(outDir, "partner_ranking.jsonl"), ds.PartnerRanking); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(outDir, "distance_performance.jsonl"), ds.DistancePerformance)
}

func writeJSONL[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row for %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
