package insights

import (
	"math"
	"testing"
	"time"

	"logistics-insights/internal/delivery"
)

func ptr(v float64) *float64 { return &v }

func TestAggregateByCity(t *testing.T) {
	lat, lon := 23.55, 46.63
	records := []delivery.Record{
		{ID: "1", Timestamp: day(1), City: "A", Partner: "Uber", Status: delivery.StatusCancelled, DistanceKm: 2, SLATargetMinutes: 30, Latitude: ptr(lat), Longitude: ptr(lon)},
		{ID: "2", Timestamp: day(1), City: "A", Partner: "Uber", Status: delivery.StatusDelivered, DistanceKm: 4, SLATargetMinutes: 50, Latitude: ptr(lat), Longitude: ptr(lon)},
		{ID: "3", Timestamp: day(2), City: "B", Partner: "99", Status: delivery.StatusDelivered, DistanceKm: 6, SLATargetMinutes: 40},
	}

	cities := AggregateByCity(records)
	if len(cities) != 2 {
		t.Fatalf("expected 2 city rows, got %d", len(cities))
	}

	a := cities[0]
	if a.City != "A" {
		t.Fatalf("expected alphabetical order, first city = %s", a.City)
	}
	if a.TotalDeliveries != 2 || a.Cancellations != 1 {
		t.Errorf("city A counts: total=%d cancellations=%d", a.TotalDeliveries, a.Cancellations)
	}
	if a.CancellationRate != 50.0 {
		t.Errorf("city A cancellation rate = %v, want 50.00", a.CancellationRate)
	}
	if math.Abs(a.MeanDistanceKm-3.0) > 0.001 {
		t.Errorf("city A mean distance = %v, want 3.0", a.MeanDistanceKm)
	}
	if math.Abs(a.MeanSLAMinutes-40.0) > 0.001 {
		t.Errorf("city A mean SLA = %v, want 40.0", a.MeanSLAMinutes)
	}
	if a.Latitude == nil || *a.Latitude != lat || a.Longitude == nil || *a.Longitude != lon {
		t.Errorf("city A coordinates not taken from first observed pair")
	}
	if a.BestPartner != "Uber" {
		t.Errorf("city A best partner = %s, want Uber", a.BestPartner)
	}

	b := cities[1]
	if b.Latitude != nil || b.Longitude != nil {
		t.Errorf("city B should have no coordinates")
	}
	if b.CancellationRate != 0 {
		t.Errorf("city B cancellation rate = %v, want 0", b.CancellationRate)
	}
}

func TestAggregateByCityMissingBestPartner(t *testing.T) {
	// Every record in city A is cancelled, so the best-performer join has
	// no entry for it and must fall back to the sentinel.
	records := []delivery.Record{
		rec("1", "A", "Uber", delivery.StatusCancelled, day(1)),
		rec("2", "A", "99", delivery.StatusCancelled, day(1)),
	}

	cities := AggregateByCity(records)
	if len(cities) != 1 {
		t.Fatalf("expected 1 city row, got %d", len(cities))
	}
	if cities[0].BestPartner != NoPartner {
		t.Errorf("best partner = %q, want %q", cities[0].BestPartner, NoPartner)
	}
}

func TestAggregatePartitionProperty(t *testing.T) {
	var records []delivery.Record
	for i := 0; i < 20; i++ {
		city := "A"
		if i%3 == 0 {
			city = "B"
		} else if i%5 == 0 {
			city = "C"
		}
		records = append(records, rec(string(rune('a'+i)), city, "Uber", delivery.StatusDelivered, day(1+i%7)))
	}

	cities := AggregateByCity(records)
	sum := 0
	for _, c := range cities {
		sum += c.TotalDeliveries
	}
	if sum != len(records) {
		t.Errorf("per-city counts sum to %d, want %d", sum, len(records))
	}
}

func TestSeverityClassification(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{0, SeverityLow},
		{2.99, SeverityLow},
		{3, SeverityElevated},
		{6.99, SeverityElevated},
		{7, SeverityCritical},
		{55, SeverityCritical},
	}

	for _, tt := range tests {
		if got := classifySeverity(tt.rate); got != tt.expected {
			t.Errorf("classifySeverity(%v) = %s, want %s", tt.rate, got, tt.expected)
		}
	}
}

func TestTopCancellationCities(t *testing.T) {
	cities := []CityAggregate{
		{City: "A", CancellationRate: 5},
		{City: "B", CancellationRate: 12},
		{City: "C", CancellationRate: 1},
		{City: "D", CancellationRate: 8},
	}

	top := TopCancellationCities(cities, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(top))
	}
	if top[0].City != "B" || top[1].City != "D" {
		t.Errorf("top cities = %s, %s; want B, D", top[0].City, top[1].City)
	}

	// Input order must be preserved.
	if cities[0].City != "A" {
		t.Errorf("input table mutated")
	}
}

func TestCancellationsByDate(t *testing.T) {
	records := []delivery.Record{
		rec("1", "A", "Uber", delivery.StatusCancelled, day(2)),
		rec("2", "A", "Uber", delivery.StatusCancelled, day(1)),
		rec("3", "A", "Uber", delivery.StatusDelivered, day(1)),
		rec("4", "A", "Uber", delivery.StatusCancelled, day(1)),
	}

	points := CancellationsByDate(records)
	if len(points) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(points))
	}
	if points[0].Date != "2025-06-01" || points[0].Count != 2 {
		t.Errorf("first point = %+v, want 2025-06-01 count 2", points[0])
	}
	if points[1].Date != "2025-06-02" || points[1].Count != 1 {
		t.Errorf("second point = %+v, want 2025-06-02 count 1", points[1])
	}
}

func TestCancellationsByHour(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 6, 1, hour, 30, 0, 0, time.UTC)
	}
	records := []delivery.Record{
		rec("1", "A", "Uber", delivery.StatusCancelled, at(18)),
		rec("2", "A", "Uber", delivery.StatusCancelled, at(18)),
		rec("3", "A", "Uber", delivery.StatusCancelled, at(9)),
		rec("4", "A", "Uber", delivery.StatusDelivered, at(9)),
	}

	points := CancellationsByHour(records)
	if len(points) != 2 {
		t.Fatalf("expected 2 hours, got %d", len(points))
	}
	if points[0].Hour != 9 || points[0].Count != 1 {
		t.Errorf("first point = %+v, want hour 9 count 1", points[0])
	}
	if points[1].Hour != 18 || points[1].Count != 2 {
		t.Errorf("second point = %+v, want hour 18 count 2", points[1])
	}
}
