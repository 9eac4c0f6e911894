package delivery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()

	deliveries := writeFile(t, dir, "deliveries.jsonl", strings.Join([]string{
		`{"id":"1","timestamp":"2025-06-01T10:00:00Z","partner":"Uber","city":"A","status":"delivered","distance_km":2.5,"sla_target_minutes":40,"sla_met":true}`,
		``,
		`not valid json`,
		`{"id":"2","timestamp":"2025-06-02T18:30:00Z","partner":"99","city":"B","status":"cancelled","cancellation_reason":"no courier","distance_km":7.1,"sla_target_minutes":55}`,
	}, "\n"))
	ranking := writeFile(t, dir, "ranking.jsonl",
		`{"rank":1,"city":"A","partner":"Uber","sla_compliance_rate":95.2,"cancellation_rate":2.1}`+"\n")
	distance := writeFile(t, dir, "distance.jsonl",
		`{"partner":"Uber","distance_band":"10km+","cancellation_rate":6.3,"sla_compliance_rate":81.0}`+"\n")

	ds, err := LoadDataset(context.Background(), deliveries, ranking, distance)
	if err != nil {
		t.Fatal(err)
	}

	// The invalid line is skipped, not fatal.
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
	if ds.Records[1].CancellationReason != "no courier" {
		t.Errorf("cancellation reason = %q", ds.Records[1].CancellationReason)
	}
	if len(ds.PartnerRanking) != 1 || ds.PartnerRanking[0].Rank != 1 {
		t.Errorf("ranking = %+v", ds.PartnerRanking)
	}
	if len(ds.DistancePerformance) != 1 || ds.DistancePerformance[0].DistanceBand != "10km+" {
		t.Errorf("distance = %+v", ds.DistancePerformance)
	}
}

func TestLoadDatasetMissingFiles(t *testing.T) {
	dir := t.TempDir()

	ds, err := LoadDataset(context.Background(),
		filepath.Join(dir, "none.jsonl"),
		filepath.Join(dir, "none2.jsonl"),
		filepath.Join(dir, "none3.jsonl"))
	if err != nil {
		t.Fatalf("missing input files must yield empty tables, got %v", err)
	}
	if len(ds.Records) != 0 || len(ds.PartnerRanking) != 0 || len(ds.DistancePerformance) != 0 {
		t.Errorf("expected empty dataset, got %+v", ds)
	}
}

func TestLoadDatasetRejectsMalformedRecords(t *testing.T) {
	dir := t.TempDir()

	deliveries := writeFile(t, dir, "deliveries.jsonl",
		`{"id":"1","timestamp":"2025-06-01T10:00:00Z","partner":"Uber","city":"A","status":"delivered","distance_km":-2.5,"sla_target_minutes":40}`+"\n")

	_, err := LoadDataset(context.Background(), deliveries,
		filepath.Join(dir, "none.jsonl"),
		filepath.Join(dir, "none2.jsonl"))
	if err == nil || !strings.Contains(err.Error(), "negative distance") {
		t.Fatalf("expected negative distance error, got %v", err)
	}
}
