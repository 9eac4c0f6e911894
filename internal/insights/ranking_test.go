package insights

import (
	"testing"

	"logistics-insights/internal/delivery"
)

func TestTopRanked(t *testing.T) {
	entries := []delivery.PartnerRankingEntry{
		{Rank: 3, City: "A", Partner: "Loggi"},
		{Rank: 1, City: "B", Partner: "99"},
		{Rank: 2, City: "A", Partner: "99"},
		{Rank: 1, City: "A", Partner: "Uber"},
	}

	top := TopRanked(entries, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}

	// Rank ascending, ties ordered by city.
	if top[0].City != "A" || top[0].Rank != 1 {
		t.Errorf("first entry = %+v", top[0])
	}
	if top[1].City != "B" || top[1].Rank != 1 {
		t.Errorf("second entry = %+v", top[1])
	}
	if top[2].Rank != 2 {
		t.Errorf("third entry = %+v", top[2])
	}

	// Input order must be preserved.
	if entries[0].Rank != 3 {
		t.Error("input table mutated")
	}
}

func TestTopRankedShortInput(t *testing.T) {
	entries := []delivery.PartnerRankingEntry{{Rank: 1, City: "A", Partner: "Uber"}}
	if got := TopRanked(entries, 6); len(got) != 1 {
		t.Errorf("expected 1 entry, got %d", len(got))
	}
	if got := TopRanked(nil, 6); len(got) != 0 {
		t.Errorf("expected empty result for empty input")
	}
}
