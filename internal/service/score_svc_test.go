package service

import (
	"testing"
)

func meanFor(means []DimensionMean, dimension string) (DimensionMean, bool) {
	for _, m := range means {
		if m.Dimension == dimension {
			return m, true
		}
	}
	return DimensionMean{}, false
}

func TestAggregate_SingleDimension(t *testing.T) {
	means, overall, rated := Aggregate(map[string][]float64{
		"ethics": {8, 4},
	})

	if !rated {
		t.Fatal("company with votes should be rated")
	}
	if len(means) != 1 {
		t.Fatalf("got %d dimension means, want 1", len(means))
	}
	ethics, ok := meanFor(means, "ethics")
	if !ok {
		t.Fatal("ethics mean missing")
	}
	if !almostEqual(ethics.Mean, 6.0, 0.0001) {
		t.Errorf("ethics mean = %.4f, want 6.0000", ethics.Mean)
	}
	if ethics.VoteCount != 2 {
		t.Errorf("ethics vote count = %d, want 2", ethics.VoteCount)
	}
	// Only one rated dimension → overall equals its mean
	if !almostEqual(overall, 6.0, 0.0001) {
		t.Errorf("overall = %.4f, want 6.0000", overall)
	}
}

func TestAggregate_AbsentDimensionsExcluded(t *testing.T) {
	means, overall, rated := Aggregate(map[string][]float64{
		"ethics":      {8, 4},
		"environment": {},
		"labor":       {10},
	})

	if !rated {
		t.Fatal("should be rated")
	}
	if len(means) != 2 {
		t.Fatalf("got %d dimension means, want 2 (environment has no votes)", len(means))
	}
	if _, ok := meanFor(means, "environment"); ok {
		t.Error("dimension without votes should not appear in means")
	}
	// overall = mean of dimension means = (6 + 10) / 2, not (8+4+10)/3
	if !almostEqual(overall, 8.0, 0.0001) {
		t.Errorf("overall = %.4f, want 8.0000", overall)
	}
}

func TestAggregate_NoVotesMeansUnrated(t *testing.T) {
	means, overall, rated := Aggregate(map[string][]float64{})

	if rated {
		t.Error("company with no votes should be unrated, not zero-scored")
	}
	if means != nil {
		t.Errorf("got %d means, want none", len(means))
	}
	if overall != 0 {
		t.Errorf("overall = %.4f, want 0 for unrated", overall)
	}
}

func TestAggregate_ZeroScoresStillRated(t *testing.T) {
	_, overall, rated := Aggregate(map[string][]float64{
		"transparency": {0, 0},
	})

	// An overall of zero from real votes is distinct from unrated.
	if !rated {
		t.Error("zero scores are still votes; company should be rated")
	}
	if !almostEqual(overall, 0.0, 0.0001) {
		t.Errorf("overall = %.4f, want 0.0000", overall)
	}
}

func TestAggregate_DimensionsWeighEqually(t *testing.T) {
	high := make([]float64, 100)
	for i := range high {
		high[i] = 10
	}

	_, overall, rated := Aggregate(map[string][]float64{
		"ethics": high,
		"labor":  {0},
	})

	if !rated {
		t.Fatal("should be rated")
	}
	// 100 votes at 10 and 1 vote at 0 average to (10 + 0) / 2, not a
	// vote-weighted 9.9: each rated dimension counts once.
	if !almostEqual(overall, 5.0, 0.0001) {
		t.Errorf("overall = %.4f, want 5.0000", overall)
	}
}

func TestAggregate_ReplacedVoteChangesMean(t *testing.T) {
	// Upsert semantics: a voter changing 4 → 9 replaces the score in the
	// vote set rather than appending to it.
	_, before, _ := Aggregate(map[string][]float64{"ethics": {8, 4}})
	_, after, _ := Aggregate(map[string][]float64{"ethics": {8, 9}})

	if !almostEqual(before, 6.0, 0.0001) {
		t.Errorf("before = %.4f, want 6.0000", before)
	}
	if !almostEqual(after, 8.5, 0.0001) {
		t.Errorf("after = %.4f, want 8.5000", after)
	}
}
