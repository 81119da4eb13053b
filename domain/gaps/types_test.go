package gaps

import (
	"math"
	"testing"
)

func TestProgressionSlopeKey(t *testing.T) {
	slope := ProgressionSlope{Residue: 3, Modulus: 10}
	if slope.Key() != "3 mod 10" {
		t.Errorf("expected '3 mod 10', got '%s'", slope.Key())
	}
}

func TestMeanBetaForQ(t *testing.T) {
	summary := ProgressionSummary{
		Aggregates: []QAggregate{
			{Modulus: 5, MeanBeta: 0.42, Count: 4},
			{Modulus: 7, MeanBeta: -0.1, Count: 6},
		},
	}

	if got := summary.MeanBetaForQ(7); got != -0.1 {
		t.Errorf("expected -0.1 for q=7, got %f", got)
	}
	if got := summary.MeanBetaForQ(11); !math.IsNaN(got) {
		t.Errorf("expected NaN for missing q=11, got %f", got)
	}
}
