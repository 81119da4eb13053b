package progression

import (
	"math"
	"testing"

	"primegaps/domain/gaps"
	"primegaps/internal/primes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSkipsNonCoprimeResidues(t *testing.T) {
	sieved := primes.Sieve(1000)
	analyzer := NewAnalyzer(10, 1000)
	summary := analyzer.Run(sieved)

	for _, slope := range summary.Slopes {
		assert.Equal(t, 1, primes.GCD(slope.Residue, slope.Modulus),
			"slope for %s uses a non-coprime residue", slope.Key())
	}
}

func TestRunMinimumSamplesPerProgression(t *testing.T) {
	sieved := primes.Sieve(1000)
	analyzer := NewAnalyzer(10, 1000)
	summary := analyzer.Run(sieved)

	for _, slope := range summary.Slopes {
		assert.GreaterOrEqual(t, slope.Samples, gaps.MinProgressionPoints)
	}
}

func TestAggregationExcludesSparseModuli(t *testing.T) {
	// q=3 and q=4 have only two coprime residues each, below the
	// three-slope minimum; q=5 has four.
	sieved := primes.Sieve(1000)
	analyzer := NewAnalyzer(5, 1000)
	summary := analyzer.Run(sieved)

	moduli := map[int]bool{}
	for _, agg := range summary.Aggregates {
		moduli[agg.Modulus] = true
		assert.GreaterOrEqual(t, agg.Count, gaps.MinSlopesPerModulus)
	}
	assert.False(t, moduli[3])
	assert.False(t, moduli[4])
	assert.True(t, moduli[5])
}

func TestClassificationCountsConsistent(t *testing.T) {
	sieved := primes.Sieve(5000)
	analyzer := NewAnalyzer(12, 5000)
	summary := analyzer.Run(sieved)

	require.Positive(t, summary.Total)
	assert.Equal(t, summary.Total, len(summary.Slopes))
	assert.LessOrEqual(t, summary.PositiveCount+summary.NegativeCount, summary.Total)
	assert.InDelta(t, 100*float64(summary.PositiveCount)/float64(summary.Total), summary.PositivePct, 1e-9)
}

func TestGapGrowthSlopeIsPositive(t *testing.T) {
	// Average prime gaps grow like ln(p), so regressing gap on ln(p)
	// should produce a clearly positive slope for a dense progression.
	sieved := primes.Sieve(100_000)
	analyzer := NewAnalyzer(4, 100_000)
	summary := analyzer.Run(sieved)

	for _, slope := range summary.Slopes {
		if slope.Modulus == 4 {
			assert.Positive(t, slope.Beta, "q=4 a=%d", slope.Residue)
		}
	}
}

func TestMeanBetaForQ(t *testing.T) {
	sieved := primes.Sieve(1000)
	summary := NewAnalyzer(5, 1000).Run(sieved)

	assert.False(t, math.IsNaN(summary.MeanBetaForQ(5)), "q=5 aggregate should exist")
	assert.True(t, math.IsNaN(summary.MeanBetaForQ(3)), "q=3 aggregate should be NaN")
}
