package rmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleEigenvaluesCountAndOrder(t *testing.T) {
	sim := NewSimulator([]int{16}, 1, 7)
	eigs := sim.sampleEigenvalues(16)

	require.Len(t, eigs, 16)
	for i := 1; i < len(eigs); i++ {
		assert.LessOrEqual(t, eigs[i-1], eigs[i])
	}
}

func TestRunDeterministicUnderSeed(t *testing.T) {
	a := NewSimulator([]int{10, 16}, 3, 42).Run()
	b := NewSimulator([]int{10, 16}, 3, 42).Run()
	assert.Equal(t, a, b)
}

func TestRunSeedChangesOutcome(t *testing.T) {
	a := NewSimulator([]int{16}, 3, 1).Run()
	b := NewSimulator([]int{16}, 3, 2).Run()
	assert.NotEqual(t, a.Sizes[0].SpacingVariance, b.Sizes[0].SpacingVariance)
}

func TestUnfoldedSpacingsMeanIsOne(t *testing.T) {
	result := NewSimulator([]int{32}, 5, 42).Run()

	require.Len(t, result.Sizes, 1)
	spacing := result.Sizes[0]
	assert.Equal(t, 32, spacing.MatrixSize)
	assert.Equal(t, 5, spacing.Trials)
	// Each trial is unfolded by its own mean spacing, so the pooled mean
	// sits at 1 up to float error.
	assert.InDelta(t, 1.0, spacing.MeanSpacing, 1e-9)
	assert.Positive(t, spacing.SpacingVariance)
}

func TestNullSlopeIsAveraged(t *testing.T) {
	result := NewSimulator([]int{16, 24}, 4, 42).Run()

	require.Len(t, result.Sizes, 2)
	expected := (result.Sizes[0].SlopeVsIndex + result.Sizes[1].SlopeVsIndex) / 2
	assert.InDelta(t, expected, result.NullSlope, 1e-12)
}

func TestBulkSpacingsDropEdges(t *testing.T) {
	eigs := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	spacings := bulkSpacings(eigs)
	// Central half of eight eigenvalues leaves four, hence three spacings.
	assert.Len(t, spacings, 3)

	assert.Nil(t, bulkSpacings([]float64{1, 2, 3}))
}
