package analysis

import (
	"math"
	"testing"

	"primegaps/domain/gaps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGap(t *testing.T) {
	logP := math.Log(23)
	expected := 8 / (logP * logP)
	assert.InDelta(t, expected, NormalizeGap(8, 23), 1e-12)
}

func TestNormalizeGapDegenerateBase(t *testing.T) {
	assert.Zero(t, NormalizeGap(8, 1))
	assert.Zero(t, NormalizeGap(8, 0))
	assert.Zero(t, NormalizeGap(8, -3))
}

func TestBuildRecordsAlignsToShorter(t *testing.T) {
	starts := []int64{2, 3, 7, 23, 89}
	recordGaps := []int64{1, 2, 4}

	records := BuildRecords(starts, recordGaps)
	require.Len(t, records, 3)
	assert.Equal(t, int64(7), records[2].Prime)
	assert.Equal(t, int64(4), records[2].Gap)
	assert.InDelta(t, NormalizeGap(4, 7), records[2].R, 1e-12)
}

func TestDetectReboundsMonotoneNonIncreasing(t *testing.T) {
	// A non-increasing R sequence must produce zero rebounds.
	records := recordsWithR([]float64{0.9, 0.7, 0.7, 0.5, 0.2})
	result := DetectRebounds(records)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Rebounds)
	assert.Equal(t, 4, result.Transitions)
	assert.Zero(t, result.Percentage)
}

func TestDetectReboundsFindsIncreases(t *testing.T) {
	records := recordsWithR([]float64{0.5, 0.3, 0.6, 0.4, 0.9})
	result := DetectRebounds(records)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, 4, result.Transitions)
	assert.InDelta(t, 50.0, result.Percentage, 1e-9)

	first := result.Rebounds[0]
	assert.Equal(t, 1, first.Index)
	assert.InDelta(t, 0.3, first.Delta, 1e-12)

	assert.InDelta(t, 0.5, result.MaxAmplitude, 1e-12)
	assert.InDelta(t, 0.4, result.MeanAmplitude, 1e-12)
}

func TestDetectReboundsTooShort(t *testing.T) {
	result := DetectRebounds(recordsWithR([]float64{0.5}))
	assert.Zero(t, result.Transitions)
	assert.Zero(t, result.Count)
}

func TestFitGlobalTrendPerfectLine(t *testing.T) {
	records := recordsWithR([]float64{1.0, 1.5, 2.0, 2.5, 3.0})
	fit := FitGlobalTrend(records)

	assert.InDelta(t, 0.5, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
	assert.Equal(t, 5, fit.SampleSize)
}

func TestFitLineNoisySlopeSignificance(t *testing.T) {
	x := make([]float64, 40)
	y := make([]float64, 40)
	for i := range x {
		x[i] = float64(i)
		// Strong trend with a small deterministic wobble.
		y[i] = 2*x[i] + math.Sin(float64(i))
	}
	fit := FitLine(x, y)

	assert.InDelta(t, 2.0, fit.Slope, 0.05)
	assert.Greater(t, fit.SlopeStdErr, 0.0)
	assert.Less(t, fit.PValue, 1e-6)
}

func TestFitLineTooFewPoints(t *testing.T) {
	fit := FitLine([]float64{1, 2}, []float64{3, 4})
	assert.Zero(t, fit.Slope)
	assert.Equal(t, 1.0, fit.PValue)
}

func TestFitLineConstantX(t *testing.T) {
	fit := FitLine([]float64{2, 2, 2, 2}, []float64{1, 2, 3, 4})
	assert.Equal(t, 1.0, fit.PValue)
}

func recordsWithR(rs []float64) []gaps.GapRecord {
	records := make([]gaps.GapRecord, len(rs))
	for i, r := range rs {
		records[i] = gaps.GapRecord{Index: i, Prime: int64(100 + i), Gap: 1, R: r}
	}
	return records
}
